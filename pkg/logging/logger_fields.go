package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Field helpers for the names this application logs most

func Component(name string) Field {
	return String("component", name)
}

func Workspace(dir string) Field {
	return String("workspace", dir)
}

func Artifact(path string) Field {
	return String("artifact", path)
}

func RunID(id string) Field {
	return String("run_id", id)
}

func Engine(name string) Field {
	return String("engine", name)
}

func ExitCode(code int) Field {
	return Int("exit_code", code)
}

func NodeCount(n int) Field {
	return Int("nodes", n)
}

func EdgeCount(n int) Field {
	return Int("edges", n)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

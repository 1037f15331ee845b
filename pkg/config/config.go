// Package config loads the application configuration from a YAML file,
// overlaying it on built-in defaults and validating the result with struct
// tags.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Config is the full application configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Layout  LayoutConfig  `yaml:"layout"`
	View    ViewConfig    `yaml:"view"`
	// Mascot enables the decorative wandering sprite. Off by default.
	Mascot bool `yaml:"mascot"`
}

// BackendConfig configures the external analysis process.
type BackendConfig struct {
	// Path overrides backend binary discovery when set.
	Path string `yaml:"path" validate:"omitempty"`
	// Artifact is where the backend writes the call-graph output.
	Artifact string `yaml:"artifact" validate:"required"`
	Engine   string `yaml:"engine" validate:"required,oneof=syn scip"`
}

// LayoutConfig configures the grid layout.
type LayoutConfig struct {
	Columns  int     `yaml:"columns" validate:"required,min=1"`
	SpacingX float64 `yaml:"spacing_x" validate:"required,gt=0"`
	SpacingY float64 `yaml:"spacing_y" validate:"required,gt=0"`
}

// ViewConfig configures viewport interaction.
type ViewConfig struct {
	// ZoomStep is the per-keypress scale factor; must exceed 1.
	ZoomStep float64 `yaml:"zoom_step" validate:"required,gt=1"`
	// FitMargin is the extra zoom-out applied after fit-to-view.
	FitMargin float64 `yaml:"fit_margin" validate:"required,gt=0,lte=1"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Backend: BackendConfig{
			Artifact: "/tmp/tracecraft_output.dot",
			Engine:   "syn",
		},
		Layout: LayoutConfig{
			Columns:  5,
			SpacingX: 200,
			SpacingY: 120,
		},
		View: ViewConfig{
			ZoomStep:  1.1,
			FitMargin: 0.9,
		},
	}
}

// Load reads the YAML file at path over the defaults and validates the
// result. An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c Config) Validate() error {
	return validate.Struct(c)
}

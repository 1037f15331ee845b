package scene

import (
	"math"
	"math/rand"

	"github.com/plokm5151/tracecraft/pkg/graph"
)

// Sprite is a decorative mascot that wanders the scene. It lives outside the
// graph item list, so clearing or reloading the graph never touches it.
// Disabled by default; purely cosmetic.
type Sprite struct {
	Glyph  rune
	Pos    graph.Position
	bounds Rect
	target graph.Position
	speed  float64
	ttl    int
	rng    *rand.Rand
}

// NewSprite creates a sprite at the origin with the given glyph.
func NewSprite(glyph rune, seed int64) *Sprite {
	s := &Sprite{
		Glyph: glyph,
		speed: 2.0,
		rng:   rand.New(rand.NewSource(seed)),
	}
	s.pickTarget()
	return s
}

// SetBounds constrains the walk to a world-space rectangle.
func (s *Sprite) SetBounds(r Rect) {
	s.bounds = r
}

func (s *Sprite) pickTarget() {
	w := s.bounds.Max.X - s.bounds.Min.X
	h := s.bounds.Max.Y - s.bounds.Min.Y
	if w > 0 && h > 0 {
		marginX := w * 0.1
		marginY := h * 0.1
		s.target = graph.Position{
			X: s.bounds.Min.X + marginX + s.rng.Float64()*(w-2*marginX),
			Y: s.bounds.Min.Y + marginY + s.rng.Float64()*(h-2*marginY),
		}
	} else {
		s.target = graph.Position{
			X: s.rng.Float64()*500 - 250,
			Y: s.rng.Float64()*400 - 200,
		}
	}
	s.ttl = 100 + s.rng.Intn(200)
}

// Step advances the walk one tick: move toward the target with a little
// wobble, retargeting when close or when the countdown expires.
func (s *Sprite) Step() {
	dx := s.target.X - s.Pos.X
	dy := s.target.Y - s.Pos.Y
	dist := math.Hypot(dx, dy)

	s.ttl--
	if dist < 20 || s.ttl <= 0 {
		s.pickTarget()
		dx = s.target.X - s.Pos.X
		dy = s.target.Y - s.Pos.Y
		dist = math.Hypot(dx, dy)
	}
	if dist == 0 {
		return
	}

	dx /= dist
	dy /= dist
	dy += (s.rng.Float64() - 0.5) * 0.2

	s.Pos.X += dx * s.speed
	s.Pos.Y += dy * s.speed

	if s.bounds.Max.X > s.bounds.Min.X {
		s.Pos.X = clamp(s.Pos.X, s.bounds.Min.X, s.bounds.Max.X)
		s.Pos.Y = clamp(s.Pos.Y, s.bounds.Min.Y, s.bounds.Max.Y)
	}
}

// Draw paints the sprite glyph on top of whatever is already there.
func (s *Sprite) Draw(c *Canvas) {
	x, y := c.Project(s.Pos)
	c.Set(x, y, s.Glyph)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

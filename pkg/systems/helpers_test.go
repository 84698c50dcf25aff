package systems

import (
	"math/rand"
	"testing"

	"github.com/decker502/fireworks/internal/particle"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/game"
)

// testProfile returns a small valid burst-style profile
func testProfile(mods ...func(p *config.Profile)) *config.Profile {
	p := &config.Profile{
		Name:            "test",
		Width:           64,
		Height:          48,
		FPS:             30,
		DurationSeconds: 1,
		Codec:           "mpeg4",
		SpawnInterval:   30,
		Gravity:         0.1,
		FadeRate:        0.98,
		Count:           particle.Range{Min: 50, Max: 150},
		Speed:           particle.Range{Min: 5, Max: 15},
		Decay:           particle.Range{Min: 0.85, Max: 0.95},
		OriginX:         particle.Range{Min: 0.25, Max: 0.75},
		OriginY:         particle.Range{Min: 0.25, Max: 0.5},
		Mark:            config.MarkSegment,
		StrokeWidth:     2,
		Repeat:          1,
	}
	for _, mod := range mods {
		mod(p)
	}
	return p
}

// newTestContext builds a render context with a seeded generator
func newTestContext(t *testing.T, p *config.Profile, seed int64) *game.RenderContext {
	t.Helper()
	if err := p.Validate(); err != nil {
		t.Fatalf("test profile invalid: %v", err)
	}
	return game.NewRenderContext(p, rand.New(rand.NewSource(seed)), nil)
}

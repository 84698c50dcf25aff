package game

import (
	"math/rand"

	"github.com/hashicorp/go-hclog"

	"github.com/decker502/fireworks/internal/particle"
	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
)

// RenderContext is the explicit state of one render run. The app driver owns
// it and passes it to every system each frame; systems never keep their own
// copy of the bursts or the canvas.
type RenderContext struct {
	Profile *config.Profile

	// Rand sources every random burst parameter. Seeding it makes the whole
	// run reproducible.
	Rand *rand.Rand

	// Bursts is the active set, in spawn order. It only grows unless
	// Profile.Prune is set.
	Bursts []*particle.Burst

	Buffers *components.FrameBuffers

	// FrameIndex is the zero-based index of the frame being produced.
	FrameIndex int

	Logger hclog.Logger
}

// NewRenderContext creates the context for a run of the given profile.
func NewRenderContext(profile *config.Profile, rng *rand.Rand, logger hclog.Logger) *RenderContext {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &RenderContext{
		Profile: profile,
		Rand:    rng,
		Buffers: components.NewFrameBuffers(profile.Width, profile.Height, profile.Glow),
		Logger:  logger,
	}
}

// ParticleCount returns the number of tracked particles across all bursts.
func (rc *RenderContext) ParticleCount() int {
	n := 0
	for _, b := range rc.Bursts {
		n += b.Len()
	}
	return n
}

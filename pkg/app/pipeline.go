package app

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/hashicorp/go-hclog"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/sink"
	"github.com/decker502/fireworks/pkg/systems"
)

// Pipeline renders one run of a profile into a frame sink.
//
// Per frame it runs, in order: composite begin (clear or trail fade), spawn,
// physics, render, composite end (glow), then hands the output frame to the
// sink. The pipeline owns the render context; systems only see it for the
// duration of a call.
type Pipeline struct {
	rc *game.RenderContext

	spawn     *systems.SpawnSystem
	physics   *systems.PhysicsSystem
	render    *systems.RenderSystem
	composite *systems.CompositeSystem

	sink     sink.FrameSink
	progress *game.ProgressReporter
	logger   hclog.Logger
}

// NewPipeline wires the systems for profile. progress may be nil.
func NewPipeline(profile *config.Profile, rng *rand.Rand, out sink.FrameSink, progress *game.ProgressReporter, logger hclog.Logger) *Pipeline {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Pipeline{
		rc:        game.NewRenderContext(profile, rng, logger),
		spawn:     systems.NewSpawnSystem(),
		physics:   systems.NewPhysicsSystem(profile.Gravity, profile.FadeRate),
		render:    systems.NewRenderSystem(profile),
		composite: systems.NewCompositeSystem(profile),
		sink:      out,
		progress:  progress,
		logger:    logger,
	}
}

// Context exposes the render state, mainly for tests.
func (p *Pipeline) Context() *game.RenderContext {
	return p.rc
}

// Step produces the current frame, writes it to the sink and advances the
// frame index.
func (p *Pipeline) Step() error {
	rc := p.rc

	p.composite.BeginFrame(rc)
	p.spawn.Update(rc)
	p.physics.Update(rc)
	p.render.Update(rc)
	p.composite.EndFrame(rc)

	if err := p.sink.WriteFrame(rc.FrameIndex, rc.Buffers.Output); err != nil {
		return fmt.Errorf("frame %d: %w", rc.FrameIndex, err)
	}

	if p.progress != nil {
		p.progress.Observe(rc.FrameIndex)
	}

	rc.FrameIndex++
	return nil
}

// Run renders every frame of the profile and closes the sink.
// Cancellation is checked between frames; the sink is closed either way so
// that a partial output is still finalized.
func (p *Pipeline) Run(ctx context.Context) error {
	total := p.rc.Profile.TotalFrames()
	if p.progress != nil {
		p.progress.Start()
	}

	for p.rc.FrameIndex < total {
		if err := ctx.Err(); err != nil {
			p.closeSink()
			return err
		}
		if err := p.Step(); err != nil {
			p.closeSink()
			return err
		}
	}

	if err := p.sink.Close(); err != nil {
		return fmt.Errorf("failed to finalize output: %w", err)
	}

	p.logger.Debug("run finished", "frames", total, "bursts", len(p.rc.Bursts), "particles", p.rc.ParticleCount())
	return nil
}

// closeSink closes the sink after a failed or cancelled run
func (p *Pipeline) closeSink() {
	if err := p.sink.Close(); err != nil {
		p.logger.Warn("closing sink after abort failed", "error", err)
	}
}

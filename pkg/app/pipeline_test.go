package app

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/fireworks/internal/particle"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/sink"
)

func TestPipeline_BurstsAccumulate(t *testing.T) {
	rec := &sink.Recorder{}
	p := NewPipeline(smallProfile(), rand.New(rand.NewSource(1)), rec, nil, nil)

	require.NoError(t, p.Run(context.Background()))

	rc := p.Context()
	assert.Equal(t, 20, rc.FrameIndex)
	// spawned on frames 0, 5, 10 and 15, never removed
	require.Len(t, rc.Bursts, 4)
	for i, b := range rc.Bursts {
		assert.Equal(t, i*5, b.SpawnFrame)
	}
}

func TestPipeline_PruneDropsFadedBursts(t *testing.T) {
	profile := smallProfile(func(p *config.Profile) {
		p.FadeRate = 0.5
		p.Prune = true
	})
	p := NewPipeline(profile, rand.New(rand.NewSource(1)), &sink.Recorder{}, nil, nil)
	require.NoError(t, p.Run(context.Background()))

	// 0.5^10 < 1e-3, so only bursts younger than ten frames survive
	rc := p.Context()
	for _, b := range rc.Bursts {
		assert.GreaterOrEqual(t, b.SpawnFrame, 10)
	}
	assert.Less(t, len(rc.Bursts), 4)
}

func TestPipeline_GlowOutputSeparateFromCanvas(t *testing.T) {
	profile := smallProfile(func(p *config.Profile) {
		p.Glow = true
		p.GlowKernel = 21
	})
	rec := &sink.Recorder{KeepFrames: true}
	p := NewPipeline(profile, rand.New(rand.NewSource(2)), rec, nil, nil)

	require.NoError(t, p.Step())

	fb := p.Context().Buffers
	require.NotSame(t, fb.Frame, fb.Output)
	out := rec.Frames[0]
	for i := 0; i < len(out.Pix); i++ {
		assert.GreaterOrEqual(t, out.Pix[i], fb.Frame.Pix[i])
	}
}

func TestPipeline_FirstFrameHasMarks(t *testing.T) {
	profile := smallProfile(func(p *config.Profile) {
		p.Mark = config.MarkCircle
		p.MarkRadius = 3
	})
	rec := &sink.Recorder{KeepFrames: true}
	p := NewPipeline(profile, rand.New(rand.NewSource(4)), rec, nil, nil)
	require.NoError(t, p.Step())

	lit := 0
	for i := 0; i < len(rec.Frames[0].Pix); i += 4 {
		if rec.Frames[0].Pix[i]|rec.Frames[0].Pix[i+1]|rec.Frames[0].Pix[i+2] != 0 {
			lit++
		}
	}
	assert.Greater(t, lit, 0)
}

// TestPipeline_TrailFadeBeforeDrawing tests that fresh marks are drawn after the trail fade and reach the output unfaded
func TestPipeline_TrailFadeBeforeDrawing(t *testing.T) {
	profile := smallProfile(func(p *config.Profile) {
		p.Count = particle.Fixed(1)
		p.Mark = config.MarkCircle
		p.MarkRadius = 3
		p.FadeRate = 1
		p.Trail = true
		p.TrailAlpha = 0.05
	})
	rec := &sink.Recorder{KeepFrames: true}
	p := NewPipeline(profile, rand.New(rand.NewSource(9)), rec, nil, nil)

	require.NoError(t, p.Step())

	rc := p.Context()
	require.Len(t, rc.Bursts, 1)
	b := rc.Bursts[0]
	require.Equal(t, 1, b.Len())
	require.True(t, b.InBounds(0, profile.Width, profile.Height))

	x, y := int(b.X[0]), int(b.Y[0])
	assert.Equal(t, b.Colors[0], rec.Frames[0].RGBAAt(x, y))
}

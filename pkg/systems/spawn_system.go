package systems

import (
	"image/color"
	"math"

	"github.com/decker502/fireworks/internal/particle"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/game"
)

// SpawnSystem creates new bursts on a fixed frame cadence.
//
// Every burst parameter is drawn from the context's random generator in a
// fixed order (count, speeds, colors, origin x, origin y, decay), so a seeded
// generator reproduces the same run.
type SpawnSystem struct{}

// NewSpawnSystem creates a new SpawnSystem instance.
func NewSpawnSystem() *SpawnSystem {
	return &SpawnSystem{}
}

// ShouldSpawn reports whether a burst is created on frameIndex.
// An interval of 0 spawns once, on frame 0.
func (s *SpawnSystem) ShouldSpawn(profile *config.Profile, frameIndex int) bool {
	if profile.SpawnInterval == 0 {
		return frameIndex == 0
	}
	return frameIndex%profile.SpawnInterval == 0
}

// Update appends exactly one new burst when the current frame qualifies.
func (s *SpawnSystem) Update(rc *game.RenderContext) {
	// 非生成帧直接跳过
	if !s.ShouldSpawn(rc.Profile, rc.FrameIndex) {
		return
	}

	burst := s.Spawn(rc)
	rc.Bursts = append(rc.Bursts, burst)

	rc.Logger.Trace("spawned burst",
		"frame", rc.FrameIndex,
		"particles", burst.Len(),
		"x", burst.OriginX,
		"y", burst.OriginY,
		"decay", burst.Decay,
		"active", len(rc.Bursts))
}

// Spawn draws a new burst from the profile ranges.
func (s *SpawnSystem) Spawn(rc *game.RenderContext) *particle.Burst {
	p := rc.Profile
	rng := rc.Rand

	// 抽取顺序固定：数量 → 速度 → 颜色 → 原点 x → 原点 y → 衰减
	n := p.Count.Int(rng)

	speeds := make([]float64, n)
	for i := range speeds {
		speeds[i] = p.Speed.Float(rng)
	}

	// 每个通道取 [0,255)，255 永远不会被抽到
	colors := make([]color.RGBA, n)
	for i := range colors {
		colors[i] = color.RGBA{
			R: uint8(rng.Intn(255)),
			G: uint8(rng.Intn(255)),
			B: uint8(rng.Intn(255)),
			A: 0xff,
		}
	}

	// origin fractions become integer pixel bounds
	// 原点是整数像素，范围为 [floor(W*min), floor(W*max))
	xRange := particle.Range{
		Min: math.Floor(float64(p.Width) * p.OriginX.Min),
		Max: math.Floor(float64(p.Width) * p.OriginX.Max),
	}
	yRange := particle.Range{
		Min: math.Floor(float64(p.Height) * p.OriginY.Min),
		Max: math.Floor(float64(p.Height) * p.OriginY.Max),
	}
	x := float64(xRange.Int(rng))
	y := float64(yRange.Int(rng))

	decay := p.Decay.Float(rng)

	return particle.NewBurst(x, y, speeds, colors, decay, rc.FrameIndex)
}

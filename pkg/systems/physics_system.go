package systems

import (
	"github.com/decker502/fireworks/internal/particle"
	"github.com/decker502/fireworks/pkg/game"
)

// PruneEpsilon is the alpha below which a burst counts as faded out.
const PruneEpsilon = 1e-3

// PhysicsSystem advances every burst by one frame.
//
// The per-step order is fixed: gravity, remember previous position, move,
// decay velocity, fade alpha. Reordering changes the rendered result because
// marks are drawn from truncated positions.
type PhysicsSystem struct {
	Gravity  float64
	FadeRate float64
}

// NewPhysicsSystem creates a new PhysicsSystem instance.
func NewPhysicsSystem(gravity, fadeRate float64) *PhysicsSystem {
	return &PhysicsSystem{
		Gravity:  gravity,
		FadeRate: fadeRate,
	}
}

// Update steps every burst and, when the profile enables it, drops bursts
// that can no longer be seen.
func (ps *PhysicsSystem) Update(rc *game.RenderContext) {
	for _, b := range rc.Bursts {
		ps.Step(b)
	}

	// 默认不清理，保持无限累积
	if rc.Profile.Prune {
		before := len(rc.Bursts)
		rc.Bursts = Prune(rc.Bursts, rc.Profile.Height)
		if removed := before - len(rc.Bursts); removed > 0 {
			rc.Logger.Trace("pruned bursts", "frame", rc.FrameIndex, "removed", removed, "active", len(rc.Bursts))
		}
	}
}

// Step applies one integration step to a burst.
func (ps *PhysicsSystem) Step(b *particle.Burst) {
	for i := range b.X {
		// 1. 重力先作用于速度
		b.VY[i] += ps.Gravity

		// 2. 记录上一帧位置（线段标记的起点）
		b.PrevX[i] = b.X[i]
		b.PrevY[i] = b.Y[i]

		// 3. 位移，使用已加上重力的速度
		b.X[i] += b.VX[i]
		b.Y[i] += b.VY[i]

		// 4. 速度衰减
		b.VX[i] *= b.Decay
		b.VY[i] *= b.Decay
	}

	// 5. 整个爆炸共享一个透明度
	b.Alpha *= ps.FadeRate
}

// Prune removes inert bursts in place, keeping spawn order.
func Prune(bursts []*particle.Burst, height int) []*particle.Burst {
	kept := bursts[:0]
	for _, b := range bursts {
		if !b.Inert(height, PruneEpsilon) {
			kept = append(kept, b)
		}
	}
	// release references held past the new length
	for i := len(kept); i < len(bursts); i++ {
		bursts[i] = nil
	}
	return kept
}

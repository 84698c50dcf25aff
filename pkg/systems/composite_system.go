package systems

import (
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/utils"
)

// CompositeSystem prepares the working canvas before drawing and produces
// the emitted frame after drawing.
//
// Without trails the canvas is cleared every frame. With trails the canvas is
// blended toward a solid black overlay, frame = black*alpha + frame*(1-alpha),
// so old marks fade over successive frames instead of disappearing. With glow
// the emitted frame is the saturating sum of the canvas and its Gaussian
// blur; the canvas itself is left untouched for the next frame.
type CompositeSystem struct {
	trail bool
	glow  bool

	fade *[256]uint8
	blur *utils.GaussianBlur
}

// NewCompositeSystem creates a CompositeSystem for the profile's trail and
// glow settings.
func NewCompositeSystem(profile *config.Profile) *CompositeSystem {
	cs := &CompositeSystem{
		trail: profile.Trail,
		glow:  profile.Glow,
	}
	if cs.trail {
		// 预计算 256 项查找表
		lut := utils.WeightLUT(1 - profile.TrailAlpha)
		cs.fade = &lut
	}
	if cs.glow {
		cs.blur = utils.NewGaussianBlur(profile.GlowKernel)
	}
	return cs
}

// BeginFrame runs before spawning and drawing: it fades the accumulation
// buffer when trails are enabled, otherwise clears it.
func (cs *CompositeSystem) BeginFrame(rc *game.RenderContext) {
	// 拖尾：与黑色叠加层加权混合，否则直接清屏
	if cs.trail {
		utils.ApplyLUT(rc.Buffers.Frame, cs.fade)
		return
	}
	utils.ClearRGBA(rc.Buffers.Frame)
}

// EndFrame runs after drawing and fills Buffers.Output with the frame to emit.
func (cs *CompositeSystem) EndFrame(rc *game.RenderContext) {
	if !cs.glow {
		return
	}
	fb := rc.Buffers
	// 辉光只写入输出缓冲区，不回写到累积画布
	cs.blur.Apply(fb.Glow, fb.Frame)
	utils.AddSaturate(fb.Output, fb.Frame, fb.Glow)
}

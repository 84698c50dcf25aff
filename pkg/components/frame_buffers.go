package components

import (
	"image"

	"github.com/decker502/fireworks/pkg/utils"
)

// FrameBuffers holds the canvases owned by one render run.
//
// Frame is the working canvas particles are drawn onto. With trails enabled
// it persists between frames as an accumulation buffer; otherwise it is
// cleared at the start of every frame. Glow is scratch space for the blurred
// copy of Frame. Output is what the frame sink receives: a separate buffer
// when glow is enabled, otherwise Frame itself.
//
// This is a pure data component; CompositeSystem and RenderSystem mutate it.
type FrameBuffers struct {
	Width  int
	Height int

	Frame  *image.RGBA
	Glow   *image.RGBA
	Output *image.RGBA
}

// NewFrameBuffers allocates opaque black buffers of the given size.
// The glow and output buffers are only allocated when glow is true.
func NewFrameBuffers(width, height int, glow bool) *FrameBuffers {
	fb := &FrameBuffers{
		Width:  width,
		Height: height,
		Frame:  utils.NewOpaqueRGBA(width, height),
	}
	if glow {
		fb.Glow = utils.NewOpaqueRGBA(width, height)
		fb.Output = utils.NewOpaqueRGBA(width, height)
	} else {
		fb.Output = fb.Frame
	}
	return fb
}

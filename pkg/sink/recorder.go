package sink

import (
	"image"
)

// Recorder is an in-memory sink that remembers what it received.
// Frame copies are only kept when KeepFrames is set.
type Recorder struct {
	KeepFrames bool

	Indices []int
	Frames  []*image.RGBA
	Closed  bool
}

// WriteFrame records the frame index and optionally a copy of the pixels.
func (r *Recorder) WriteFrame(index int, frame *image.RGBA) error {
	r.Indices = append(r.Indices, index)
	if r.KeepFrames {
		cp := image.NewRGBA(frame.Bounds())
		copy(cp.Pix, frame.Pix)
		r.Frames = append(r.Frames, cp)
	}
	return nil
}

// Close marks the recorder closed.
func (r *Recorder) Close() error {
	r.Closed = true
	return nil
}

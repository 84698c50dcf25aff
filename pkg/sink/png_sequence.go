package sink

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// PNGSequenceSink writes every frame as frame_NNNNNN.png into a directory.
type PNGSequenceSink struct {
	dir     string
	next    int
	encoder png.Encoder
}

// NewPNGSequenceSink creates dir if needed and returns a sink writing into it.
func NewPNGSequenceSink(dir string) (*PNGSequenceSink, error) {
	if err := EnsureDir(dir); err != nil {
		return nil, err
	}
	return &PNGSequenceSink{
		dir:     dir,
		encoder: png.Encoder{CompressionLevel: png.BestSpeed},
	}, nil
}

// FramePath returns the file name used for frame index.
func (s *PNGSequenceSink) FramePath(index int) string {
	return filepath.Join(s.dir, fmt.Sprintf("frame_%06d.png", index))
}

// WriteFrame encodes the frame to its own file.
func (s *PNGSequenceSink) WriteFrame(index int, frame *image.RGBA) error {
	if err := checkOrder(index, s.next); err != nil {
		return err
	}

	f, err := os.Create(s.FramePath(index))
	if err != nil {
		return fmt.Errorf("failed to create frame file: %w", err)
	}
	if err := s.encoder.Encode(f, frame); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode frame %d: %w", index, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close frame %d: %w", index, err)
	}

	s.next++
	return nil
}

// Close is a no-op; every frame is complete once written.
func (s *PNGSequenceSink) Close() error {
	return nil
}

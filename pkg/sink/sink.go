// Package sink provides destinations for rendered frames.
//
// A FrameSink receives one finished frame per simulated step, in strict
// order, and is closed once after the last frame. Writes are synchronous: a
// call returns only after the frame has been handed to the underlying
// resource, and the frame buffer may be reused by the caller immediately
// afterwards.
package sink

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
)

// FrameSink consumes rendered frames.
type FrameSink interface {
	// WriteFrame appends frame number index. Frames arrive with index
	// 0, 1, 2, ... and the same bounds every time.
	WriteFrame(index int, frame *image.RGBA) error

	// Close finalizes the output and releases its resources.
	Close() error
}

// Format selects the kind of sink the app creates.
type Format string

const (
	// FormatMP4 encodes an .mp4 file through ffmpeg.
	FormatMP4 Format = "mp4"
	// FormatPNG writes one PNG file per frame into a directory.
	FormatPNG Format = "png"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatMP4, FormatPNG:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q (want mp4 or png)", s)
}

// OutputPath returns the path of a run's output inside dir, named by the
// run's start time in epoch seconds: <dir>/<epoch>.mp4 for video, <dir>/<epoch>
// for a PNG sequence.
func OutputPath(dir string, epoch int64, format Format) string {
	name := strconv.FormatInt(epoch, 10)
	if format == FormatMP4 {
		name += ".mp4"
	}
	return filepath.Join(dir, name)
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

// checkOrder returns an error unless index is the next expected frame
func checkOrder(index, next int) error {
	if index != next {
		return fmt.Errorf("frame %d out of order, expected %d", index, next)
	}
	return nil
}

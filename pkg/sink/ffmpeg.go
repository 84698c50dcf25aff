package sink

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// DefaultFFmpegBinary is the executable used when FFmpegOptions.Binary is empty.
const DefaultFFmpegBinary = "ffmpeg"

// FFmpegOptions configures an FFmpegSink.
type FFmpegOptions struct {
	Path   string
	Width  int
	Height int
	FPS    int
	Codec  string

	// Binary overrides the ffmpeg executable
	Binary string

	Logger hclog.Logger
}

// FFmpegSink streams raw RGBA frames to an ffmpeg process that encodes them
// into a video file at a fixed frame rate.
type FFmpegSink struct {
	opts   FFmpegOptions
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	next   int
	closed bool
	logger hclog.Logger
}

// ffmpegArgs builds the ffmpeg command line for the options
func ffmpegArgs(opts FFmpegOptions) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"-r", strconv.Itoa(opts.FPS),
		"-i", "-",
		"-an",
		"-c:v", opts.Codec,
		"-pix_fmt", "yuv420p",
		opts.Path,
	}
}

// NewFFmpegSink starts ffmpeg writing to opts.Path.
// Returns an error if the process cannot be started.
func NewFFmpegSink(opts FFmpegOptions) (*FFmpegSink, error) {
	if opts.Binary == "" {
		opts.Binary = DefaultFFmpegBinary
	}
	if opts.Codec == "" {
		opts.Codec = "mpeg4"
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	s := &FFmpegSink{opts: opts, logger: logger}
	s.cmd = exec.Command(opts.Binary, ffmpegArgs(opts)...)
	s.cmd.Stderr = &s.stderr

	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open ffmpeg stdin: %w", err)
	}
	s.stdin = stdin

	if err := s.cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", opts.Binary, err)
	}

	logger.Debug("ffmpeg started", "path", opts.Path, "args", strings.Join(s.cmd.Args, " "))
	return s, nil
}

// WriteFrame writes one frame's pixels to ffmpeg.
func (s *FFmpegSink) WriteFrame(index int, frame *image.RGBA) error {
	if s.closed {
		return errors.New("write to closed ffmpeg sink")
	}
	if err := checkOrder(index, s.next); err != nil {
		return err
	}

	b := frame.Bounds()
	if b.Dx() != s.opts.Width || b.Dy() != s.opts.Height {
		return fmt.Errorf("frame %d is %dx%d, sink expects %dx%d", index, b.Dx(), b.Dy(), s.opts.Width, s.opts.Height)
	}

	rowBytes := 4 * b.Dx()
	if frame.Stride == rowBytes {
		if _, err := s.stdin.Write(frame.Pix[:rowBytes*b.Dy()]); err != nil {
			return s.writeError(index, err)
		}
	} else {
		for y := 0; y < b.Dy(); y++ {
			row := frame.Pix[y*frame.Stride : y*frame.Stride+rowBytes]
			if _, err := s.stdin.Write(row); err != nil {
				return s.writeError(index, err)
			}
		}
	}

	s.next++
	return nil
}

// writeError wraps a pipe failure with ffmpeg's own diagnostics
func (s *FFmpegSink) writeError(index int, err error) error {
	return fmt.Errorf("failed to write frame %d to ffmpeg: %w (%s)", index, err, strings.TrimSpace(s.stderr.String()))
}

// Frames returns the number of frames written so far.
func (s *FFmpegSink) Frames() int {
	return s.next
}

// Close ends the input stream and waits for ffmpeg to finish the file.
func (s *FFmpegSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.stdin.Close(); err != nil {
		s.logger.Warn("closing ffmpeg stdin failed", "error", err)
	}
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg exited with error: %w (%s)", err, strings.TrimSpace(s.stderr.String()))
	}

	s.logger.Debug("ffmpeg finished", "path", s.opts.Path, "frames", s.next)
	return nil
}

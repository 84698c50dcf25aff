// Package app drives firework renders: it owns the run loop, picks the
// output sink and repeats the run as many times as the profile asks.
//
// The CLI in main.go builds a Config and calls NewApp then Run.
// embedded.Init must be called before loading built-in profiles.
package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/sink"
)

// SinkFactory opens the sink for one run writing to path.
type SinkFactory func(path string, profile *config.Profile, logger hclog.Logger) (sink.FrameSink, error)

// Config defines how the app renders.
type Config struct {
	// Profile is the validated render profile
	Profile *config.Profile

	// OutputDir receives one file (or PNG directory) per run
	OutputDir string

	Format sink.Format

	// Seed makes runs reproducible when Seeded is true. Run n uses Seed+n.
	Seed   int64
	Seeded bool

	// NewSink overrides the sink chosen by Format
	NewSink SinkFactory

	// FFmpegBinary overrides the ffmpeg executable for mp4 output
	FFmpegBinary string

	Logger hclog.Logger

	// Now is the wall clock used for file names and seeding
	Now func() time.Time
}

// App renders the configured profile Profile.Repeat times.
type App struct {
	cfg    Config
	logger hclog.Logger

	lastEpoch int64
}

// NewApp validates cfg and prepares the output directory.
func NewApp(cfg Config) (*App, error) {
	if cfg.Profile == nil {
		return nil, errors.New("no profile configured")
	}
	if err := cfg.Profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %q: %w", cfg.Profile.Name, err)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "render"
	}
	if cfg.Format == "" {
		cfg.Format = sink.FormatMP4
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewSink == nil {
		cfg.NewSink = defaultSinkFactory(cfg.Format, cfg.FFmpegBinary)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	if err := sink.EnsureDir(cfg.OutputDir); err != nil {
		return nil, err
	}

	return &App{cfg: cfg, logger: logger}, nil
}

// Run renders every repetition in sequence and returns the output paths.
// It stops at the first failed or cancelled run.
func (a *App) Run(ctx context.Context) ([]string, error) {
	p := a.cfg.Profile
	outputs := make([]string, 0, p.Repeat)

	a.logger.Info("starting render",
		"profile", p.Name,
		"size", fmt.Sprintf("%dx%d", p.Width, p.Height),
		"fps", p.FPS,
		"frames", p.TotalFrames(),
		"repeat", p.Repeat,
		"format", string(a.cfg.Format))

	for run := 1; run <= p.Repeat; run++ {
		path, err := a.runOnce(ctx, run)
		if err != nil {
			return outputs, err
		}
		outputs = append(outputs, path)
	}
	return outputs, nil
}

// runOnce renders the run with 1-based ordinal run
func (a *App) runOnce(ctx context.Context, run int) (string, error) {
	p := a.cfg.Profile

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to create run id: %w", err)
	}
	logger := a.logger.With("run", id.String())

	path := sink.OutputPath(a.cfg.OutputDir, a.nextEpoch(), a.cfg.Format)

	out, err := a.cfg.NewSink(path, p, logger.Named("sink"))
	if err != nil {
		return "", fmt.Errorf("failed to open output %s: %w", path, err)
	}

	seed := a.seedFor(run)
	logger.Debug("run started", "video", run, "path", path, "seed", seed)

	progress := game.NewProgressReporter(p.TotalFrames(), run, p.Repeat, logger)
	pipeline := NewPipeline(p, rand.New(rand.NewSource(seed)), out, progress, logger)

	if err := pipeline.Run(ctx); err != nil {
		return "", fmt.Errorf("render %s: %w", path, err)
	}

	logger.Info("video saved", "path", path)
	return path, nil
}

// nextEpoch returns the current epoch second, bumped past the previous run's
// so that back-to-back short runs never share a file name
func (a *App) nextEpoch() int64 {
	epoch := a.cfg.Now().Unix()
	if epoch <= a.lastEpoch {
		epoch = a.lastEpoch + 1
	}
	a.lastEpoch = epoch
	return epoch
}

// seedFor picks the generator seed for a run
func (a *App) seedFor(run int) int64 {
	if a.cfg.Seeded {
		return a.cfg.Seed + int64(run-1)
	}
	return a.cfg.Now().UnixNano()
}

// defaultSinkFactory opens ffmpeg or PNG sinks according to format
func defaultSinkFactory(format sink.Format, binary string) SinkFactory {
	return func(path string, p *config.Profile, logger hclog.Logger) (sink.FrameSink, error) {
		switch format {
		case sink.FormatPNG:
			return sink.NewPNGSequenceSink(path)
		case sink.FormatMP4:
			return sink.NewFFmpegSink(sink.FFmpegOptions{
				Path:   path,
				Width:  p.Width,
				Height: p.Height,
				FPS:    p.FPS,
				Codec:  p.Codec,
				Binary: binary,
				Logger: logger,
			})
		}
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decker502/fireworks/pkg/app"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/logging"
	"github.com/decker502/fireworks/pkg/sink"
)

// RenderOptions holds the flags of the render command.
type RenderOptions struct {
	Profile    string
	ConfigPath string
	OutputDir  string
	Format     string
	Repeat     int
	Seed       int64
	Prune      bool
	FFmpeg     string
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a firework video",
		Long: `Render one or more firework videos from a built-in profile or a YAML file.

Output files are named by the epoch second the run started:
<output-dir>/<epoch>.mp4, or <output-dir>/<epoch>/frame_NNNNNN.png with --format png.
When a run starts in the same second as the previous one (short runs with
--repeat), its name uses the next free second, so the name can be ahead of
the actual start time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Profile, "profile", "p", "burst", "built-in profile name (see 'fireworks profiles')")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a profile YAML file; overrides --profile")
	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", "render", "directory receiving the output")
	cmd.Flags().StringVar(&opts.Format, "format", string(sink.FormatMP4), "output format (mp4|png)")
	cmd.Flags().IntVar(&opts.Repeat, "repeat", 0, "number of videos to render; defaults to the profile's repeat")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed for reproducible output")
	cmd.Flags().BoolVar(&opts.Prune, "prune", false, "drop bursts that have faded out or fallen off the canvas")
	cmd.Flags().StringVar(&opts.FFmpeg, "ffmpeg", sink.DefaultFFmpegBinary, "ffmpeg executable")

	return cmd
}

func runRender(cmd *cobra.Command, rootOpts *RootOptions, opts *RenderOptions) error {
	logger := logging.NewLogger("fireworks", logging.GetLogLevel(rootOpts.LogLevel), cmd.ErrOrStderr())

	profile, err := loadProfile(opts)
	if err != nil {
		return err
	}

	format, err := sink.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	if opts.Repeat < 0 {
		return fmt.Errorf("repeat must not be negative, got %d", opts.Repeat)
	}
	if opts.Repeat > 0 {
		profile.Repeat = opts.Repeat
	}
	if opts.Prune {
		profile.Prune = true
	}

	a, err := app.NewApp(app.Config{
		Profile:      profile,
		OutputDir:    opts.OutputDir,
		Format:       format,
		Seed:         opts.Seed,
		Seeded:       cmd.Flags().Changed("seed"),
		FFmpegBinary: opts.FFmpeg,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	outputs, err := a.Run(cmd.Context())
	if err != nil {
		return err
	}

	for _, path := range outputs {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

// loadProfile reads --config when given, otherwise the named built-in profile
func loadProfile(opts *RenderOptions) (*config.Profile, error) {
	if opts.ConfigPath != "" {
		return config.LoadProfile(opts.ConfigPath)
	}
	return config.LoadBuiltinProfile(opts.Profile)
}

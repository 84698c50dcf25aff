// Package cli implements the fireworks command line.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	LogLevel string
}

// NewRootCommand creates the root command for the fireworks CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "fireworks",
		Short: "Render firework particle animations to video",
		Long: `Render firework particle animations to video files.

Each run simulates bursts of particles under gravity, velocity decay and
alpha fade, draws them frame by frame and encodes the frames with ffmpeg
(or writes a PNG sequence).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (trace, debug, info, warn, error); defaults to $FIREWORKS_LOG_LEVEL or info")

	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewProfilesCommand(opts))

	return cmd
}

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/decker502/fireworks/pkg/config"
)

// NewProfilesCommand creates the profiles command.
func NewProfilesCommand(_ *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List built-in render profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := config.BuiltinProfileNames()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSIZE\tFPS\tSECONDS\tSPAWN\tMARK\tTRAIL\tGLOW\tREPEAT")
			for _, name := range names {
				p, err := config.LoadBuiltinProfile(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%dx%d\t%d\t%d\t%s\t%s\t%v\t%v\t%d\n",
					p.Name, p.Width, p.Height, p.FPS, p.DurationSeconds,
					spawnLabel(p.SpawnInterval), p.Mark, p.Trail, p.Glow, p.Repeat)
			}
			return tw.Flush()
		},
	}
}

// spawnLabel describes the spawn cadence
func spawnLabel(interval int) string {
	if interval == 0 {
		return "once"
	}
	return fmt.Sprintf("every %d", interval)
}

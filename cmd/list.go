package cmd

import (
	"fmt"

	"github.com/automoto/oshu/beatmap"
	cfg "github.com/automoto/oshu/config"
	"github.com/automoto/oshu/console"
	"github.com/automoto/oshu/library"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var flagDir string
	c := &cobra.Command{
		Use:   "list",
		Short: "List installed beatmaps",
		Long:  `Shows the beatmaps found under $OSHU_HOME/beatmaps, one line per difficulty.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := flagDir
			if dir == "" {
				dir = cfg.BeatmapsDir()
			}
			entries, err := library.Scan(cmd.Context(), dir, beatmap.FileLoader)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No beatmaps in %s.\n", dir)
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s - %s [%s]  %d hits, %s\n    %s\n",
					e.Artist, e.Title, e.Version, e.Hits, console.FormatClock(e.Duration), e.Path)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Run 'oshu run <path>' to play a beatmap.")
			return nil
		},
	}
	c.Flags().StringVar(&flagDir, "dir", "", "Beatmap library (default: $OSHU_HOME/beatmaps)")
	return c
}

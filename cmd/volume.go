package cmd

import (
	"fmt"

	cfg "github.com/automoto/oshu/config"
	"github.com/automoto/oshu/settings"
	"github.com/spf13/cobra"
)

func newVolumeCmd() *cobra.Command {
	var flagMusic, flagEffects float64
	c := &cobra.Command{
		Use:   "volume",
		Short: "Show or save the music and effect volumes",
		Long: `Without flags, prints the saved volumes. With --music or --effects,
saves the new volumes (0 to 1) for later runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := settings.Open()
			if err != nil {
				return err
			}
			saved, err := store.Load()
			if err != nil {
				return err
			}
			settings.Apply(saved)

			changed := false
			if cmd.Flags().Changed("music") {
				cfg.Audio.MusicVolume = flagMusic
				changed = true
			}
			if cmd.Flags().Changed("effects") {
				cfg.Audio.EffectVolume = flagEffects
				changed = true
			}
			current := settings.Current()
			if changed {
				// Apply clamps the new values before they are saved.
				settings.Apply(current)
				current = settings.Current()
				if err := store.Save(current); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "music %.2f, effects %.2f\n", current.MusicVolume, current.EffectVolume)
			return nil
		},
	}
	c.Flags().Float64Var(&flagMusic, "music", 1, "Music volume, 0 to 1")
	c.Flags().Float64Var(&flagEffects, "effects", 1, "Hit sound volume, 0 to 1")
	return c
}

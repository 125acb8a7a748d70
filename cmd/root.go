// Package cmd implements the oshu command line.
//
// Usage:
//
//	oshu run [--autoplay] [--pause] <beatmap.osu>   - Play a beatmap
//	oshu list                                       - List installed beatmaps
//	oshu volume [--music v] [--effects v]           - Show or save volumes
//
// Exit codes: 0 on success, 1 when the beatmap cannot be loaded, 2 when the
// audio cannot be opened, 3 when the display cannot be opened.
package cmd

import (
	"errors"
	"os"

	cfg "github.com/automoto/oshu/config"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Failure kinds, mapped to exit codes by ExitCode.
var (
	ErrBeatmap = errors.New("beatmap error")
	ErrAudio   = errors.New("audio error")
	ErrDisplay = errors.New("display error")
)

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrBeatmap):
		return 1
	case errors.Is(err, ErrAudio):
		return 2
	case errors.Is(err, ErrDisplay):
		return 3
	}
	return 1
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var (
		flagVerbose bool
		flagConfig  string
	)
	root := &cobra.Command{
		Use:   "oshu",
		Short: "oshu! - a lightweight osu! standard player",
		Long: `oshu! plays osu! standard beatmaps: hit circles and sliders, judged
against the music.

Controls:
  Z/X, mouse buttons  - Hit
  Space/P             - Pause
  Left/Right          - Seek backward 10s / forward 20s
  A                   - Toggle autoplay
  Q                   - Quit

Environment:
  OSHU_HOME     - Beatmap library and config root (default: ~/.oshu)
  OSHU_QUALITY  - low or default`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flagVerbose {
				log.SetLevel(log.DebugLevel)
			}
			path := flagConfig
			if path == "" {
				path = cfg.DefaultPath()
			}
			return cfg.Load(path)
		},
	}

	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: $OSHU_HOME/oshu.yaml)")

	root.AddCommand(newRunCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newVolumeCmd())
	return root
}

// Execute runs the command line and returns the exit code.
func Execute() int {
	log.SetDefault(log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "oshu",
	}))

	err := NewRootCmd().Execute()
	if err != nil {
		log.Error(err.Error())
	}
	return ExitCode(err)
}

package cmd

import (
	"fmt"
	"image"
	"os"

	"github.com/automoto/oshu/audio"
	"github.com/automoto/oshu/audio/device"
	"github.com/automoto/oshu/beatmap"
	cfg "github.com/automoto/oshu/config"
	"github.com/automoto/oshu/console"
	"github.com/automoto/oshu/fonts"
	"github.com/automoto/oshu/game"
	"github.com/automoto/oshu/loop"
	"github.com/automoto/oshu/scenes"
	"github.com/automoto/oshu/settings"
	"github.com/automoto/oshu/systems"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var (
		flagAutoplay bool
		flagPause    bool
	)
	c := &cobra.Command{
		Use:   "run [--autoplay] [--pause] <beatmap.osu>",
		Short: "Play a beatmap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], flagAutoplay, flagPause)
		},
	}
	c.Flags().BoolVar(&flagAutoplay, "autoplay", false, "Let the game play itself")
	c.Flags().BoolVar(&flagPause, "pause", false, "Start paused")
	return c
}

// run plays one beatmap to the end or until the user quits. Everything
// opened so far is released when a later step fails.
func run(path string, autoplay, paused bool) error {
	b, err := beatmap.FileLoader.Load(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeatmap, err)
	}
	log.Info("loaded beatmap",
		"title", b.Metadata.DisplayTitle(),
		"version", b.Metadata.Version,
		"hits", b.Len(),
	)

	spec := audio.StereoSpec(cfg.Audio.SampleRate)
	music, err := audio.OpenStream(b.AudioPath(), spec)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAudio, err)
	}

	settings.LoadAndApply()
	mixer := audio.NewMixer(cfg.Audio.EffectChannels)
	mixer.SetMusicVolume(cfg.Audio.MusicVolume)
	dev, err := device.Open(cfg.Audio.SampleRate, mixer, cfg.Audio.BufferSize)
	if err != nil {
		music.Close()
		return fmt.Errorf("%w: %w", ErrAudio, err)
	}
	defer func() {
		if err := dev.Close(); err != nil {
			log.Warn("could not close audio device", "error", err)
		}
	}()
	dev.SetMusic(music)

	sounds := audio.NewLibrary(b.Dir(), spec, mixer)
	sounds.SetVolume(cfg.Audio.EffectVolume)
	for _, t := range beatmap.SoundTypes {
		sounds.SetTypeVolume(t, cfg.Sound.Multiplier(t))
	}

	g := game.New(b, dev, sounds, game.Options{
		Autoplay:          autoplay,
		SliderEndLeniency: cfg.Game.SliderEndLeniency,
		UnpauseRewind:     cfg.Game.UnpauseRewind,
	})

	if err := fonts.LoadDefaults(cfg.UI.FontSize, cfg.UI.TitleFontSize); err != nil {
		return fmt.Errorf("%w: %w", ErrDisplay, err)
	}
	screens := scenes.NewDispatcher(g, scenes.Options{
		Mixer:      mixer,
		Duration:   dev.Duration(),
		Background: loadBackground(b),
		Paused:     paused,
	})
	input, err := systems.NewInputSource()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDisplay, err)
	}

	status := console.New(os.Stdout, dev.Duration())
	l := loop.New(g, screens, input, loop.Options{
		FrameDuration:      cfg.Display.FrameDuration(),
		MissedFrameWarning: cfg.Game.MissedFrameWarning,
		Status: func(screen scenes.ScreenID, now float64) {
			status.Update(screen.String(), now)
		},
	})

	ebiten.SetWindowSize(cfg.Display.Width, cfg.Display.Height)
	ebiten.SetWindowTitle(fmt.Sprintf("%s - %s", cfg.Display.Title, b.Metadata.DisplayTitle()))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Display.FrameRate)

	if err := ebiten.RunGame(l); err != nil {
		return fmt.Errorf("%w: %w", ErrDisplay, err)
	}

	score := g.Score()
	status.Finish(score.String())
	log.Info("game over", "good", score.Good, "missed", score.Bad, "skipped", score.Skipped)
	return nil
}

// loadBackground decodes the beatmap's background, or returns nil. A
// missing background is not an error.
func loadBackground(b *beatmap.Beatmap) image.Image {
	path := b.BackgroundPath()
	if path == "" {
		return nil
	}
	img, err := systems.LoadBackground(path)
	if err != nil {
		log.Warn("could not load background", "error", err)
		return nil
	}
	return img
}

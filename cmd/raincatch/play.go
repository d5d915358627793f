package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/raincatch/internal/config"
	"github.com/vovakirdan/raincatch/internal/core"
	"github.com/vovakirdan/raincatch/internal/games/raincatch"
	"github.com/vovakirdan/raincatch/internal/logging"
	"github.com/vovakirdan/raincatch/internal/platform/audio"
	"github.com/vovakirdan/raincatch/internal/platform/tui"
	"github.com/vovakirdan/raincatch/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMute       bool
)

var playCmd = &cobra.Command{
	Use:   "play [scene]",
	Short: "Play a scene",
	Long: `Start playing the specified scene, or pick one from a menu.

Controls:
  Left/Right, A/D  - Move the bucket
  T                - Toggle mouse control
  M                - Mute/unmute
  P/Esc            - Pause (shows collision diagnostics)
  R                - Restart (after game over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at lowest difficulty, wider bucket, more misses allowed
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, narrower bucket, fewer misses allowed
  fixed  - No progression, stays at config's initial level

Examples:
  raincatch play
  raincatch play raincatch --difficulty easy
  raincatch play storm --mute
  raincatch play --config ./my-rain.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom scene config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with audio muted")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, closer, err := playLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := applySceneFlags(logger); err != nil {
		return err
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	sceneID := raincatch.SceneRaincatch
	if len(args) > 0 {
		sceneID = args[0]
	} else {
		res, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		if res.Quit {
			return nil
		}
		sceneID, cfg = res.SceneID, res.Config
	}

	scene, err := registry.Create(sceneID)
	if err != nil {
		return fmt.Errorf("%w\nRun 'raincatch list' to see available scenes", err)
	}

	player := audio.Open(audio.WithLogger(logger.WithPrefix("audio")), audio.WithMuted(flagMute))
	if p, ok := player.(*audio.Player); ok {
		defer p.Close()
	}
	if a, ok := scene.(registry.Audible); ok {
		a.SetSound(player)
	}

	state, err := tui.Run(scene, cfg, tui.WithLogger(logger.WithPrefix("tui")))
	if err != nil {
		return fmt.Errorf("running %s: %w", sceneID, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Caught %d, missed %d.\n", state.Score, state.Missed)
	return nil
}

// playLogger logs to a file so the alt screen stays intact.
func playLogger() (*log.Logger, io.Closer, error) {
	path := flagLogFile
	if path == "" {
		path = logging.DefaultFile
	}
	return logging.OpenFile(path, flagLogLevel, "raincatch")
}

// applySceneFlags hands config path, difficulty and logger to the scenes.
func applySceneFlags(logger *log.Logger) error {
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
	}
	raincatch.SetConfigPath(flagConfig)
	raincatch.SetDifficultyPreset(flagDifficulty)
	raincatch.SetLogger(logger)
	return nil
}

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/smasonuk/tubefall"
	"github.com/spf13/cobra"
)

var (
	presetName string
	presetsDir string
	width      int
	height     int
	debug      bool
	autoplay   bool
)

func main() {
	cmd := &cobra.Command{
		Use:   "tubefall",
		Short: "Walk into the room, click the pop-up, fall down the tube",
		Long: `tubefall - a small software-rendered 3D scene

Controls:
  Scroll      - Walk towards the far wall
  Mouse drag  - Look around
  Mouse move  - Parallax
  Click       - Click the pop-up once it appears`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	cmd.Flags().StringVar(&presetName, "preset", tubefall.DefaultPresetName, "Scene preset to load")
	cmd.Flags().StringVar(&presetsDir, "presets-dir", "", "Load presets from this directory instead of the built-in set")
	cmd.Flags().IntVar(&width, "width", 960, "Window width")
	cmd.Flags().IntVar(&height, "height", 600, "Window height")
	cmd.Flags().BoolVar(&debug, "debug", false, "Show the HUD and debug logging")
	cmd.Flags().BoolVar(&autoplay, "autoplay", false, "Walk in and click the pop-up automatically")

	listCmd := &cobra.Command{
		Use:   "presets",
		Short: "List the available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := loader().Names()
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&presetsDir, "presets-dir", "", "Directory to list instead of the built-in set")
	cmd.AddCommand(listCmd)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loader() *tubefall.PresetLoader {
	if presetsDir != "" {
		return tubefall.NewPresetLoader(presetsDir)
	}
	return tubefall.NewEmbeddedPresetLoader()
}

func run() error {
	logger := tubefall.NewDefaultLogger("tubefall", debug)

	preset, err := loader().Load(presetName)
	if err != nil {
		return err
	}
	logger.Infof("loaded preset %s", preset.Name)

	driver, err := tubefall.NewFrameDriver(preset, width, height, logger)
	if err != nil {
		return fmt.Errorf("failed to build scene: %w", err)
	}

	var input tubefall.InputSource = tubefall.NewEbitenInput()
	if autoplay {
		input = tubefall.NewAutopilot(driver, 90)
	}

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("tubefall - " + preset.Name)
	ebiten.SetTPS(tubefall.TicksPerSecond)
	if err := ebiten.RunGame(tubefall.NewGame(driver, input, width, height, debug)); err != nil {
		log.Printf("game exited: %v", err)
		return err
	}
	return nil
}

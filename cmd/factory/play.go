package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-factory/internal/core"
	"github.com/vovakirdan/tui-factory/internal/games/factory"
	"github.com/vovakirdan/tui-factory/internal/platform/tui"
	"github.com/vovakirdan/tui-factory/internal/registry"
)

var (
	flagTheme   string
	flagSaveLog string
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Play the factory interactively. Without a level a menu lists every
level with its best score; after a game you return to the menu.

Controls:
  Arrows        - Move the cursor
  Enter/Space   - Apply the selected tool at the cursor
  j i l k       - Mining machine out left/top/right/bottom
  d s a w       - Conveyor left->right / top->bottom / right->left / bottom->top
  1 2 3 4       - Combiner out top/right/bottom/left
  x/Backspace   - Clear tool
  P             - Pause
  F4            - Save the action log
  R             - Restart (after time is up)
  Esc           - Back to the menu (paused or finished)
  Q/Ctrl+C      - Quit

Examples:
  factory play
  factory play 2a
  factory play 2a --seed 7 --save-log ./moves.txt
  factory play --theme mono`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagTheme, "theme", "default", "Color theme: default, mono")
	playCmd.Flags().StringVar(&flagSaveLog, "save-log", "", "Where F4 writes the action log (default ~/.factory/logs)")
}

func runPlay(_ *cobra.Command, args []string) error {
	set, err := loadLevels()
	if err != nil {
		return err
	}

	theme, ok := tui.ThemeByName(flagTheme)
	if !ok {
		return fmt.Errorf("unknown theme %q", flagTheme)
	}
	tui.SetTheme(theme)
	factory.SetActionLogPath(flagSaveLog)

	levelID := ""
	if len(args) == 1 {
		if _, err := set.Get(args[0]); err != nil {
			return fmt.Errorf("%w (run 'factory list' to see levels)", err)
		}
		levelID = args[0]
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seedOverride(),
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	for {
		if levelID == "" {
			res, err := tui.RunLevelMenu(set, store, cfg)
			if err != nil {
				return err
			}
			switch {
			case res.Quit:
				return nil
			case res.WantsScoreboard:
				back, err := tui.RunScoreboard(store, set, cfg.ScreenW, cfg.ScreenH)
				if err != nil {
					return err
				}
				if !back {
					return nil
				}
				continue
			}
			levelID = res.LevelID
		}

		factory.SetLevel(levelID)
		game, err := registry.Create("factory")
		if err != nil {
			return err
		}
		back, err := tui.Run(game, store, cfg)
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if !back {
			return nil
		}
		levelID = ""
	}
}

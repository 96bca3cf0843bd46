package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tatianab/absurd-path/internal/models"
	"github.com/tatianab/absurd-path/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [save_name]",
	Short: "Play in the full-screen terminal UI",
	Long: `Starts the terminal UI. Progress is read from and written to the named save
(default "current") inside the save directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}
		eng, err := loadEngine(cfg)
		if err != nil {
			return err
		}

		name := "current"
		if len(args) == 1 {
			name = args[0]
		}
		savePath := models.SavePath(cfg.SaveDir, name)

		game := eng.NewGame()
		fresh, _ := cmd.Flags().GetBool("new")
		if !fresh {
			snap, ok, err := models.LoadSnapshot(savePath)
			if err != nil {
				return err
			}
			if ok {
				game = models.FromSnapshot(snap)
			}
		}

		final, err := tui.Run(eng, game, savePath)
		if err != nil {
			return fmt.Errorf("running TUI: %w", err)
		}
		return models.SaveSnapshot(savePath, final.Snapshot())
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().Bool("new", false, "ignore any existing save and start over")
}

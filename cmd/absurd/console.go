package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tatianab/absurd-path/internal/console"
	"github.com/tatianab/absurd-path/internal/models"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Play on plain stdin/stdout",
	Long: `Plays the story with a numbered prompt, suitable for pipes and dumb terminals.
With --save, progress is loaded from the file when it exists and written back on exit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}
		eng, err := loadEngine(cfg)
		if err != nil {
			return err
		}

		savePath, _ := cmd.Flags().GetString("save")
		game := eng.NewGame()
		if savePath != "" {
			snap, ok, err := models.LoadSnapshot(savePath)
			if err != nil {
				return err
			}
			if ok {
				game = models.FromSnapshot(snap)
				fmt.Fprintf(cmd.OutOrStdout(), "Loaded save from %s\n", savePath)
			}
		}

		_, runErr := console.Run(eng, game, cmd.InOrStdin(), cmd.OutOrStdout())
		if savePath != "" {
			if err := models.SaveSnapshot(savePath, game.Snapshot()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Progress saved to %s\n", savePath)
		}
		return runErr
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
	consoleCmd.Flags().StringP("save", "s", "", "save file (.json or .yaml)")
}

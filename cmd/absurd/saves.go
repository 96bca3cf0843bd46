package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tatianab/absurd-path/internal/models"
	"github.com/tatianab/absurd-path/internal/storage"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List named saves and stored server sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		saves, err := models.ListSaves(cfg.SaveDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Saves in %s:\n", cfg.SaveDir)
		if len(saves) == 0 {
			fmt.Fprintln(out, "  (none)")
		}
		for _, name := range saves {
			snap, _, err := models.LoadSnapshot(models.SavePath(cfg.SaveDir, name))
			if err != nil {
				fmt.Fprintf(out, "  %-20s (unreadable: %v)\n", name, err)
				continue
			}
			fmt.Fprintf(out, "  %-20s at %s, %d visited\n", name, snap.Current, len(snap.Visited))
		}

		if cfg.DBPath == "" {
			return nil
		}
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		sessions, err := store.ListSessions(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nSessions in %s:\n", cfg.DBPath)
		if len(sessions) == 0 {
			fmt.Fprintln(out, "  (none)")
		}
		for _, s := range sessions {
			fmt.Fprintf(out, "  %s  at %-20s updated %s\n", s.ID, s.Current, s.UpdatedAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(savesCmd)
}

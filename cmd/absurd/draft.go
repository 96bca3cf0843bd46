package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tatianab/absurd-path/internal/author"
	"github.com/tatianab/absurd-path/internal/engine"
	"github.com/tatianab/absurd-path/internal/models"
)

var draftCmd = &cobra.Command{
	Use:   "draft [hint...]",
	Short: "Draft a new story with Gemini",
	Long: `Asks Gemini for a story matching the hint and writes it to --out.
A draft that fails validation is still written so it can be fixed by hand.
Requires GEMINI_API_KEY.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}
		if err := cfg.RequireGeminiKey(); err != nil {
			return err
		}
		outPath, _ := cmd.Flags().GetString("out")

		drafter, err := author.NewDrafter(cmd.Context(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return fmt.Errorf("creating drafter: %w", err)
		}
		defer drafter.Close()

		hint := strings.Join(args, " ")
		fmt.Fprintf(cmd.OutOrStdout(), "Drafting a story (hint: %q)...\n", hint)
		doc, draftErr := drafter.Draft(cmd.Context(), hint)
		if draftErr != nil && !errors.Is(draftErr, engine.ErrInvalidContent) {
			return draftErr
		}

		if err := models.SaveContentDoc(outPath, doc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d nodes to %s\n", len(doc.Nodes), outPath)
		if draftErr != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Warning: %v\n", draftErr)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(draftCmd)
	draftCmd.Flags().StringP("out", "o", "story.yaml", "where to write the drafted story")
}

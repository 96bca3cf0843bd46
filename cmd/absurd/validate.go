package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tatianab/absurd-path/internal/engine"
	"github.com/tatianab/absurd-path/internal/stories"
)

var validateCmd = &cobra.Command{
	Use:   "validate [story_file]",
	Short: "Check a story for dangling references and other authoring mistakes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}
		path := cfg.ContentPath
		if len(args) == 1 {
			path = args[0]
		}
		doc, err := stories.Load(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		content := engine.BuildContent(doc)
		fmt.Fprintf(out, "%d nodes, start %q\n", content.Len(), content.Start())

		for _, id := range content.Unreachable() {
			fmt.Fprintf(out, "warning: node %q is unreachable from the start\n", id)
		}

		if err := engine.Validate(doc); err != nil {
			var joined interface{ Unwrap() []error }
			if errors.As(err, &joined) {
				for _, e := range joined.Unwrap() {
					fmt.Fprintln(out, "error:", e)
				}
			} else {
				fmt.Fprintln(out, "error:", err)
			}
			return fmt.Errorf("story is not valid")
		}
		fmt.Fprintln(out, "ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

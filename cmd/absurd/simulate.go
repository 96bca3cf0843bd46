package main

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/tatianab/absurd-path/internal/models"
	"github.com/tatianab/absurd-path/internal/simulate"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play the story many times at random and report what happens",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}
		eng, err := loadEngine(cfg)
		if err != nil {
			return err
		}

		runs, _ := cmd.Flags().GetInt("runs")
		seed, _ := cmd.Flags().GetUint64("seed")
		maxSteps, _ := cmd.Flags().GetInt("max_steps")
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}

		bar := progressbar.Default(int64(runs), "Simulating")
		rep := simulate.Explore(eng.Content(), runs, seed, maxSteps, func(simulate.Run) {
			_ = bar.Add(1)
		})
		_ = bar.Finish()

		printReport(cmd, rep, seed)
		if len(rep.Errors) > 0 {
			return fmt.Errorf("%d runs hit engine errors", sum(rep.Errors))
		}
		return nil
	},
}

func printReport(cmd *cobra.Command, rep simulate.Report, seed uint64) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n--- %d runs (seed %d) ---\n", rep.Runs, seed)
	fmt.Fprintf(out, "Steps: avg %.1f, max %d\n", rep.AvgSteps, rep.MaxSteps)

	fmt.Fprintln(out, "\nEndings:")
	for _, c := range simulate.Sorted(rep.Endings) {
		fmt.Fprintf(out, "  %-24s %6d (%.1f%%)\n", c.Key, c.N, 100*float64(c.N)/float64(rep.Runs))
	}
	if len(rep.DeadEnds) > 0 {
		fmt.Fprintln(out, "\nDead ends (no available choice):")
		for _, c := range simulate.Sorted(rep.DeadEnds) {
			fmt.Fprintf(out, "  %-24s %6d\n", c.Key, c.N)
		}
	}
	if rep.Capped > 0 {
		fmt.Fprintf(out, "\nRuns stopped at the step cap: %d\n", rep.Capped)
	}
	for _, c := range simulate.Sorted(rep.Errors) {
		fmt.Fprintf(out, "\nError (%d runs): %s\n", c.N, c.Key)
	}

	fmt.Fprintln(out, "\nAverage stats:")
	for _, k := range models.StatKeys {
		fmt.Fprintf(out, "  %-16s %+.2f\n", k, rep.AvgStats[k])
	}
	if len(rep.Unvisited) > 0 {
		fmt.Fprintln(out, "\nNever visited:")
		for _, id := range rep.Unvisited {
			fmt.Fprintln(out, "  "+id)
		}
	}
}

func sum(m map[string]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().IntP("runs", "n", 1000, "number of playthroughs")
	simulateCmd.Flags().Uint64("seed", 0, "random seed (0 picks one from the clock)")
	simulateCmd.Flags().Int("max_steps", simulate.DefaultMaxSteps, "choices per playthrough before giving up")
}

// Package suggest implements the `triage suggest` command.
package suggest

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/triage/adapter/cli"
	"github.com/felixgeelhaar/triage/internal/triage/application/services"
)

var (
	file       string
	strategy   string
	weights    []string
	today      string
	count      int
	jsonOutput bool
)

// Cmd is the suggest command.
var Cmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest the top tasks to work on next",
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := cli.LoadTasks(file)
		if err != nil {
			return err
		}

		overrides, err := cli.ParseWeightFlags(weights)
		if err != nil {
			return err
		}

		ref, err := cli.ParseToday(today)
		if err != nil {
			return err
		}

		analyzer := services.NewAnalyzer(cli.Logger())
		suggestions, err := analyzer.Suggest(tasks, strategy, overrides, count, ref)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(suggestions)
		}

		fmt.Fprint(out, cli.RenderSuggestions(suggestions))
		return nil
	},
}

func init() {
	Cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with the tasks to score (required)")
	Cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "scoring strategy: smart_balance, fastest_wins, high_impact, deadline_driven")
	Cmd.Flags().StringArrayVarP(&weights, "weight", "w", nil, "weight override as factor=value (repeatable)")
	Cmd.Flags().StringVar(&today, "today", "", "reference date as YYYY-MM-DD (defaults to the current date)")
	Cmd.Flags().IntVarP(&count, "count", "n", services.DefaultSuggestionCount, "number of suggestions to return")
	Cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the raw suggestions as JSON")
	_ = Cmd.MarkFlagRequired("file")
}

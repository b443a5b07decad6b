// Package analyze implements the `triage analyze` command.
package analyze

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
	jsonOutput bool
)

// Cmd is the analyze command.
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score and rank a batch of tasks",
	Long: `Analyze reads tasks from a JSON file, scores each one with the
selected strategy, and prints them ranked by priority along with any
circular dependencies found.`,
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
		result, err := analyzer.Analyze(tasks, strategy, overrides, ref)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		fmt.Fprint(out, cli.RenderAnalysis(result))
		return nil
	},
}

func init() {
	Cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with the tasks to score (required)")
	Cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "scoring strategy: smart_balance, fastest_wins, high_impact, deadline_driven")
	Cmd.Flags().StringArrayVarP(&weights, "weight", "w", nil, "weight override as factor=value (repeatable)")
	Cmd.Flags().StringVar(&today, "today", "", "reference date as YYYY-MM-DD (defaults to the current date)")
	Cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the raw analysis result as JSON")
	_ = Cmd.MarkFlagRequired("file")
}

package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ArYaNDaNy/ingres-proto-model/internal/agent/pipeline"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/agent/responder"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/agent/router"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/api"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/dataset"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/llm"
)

var queryRole string

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Run one question through the pipeline and print the answer",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfigAndLogging()
		HandleError(err, "Failed to load configuration")

		ctx := context.Background()

		table, err := dataset.Load(cfg.Dataset.Path)
		HandleError(err, "Failed to load dataset")

		provider, err := llm.NewFromConfig(ctx, cfg.LLM)
		HandleError(err, "Failed to create LLM provider")

		coordinator := pipeline.New(
			router.New(provider),
			[]responder.Responder{
				responder.NewAnalysis(provider, table),
				responder.NewPolicy(provider),
				responder.NewCitizenSummary(provider),
				responder.NewVisualization(provider, table),
			},
			nil,
		)

		outcome := coordinator.Run(ctx, args[0], queryRole)
		printOutcome(outcome)
	},
}

func init() {
	queryCmd.Flags().StringVar(&queryRole, "role", "citizen",
		"Requester role: government, citizen, researcher or other")
}

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.FgYellow)
	errColor     = color.New(color.FgRed)
)

func printOutcome(outcome *pipeline.Outcome) {
	headingColor.Printf("Query: %s (role: %s)\n\n", outcome.Query, outcome.Role)

	if outcome.Selected == nil {
		errColor.Println("No responders ran for this query.")
		return
	}

	labelColor.Printf("Answer (%s):\n", outcome.SelectedKey)
	if outcome.Selected.Table != nil {
		_ = api.WriteJSON(color.Output, outcome.Selected.Table)
	} else {
		fmt.Println(outcome.Selected.Text)
	}

	if outcome.Visualization != nil && outcome.SelectedKey != responder.KeyVisualization {
		fmt.Println()
		labelColor.Println("Visualization payload:")
		_ = api.WriteJSON(color.Output, outcome.Visualization)
	}
}

package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ArYaNDaNy/ingres-proto-model/internal/agent/pipeline"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/agent/responder"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/agent/router"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/api"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/dataset"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/llm"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/logging"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfigAndLogging()
		HandleError(err, "Failed to load configuration")

		logger := logging.GetLogger("serve")
		ctx := context.Background()

		registry := prometheus.NewRegistry()
		m := metrics.New(registry)

		// A missing dataset leaves the server running; the query route
		// answers 503 until the file is fixed and the process restarted.
		var coordinator *pipeline.Coordinator
		table, err := dataset.Load(cfg.Dataset.Path)
		if err != nil {
			logger.Error("Failed to load dataset, query endpoint will return 503: %v", err)
		} else {
			logger.Info("Dataset loaded: %d rows, %d columns", table.NumRows(), len(table.Columns()))

			provider, err := llm.NewFromConfig(ctx, cfg.LLM)
			HandleError(err, "Failed to create LLM provider")
			instrumented := metrics.Instrument(provider, m)
			logger.Info("LLM provider ready: %s (%s)", instrumented.Name(), instrumented.Model())

			coordinator = pipeline.New(
				router.New(instrumented),
				[]responder.Responder{
					responder.NewAnalysis(instrumented, table),
					responder.NewPolicy(instrumented),
					responder.NewCitizenSummary(instrumented),
					responder.NewVisualization(instrumented, table),
				},
				m,
			)
		}

		server := api.NewServer(cfg.Server.Port, coordinator, registry, cfg.Server.CORSOrigins)
		HandleError(server.Start(ctx), "Failed to start API server")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("Shutdown signal received")
		if err := server.Stop(ctx); err != nil {
			logger.Error("Shutdown error: %v", err)
		}
	},
}

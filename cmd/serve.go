package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikogura/candidate-scorer/pkg/config"
	"github.com/nikogura/candidate-scorer/pkg/scoring"
	"github.com/nikogura/candidate-scorer/pkg/server"
	"github.com/nikogura/candidate-scorer/pkg/store"
	"github.com/nikogura/candidate-scorer/pkg/telemetry"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serveListen string

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the assessment HTTP API",
	Long: `Serves the scoring engine and the candidate record store over HTTP.

Candidates auto-save partial answers with PUT /api/v1/candidates/<token>/answers
and finish with POST /api/v1/candidates/<token>/submit. Reviewers read
/api/v1/candidates/<token>/result and /api/v1/stats. Prometheus metrics are
served on /metrics.

The record store (memory, file or redis) is chosen in the config file or with
CANDIDATE_SCORER_STORE.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	if serveListen != "" {
		cfg.Server.Listen = serveListen
	}
	cfg.Server.Debug = cfg.Server.Debug || getVerbose()

	var engine *scoring.Engine
	engine, err = scoring.NewEngine(cfg.Scoring)
	if err != nil {
		err = errors.Wrap(err, "failed to create scoring engine")
		return err
	}

	var st store.Store
	st, err = store.Open(ctx, cfg.Store)
	if err != nil {
		err = errors.Wrap(err, "failed to open record store")
		return err
	}
	defer st.Close()

	telemetry.Info("store.open", map[string]any{"backend": cfg.Store.Backend})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := server.New(engine, st, cfg.Server, reg)

	err = srv.Run(ctx, cfg.Server.Listen)
	return err
}

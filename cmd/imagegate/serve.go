package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/basel-ax/imagegate/internal/handler"
	"github.com/basel-ax/imagegate/internal/infrastructure/imagen"
	"github.com/basel-ax/imagegate/internal/logging"
	"github.com/basel-ax/imagegate/internal/scheduler"
	"github.com/basel-ax/imagegate/internal/server"
	"github.com/basel-ax/imagegate/internal/service"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the generation HTTP server",
	Long: `Run the HTTP server exposing POST /api/generate-meme and GET /healthz.

When DB_HOST is set, every generation outcome is written to the ledger
and rows older than LEDGER_RETENTION hours are pruned on
LEDGER_PRUNE_SCHEDULE.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Address to listen on (overrides LISTEN_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !cfg.HasAPIKey() {
		logging.Warn("GOOGLE_API_KEY is not set, generation requests will fail")
	}

	var recorder service.Recorder
	schedulerDone := make(chan struct{})
	close(schedulerDone)

	if cfg.LedgerEnabled() {
		db, repo, err := openLedger(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		recorder = repo

		retention := service.NewRetentionService(repo, cfg.LedgerRetention)
		sched := scheduler.New()
		err = sched.Add(ctx, "ledger-prune", cfg.LedgerPruneSchedule, func(ctx context.Context) {
			n, err := retention.Prune(ctx)
			if err != nil {
				logging.Error("ledger prune failed", "error", err)
				return
			}
			logging.Info("ledger pruned", "deleted", n)
		})
		if err != nil {
			return err
		}

		schedulerDone = make(chan struct{})
		go func() {
			defer close(schedulerDone)
			sched.Run(ctx)
		}()
	}

	client := imagen.NewClient(cfg.ImagenAPIURL, cfg.UpstreamTimeout)
	svc := service.NewImageGenerationService(cfg.GoogleAPIKey, client, recorder)

	logging.Info("upstream configured", "endpoint", client.Endpoint(), "timeout", cfg.UpstreamTimeout)

	err = server.New(cfg.ListenAddr, handler.NewRouter(svc)).Run(ctx)
	stop()
	<-schedulerDone
	return err
}

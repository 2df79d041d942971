package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"IndexIndicator/internal/logger"
	"IndexIndicator/internal/notifier"
	"IndexIndicator/internal/scheduler"
	"IndexIndicator/internal/server"
	"IndexIndicator/internal/ticker"
)

var runOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the sync scheduler",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&runOnStart, "run-on-start", os.Getenv("RUN_ON_START") == "true", "sync all tickers immediately")
}

func runServe(cmd *cobra.Command, args []string) error {
	log.Info().Msg("IndexIndicator starting")

	st := openStore()
	defer st.Close()
	col := newCollector(st)

	var sender notifier.Sender = notifier.NoopSender{}
	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sender = tn
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, col, st, sender, cfg.Tickers)
	if err := sched.RegisterAll(cfg.Schedule.SyncCron, cfg.Schedule.FearGreedCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("telegram polling started")
	}

	if runOnStart {
		log.Info().Msg("run-on-start enabled, syncing now")
		go sched.RunSyncNow()
	}

	access := logger.NewAccessLogger(logConfig(cfg))
	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: server.New(st, col, ticker.NewCatalog(cfg.Tickers)).Handler(server.Options{
			CORSOrigins:  cfg.Server.CORSOrigins,
			AccessLogger: &access,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", srv.Addr).Msg("api server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Info().Msg("shutdown signal received, stopping")
	case err := <-errCh:
		return err
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("IndexIndicator stopped")
	return nil
}

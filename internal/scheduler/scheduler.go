package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"IndexIndicator/internal/calculator"
	"IndexIndicator/internal/calendar"
	"IndexIndicator/internal/collector"
	"IndexIndicator/internal/notifier"
	"IndexIndicator/internal/store"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Store     store.Store
	Notifier  notifier.Sender
	Tickers   []string
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler. Overlapping runs of the same job are skipped.
func NewScheduler(ctx context.Context, col *collector.Collector, st store.Store, n notifier.Sender, tickers []string) *Scheduler {
	logger := cronLogger{log.Logger}
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		Collector: col,
		Store:     st,
		Notifier:  n,
		Tickers:   tickers,
		Ctx:       ctx,
	}
}

// RegisterAll registers the daily sync and Fear & Greed tasks.
func (s *Scheduler) RegisterAll(syncCron, fearGreedCron string) error {
	if _, err := s.Cron.AddFunc(syncCron, s.syncTask); err != nil {
		return fmt.Errorf("register sync task: %w", err)
	}
	if _, err := s.Cron.AddFunc(fearGreedCron, s.fearGreedTask); err != nil {
		return fmt.Errorf("register fear & greed task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("jobs", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunSyncNow executes the sync task immediately (for manual trigger / --run-on-start).
func (s *Scheduler) RunSyncNow() {
	s.syncTask()
}

func (s *Scheduler) syncTask() {
	log.Info().Strs("tickers", s.Tickers).Msg("running sync task")
	results := s.Collector.Sync(s.Ctx, s.Tickers)

	lines := make([]notifier.SyncLine, 0, len(results))
	for _, r := range results {
		line := notifier.SyncLine{Symbol: r.Symbol, Records: r.Records, Err: r.Err}
		if r.Err == nil {
			if recs, err := s.Store.ListDaily(s.Ctx, r.Symbol, "", ""); err != nil {
				log.Error().Err(err).Str("symbol", r.Symbol).Msg("load latest record failed")
			} else if len(recs) > 0 {
				line.Last = &recs[len(recs)-1]
			}
		}
		lines = append(lines, line)
	}
	s.trySend(notifier.FormatSyncReport(calendar.Day(time.Now()), lines))
}

func (s *Scheduler) fearGreedTask() {
	log.Info().Msg("running fear & greed task")
	fg, err := s.Collector.SyncFearGreed(s.Ctx)
	if err != nil {
		log.Error().Err(err).Msg("fear & greed sync failed")
		return
	}
	s.trySend(notifier.FormatFearGreed(fg))
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	switch fields[0] {
	case "/sync":
		go s.syncTask()
		return "sync started"
	case "/fgi":
		list, err := s.Store.ListFearGreed(ctx, 1)
		if err != nil {
			return notifier.FormatError("", err)
		}
		if len(list) == 0 {
			return "no fear & greed readings yet"
		}
		return notifier.FormatFearGreed(&list[0])
	case "/summary":
		symbol := ""
		if len(s.Tickers) > 0 {
			symbol = s.Tickers[0]
		}
		if len(fields) > 1 {
			symbol = fields[1]
		}
		recs, err := s.Store.ListDaily(ctx, symbol, "", "")
		if err != nil {
			return notifier.FormatError(symbol, err)
		}
		sum, err := calculator.Summarize(recs)
		if err != nil {
			return notifier.FormatError(symbol, err)
		}
		return notifier.FormatIndicatorSummary(sum)
	default:
		return "commands:\n• /sync\n• /fgi\n• /summary [symbol]"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification failed")
	}
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	l zerolog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}

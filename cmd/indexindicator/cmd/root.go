// Package cmd holds the indexindicator CLI commands.
package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"IndexIndicator/internal/collector"
	"IndexIndicator/internal/config"
	"IndexIndicator/internal/logger"
	"IndexIndicator/internal/store"
)

var (
	cfgFile string
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "indexindicator",
	Short: "Daily index charts and market sentiment",
	Long: `IndexIndicator collects daily prices for a fixed ticker list, stores them
in SQLite and serves Highstock chart configurations and the Fear & Greed index.

Commands:
    serve     HTTP API + scheduled sync
    sync      fetch daily records now
    chart     print a chart configuration
    export    write stored records as csv, json or parquet
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "configs/config.yaml", "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(exportCmd)
}

// initConfig loads configuration and sets up the global logger.
func initConfig() error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if verbose {
		c.Logging.Level = "debug"
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if err := logger.Init(logConfig(c), nil); err != nil {
		return err
	}
	cfg = c
	return nil
}

func logConfig(c *config.Config) logger.Config {
	return logger.Config{
		Level:         c.Logging.Level,
		Format:        c.Logging.Format,
		FileEnabled:   c.Logging.FileEnabled,
		FilePath:      c.Logging.FilePath,
		RotationSize:  c.Logging.RotationSize,
		RetentionDays: c.Logging.RetentionDays,
		Service:       "indexindicator",
	}
}

// openStore opens the SQLite store, falling back to memory when it cannot.
func openStore() store.Store {
	if cfg.Database.SQLitePath == "" {
		return store.NewMemoryStore()
	}
	st, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.Database.SQLitePath).Msg("open sqlite failed, using memory store")
		return store.NewMemoryStore()
	}
	return st
}

func newFetcher() collector.Fetcher {
	if cfg.DataSource.Provider == "mock" {
		return &collector.MockFetcher{Price: 400, Score: 50}
	}
	return collector.NewYahooFetcher(cfg.Proxy)
}

func newFearGreedSource() collector.FearGreedSource {
	if cfg.DataSource.Provider == "mock" {
		return &collector.MockFetcher{Score: 50}
	}
	return collector.NewFearGreedFetcher(cfg.DataSource.FearGreedURL, cfg.Proxy)
}

func newCollector(st store.Store) *collector.Collector {
	f := newFetcher()
	log.Info().Str("source", f.Name()).Msg("data source selected")
	col := collector.NewCollector(f, newFearGreedSource(), st, cfg.DataSource.LookbackDays)
	if rps := cfg.DataSource.RequestsPerSecond; rps > 0 {
		col.Limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return col
}

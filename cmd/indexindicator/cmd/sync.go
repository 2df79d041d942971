package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"IndexIndicator/internal/notifier"
)

var syncFearGreed bool

var syncCmd = &cobra.Command{
	Use:   "sync [symbols...]",
	Short: "Fetch and store daily records (configured tickers when none given)",
	RunE:  runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncFearGreed, "fgi", true, "also store the current Fear & Greed reading")
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st := openStore()
	defer st.Close()
	col := newCollector(st)

	symbols := args
	if len(symbols) == 0 {
		symbols = cfg.Tickers
	}

	failed := 0
	for _, r := range col.Sync(ctx, symbols) {
		if r.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%-8s error: %v\n", r.Symbol, r.Err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-8s %d records\n", r.Symbol, r.Records)
	}

	if syncFearGreed {
		fg, err := col.SyncFearGreed(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("fear & greed sync failed")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), notifier.FormatFearGreed(fg))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d symbols failed", failed, len(symbols))
	}
	return nil
}

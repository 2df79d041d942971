package notifier

import (
	"context"

	"github.com/rs/zerolog/log"
)

// NoopSender logs messages instead of delivering them. Used when Telegram is
// not configured.
type NoopSender struct{}

func (NoopSender) Send(_ context.Context, text string) error {
	log.Debug().Int("bytes", len(text)).Msg("notification dropped, no sender configured")
	return nil
}

func (n NoopSender) SendWithRetry(ctx context.Context, text string, _ int) error {
	return n.Send(ctx, text)
}

package collector

import (
	"context"

	"IndexIndicator/internal/model"
)

// Fetcher defines the interface for fetching daily market data.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.DailyRecord, error)
	Name() string
}

// FearGreedSource returns the latest Fear & Greed index reading.
type FearGreedSource interface {
	FetchFearGreed(ctx context.Context) (*model.FearGreed, error)
}

package store

import (
	"context"

	"IndexIndicator/internal/model"
)

// Store persists daily records and Fear & Greed readings.
//
// Daily records are unique per (symbol, date); upserting an existing day
// replaces its prices and keeps its ID. Symbols match case-insensitively.
type Store interface {
	UpsertDaily(ctx context.Context, records []model.DailyRecord) error
	// ListDaily returns records for symbol in ascending date order.
	// from and to are inclusive YYYY-MM-DD bounds; empty means unbounded.
	ListDaily(ctx context.Context, symbol, from, to string) ([]model.DailyRecord, error)
	SaveFearGreed(ctx context.Context, fg *model.FearGreed) error
	// ListFearGreed returns up to limit readings, newest first.
	ListFearGreed(ctx context.Context, limit int) ([]model.FearGreed, error)
	Close() error
}

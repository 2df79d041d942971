package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"IndexIndicator/internal/calendar"
	"IndexIndicator/internal/model"
	"IndexIndicator/internal/store"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	End       time.Time // last bar date; zero means today
	DailyData []model.DailyRecord
	Score     float64 // Fear & Greed reading
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, days int) ([]model.DailyRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	end := m.End
	if end.IsZero() {
		end = time.Now().UTC()
	}
	return generateMockBars(symbol, m.Price, days, end), nil
}

func (m *MockFetcher) FetchFearGreed(_ context.Context) (*model.FearGreed, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	end := m.End
	if end.IsZero() {
		end = time.Now().UTC()
	}
	return &model.FearGreed{Date: calendar.Day(end), Score: m.Score, Rating: "mock"}, nil
}

func generateMockBars(symbol string, basePrice float64, count int, end time.Time) []model.DailyRecord {
	bars := make([]model.DailyRecord, count)
	for i := 0; i < count; i++ {
		p := decimal.NewFromFloat(basePrice * (1 + float64(i-count/2)*0.001)).Round(4)
		bars[i] = model.DailyRecord{
			Symbol: symbol,
			Date:   calendar.Day(end.AddDate(0, 0, -(count - 1 - i))),
			Open:   p.Mul(decimal.RequireFromString("0.999")).Round(4),
			High:   p.Mul(decimal.RequireFromString("1.005")).Round(4),
			Low:    p.Mul(decimal.RequireFromString("0.995")).Round(4),
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// SyncResult reports the outcome of syncing one symbol.
type SyncResult struct {
	Symbol  string
	Records int
	Err     error
}

// Collector fetches market data and persists it to a store.
type Collector struct {
	Fetcher      Fetcher
	FearGreed    FearGreedSource
	Store        store.Store
	LookbackDays int
	// Limiter paces upstream requests; nil means unlimited.
	Limiter *rate.Limiter
}

// NewCollector creates a new Collector. fg may be nil.
func NewCollector(fetcher Fetcher, fg FearGreedSource, st store.Store, lookbackDays int) *Collector {
	return &Collector{Fetcher: fetcher, FearGreed: fg, Store: st, LookbackDays: lookbackDays}
}

// SyncSymbol fetches daily records for symbol and upserts them.
func (c *Collector) SyncSymbol(ctx context.Context, symbol string) (int, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return 0, err
		}
	}
	records, err := c.Fetcher.FetchDailyBars(ctx, symbol, c.LookbackDays)
	if err != nil {
		return 0, fmt.Errorf("fetch daily bars %s: %w", symbol, err)
	}
	if err := c.Store.UpsertDaily(ctx, records); err != nil {
		return 0, fmt.Errorf("store daily bars %s: %w", symbol, err)
	}
	return len(records), nil
}

// Sync syncs each symbol in turn. A failing symbol does not stop the others.
func (c *Collector) Sync(ctx context.Context, symbols []string) []SyncResult {
	results := make([]SyncResult, 0, len(symbols))
	for _, s := range symbols {
		if ctx.Err() != nil {
			results = append(results, SyncResult{Symbol: s, Err: ctx.Err()})
			continue
		}
		n, err := c.SyncSymbol(ctx, s)
		if err != nil {
			log.Warn().Err(err).Str("symbol", s).Str("source", c.Fetcher.Name()).Msg("sync failed")
		} else {
			log.Info().Str("symbol", s).Int("records", n).Msg("synced daily records")
		}
		results = append(results, SyncResult{Symbol: s, Records: n, Err: err})
	}
	return results
}

// SyncFearGreed fetches and stores the current Fear & Greed reading.
func (c *Collector) SyncFearGreed(ctx context.Context) (*model.FearGreed, error) {
	if c.FearGreed == nil {
		return nil, errors.New("no fear & greed source configured")
	}
	fg, err := c.FearGreed.FetchFearGreed(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.Store.SaveFearGreed(ctx, fg); err != nil {
		return nil, fmt.Errorf("store fear & greed: %w", err)
	}
	return fg, nil
}

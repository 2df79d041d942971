package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyRecord is one day's OHLCV observation for a ticker symbol.
// Date is kept as the ISO-8601 string it arrived with; parsing happens at the edges.
type DailyRecord struct {
	ID        int64           `json:"id"`
	Symbol    string          `json:"symbol"`
	Date      string          `json:"date"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    int64           `json:"volume"`
	CreatedAt string          `json:"created_at"`
}

// FearGreed is a single reading of the Fear & Greed index (0-100).
type FearGreed struct {
	Date      string    `json:"date"`
	Score     float64   `json:"score"`
	Rating    string    `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// Closes extracts closing prices as float64, preserving order.
func Closes(records []DailyRecord) []float64 {
	closes := make([]float64, len(records))
	for i, r := range records {
		closes[i] = r.Close.InexactFloat64()
	}
	return closes
}

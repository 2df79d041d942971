package calculator

import (
	"errors"
	"math"

	"IndexIndicator/internal/model"
)

// Trading-day windows for the calendar ranges.
const (
	days52w = 252
	days30d = 22
)

// Calculate52WeekRange returns the high and low of the most recent 252 trading days.
func Calculate52WeekRange(daily []model.DailyRecord) (high, low float64, err error) {
	return windowRange(daily, days52w)
}

// Calculate30DayRange returns the high and low of the most recent 22 trading days.
func Calculate30DayRange(daily []model.DailyRecord) (high, low float64, err error) {
	return windowRange(daily, days30d)
}

func windowRange(daily []model.DailyRecord, window int) (high, low float64, err error) {
	if len(daily) == 0 {
		return 0, 0, errors.New("no daily records provided")
	}
	start := len(daily) - window
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, d := range daily[start:] {
		high = math.Max(high, d.High.InexactFloat64())
		low = math.Min(low, d.Low.InexactFloat64())
	}
	return high, low, nil
}

// Calculate52WeekPosition returns where current sits within [low, high], clamped to 0.0~1.0.
func Calculate52WeekPosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	return math.Min(math.Max(pos, 0), 1), nil
}

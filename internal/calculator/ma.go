package calculator

import (
	"errors"

	"IndexIndicator/internal/model"
)

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for _, p := range prices[len(prices)-period:] {
		sum += p
	}
	return sum / float64(period), nil
}

// CalculateMA200 returns the 200-day simple moving average of closes.
func CalculateMA200(daily []model.DailyRecord) (float64, error) {
	return CalculateSMA(model.Closes(daily), 200)
}

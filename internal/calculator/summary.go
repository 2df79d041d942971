package calculator

import (
	"errors"

	"github.com/rs/zerolog/log"

	"IndexIndicator/internal/calendar"
	"IndexIndicator/internal/classifier"
	"IndexIndicator/internal/model"
)

const rsiPeriod = 14

// Summarize computes the indicator summary for the last record of daily.
// Indicators that cannot be computed fall back to the latest close.
func Summarize(daily []model.DailyRecord) (*model.IndicatorSummary, error) {
	if len(daily) == 0 {
		return nil, errors.New("no daily records provided")
	}
	last := daily[len(daily)-1]
	label, err := calendar.FormatMonthDay(last.Date)
	if err != nil {
		return nil, err
	}
	current := last.Close.InexactFloat64()

	sum := &model.IndicatorSummary{
		Symbol: last.Symbol,
		Date:   last.Date,
		Label:  label,
		Close:  current,
	}

	if ma, err := CalculateMA200(daily); err != nil {
		log.Debug().Err(err).Str("symbol", last.Symbol).Msg("ma200 unavailable, using close")
		sum.MA200 = current
	} else {
		sum.MA200 = ma
	}

	if rsi, err := CalculateRSI(daily, rsiPeriod); err != nil {
		log.Warn().Err(err).Str("symbol", last.Symbol).Msg("rsi calculation failed, defaulting to 50")
		sum.RSI = 50
	} else {
		sum.RSI = rsi
	}
	c := classifier.Classify(sum.RSI)
	sum.RSITone = c.Tone.String()
	sum.RSIColor = c.Color

	// Ranges cannot fail on non-empty input.
	sum.High52w, sum.Low52w, _ = Calculate52WeekRange(daily)
	sum.High30d, sum.Low30d, _ = Calculate30DayRange(daily)

	if pos, err := Calculate52WeekPosition(current, sum.High52w, sum.Low52w); err != nil {
		log.Warn().Err(err).Str("symbol", last.Symbol).Msg("52-week position failed")
		sum.Position52w = 0.5
	} else {
		sum.Position52w = pos
	}

	return sum, nil
}

package chart

import (
	"errors"
	"fmt"

	"IndexIndicator/internal/calendar"
	"IndexIndicator/internal/model"
)

// ErrEmptyInput is returned when there are no records to derive a series from.
var ErrEmptyInput = errors.New("chart: no daily records")

// Mapper turns daily records into chart configurations.
type Mapper struct {
	Presets Presets
}

// NewMapper creates a Mapper with the given presets.
func NewMapper(p Presets) *Mapper {
	return &Mapper{Presets: p}
}

// Build maps daily records to a chart configuration using DefaultPresets.
func Build(daily []model.DailyRecord, title string) (*model.ChartConfiguration, error) {
	return NewMapper(DefaultPresets).Build(daily, title)
}

// Build produces one close-price series named after the first record's symbol.
// An empty title leaves the title unset so the renderer default applies.
func (m *Mapper) Build(daily []model.DailyRecord, title string) (*model.ChartConfiguration, error) {
	if len(daily) == 0 {
		return nil, ErrEmptyInput
	}

	points, err := Points(daily)
	if err != nil {
		return nil, err
	}

	cfg := &model.ChartConfiguration{
		Chart: model.ChartOptions{SpacingRight: m.Presets.SpacingRight},
		RangeSelector: model.RangeSelector{
			Buttons:  m.Presets.buttons(),
			Selected: m.Presets.Selected,
		},
		XAxis:       model.XAxis{Type: m.Presets.AxisType},
		YAxis:       model.YAxis{Offset: m.Presets.YAxisOffset},
		PlotOptions: model.PlotOptions{Series: model.SeriesOptions{LineWidth: m.Presets.LineWidth}},
		Series: []model.Series{
			{Name: daily[0].Symbol, Data: points},
		},
	}
	if title != "" {
		cfg.Title = &model.ChartTitle{Text: title}
	}
	return cfg, nil
}

// Points converts records to [timestamp, close] pairs in input order.
func Points(daily []model.DailyRecord) ([]model.ChartSeriesPoint, error) {
	points := make([]model.ChartSeriesPoint, len(daily))
	for i, d := range daily {
		ms, err := calendar.EpochMillis(d.Date)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, d.Symbol, err)
		}
		points[i] = model.ChartSeriesPoint{Timestamp: ms, Close: d.Close}
	}
	return points, nil
}

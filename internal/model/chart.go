package model

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// ChartSeriesPoint pairs an epoch-millisecond timestamp with a closing price.
// It encodes as the [timestamp, close] tuple Highstock expects.
type ChartSeriesPoint struct {
	Timestamp int64
	Close     decimal.Decimal
}

func (p ChartSeriesPoint) MarshalJSON() ([]byte, error) {
	return []byte("[" + strconv.FormatInt(p.Timestamp, 10) + "," + p.Close.String() + "]"), nil
}

func (p *ChartSeriesPoint) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("series point: want 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &p.Timestamp); err != nil {
		return fmt.Errorf("series point timestamp: %w", err)
	}
	c, err := decimal.NewFromString(string(raw[1]))
	if err != nil {
		return fmt.Errorf("series point close: %w", err)
	}
	p.Close = c
	return nil
}

// ChartConfiguration is the declarative options object handed to the
// Highstock renderer. Field names follow the renderer's option keys.
type ChartConfiguration struct {
	Chart         ChartOptions  `json:"chart"`
	RangeSelector RangeSelector `json:"rangeSelector"`
	XAxis         XAxis         `json:"xAxis"`
	YAxis         YAxis         `json:"yAxis"`
	Title         *ChartTitle   `json:"title,omitempty"`
	PlotOptions   PlotOptions   `json:"plotOptions"`
	Series        []Series      `json:"series"`
}

type ChartOptions struct {
	SpacingRight int `json:"spacingRight"`
}

// RangeButton is one range-selector preset, e.g. {month, 6, "6m"}.
type RangeButton struct {
	Type  string `json:"type"`
	Count int    `json:"count,omitempty"`
	Text  string `json:"text"`
}

type RangeSelector struct {
	Buttons  []RangeButton `json:"buttons"`
	Selected int           `json:"selected"`
}

type XAxis struct {
	Type string `json:"type"`
}

type YAxis struct {
	Offset int `json:"offset"`
}

type ChartTitle struct {
	Text string `json:"text"`
}

type PlotOptions struct {
	Series SeriesOptions `json:"series"`
}

type SeriesOptions struct {
	LineWidth int `json:"lineWidth"`
}

type Series struct {
	Name string             `json:"name"`
	Data []ChartSeriesPoint `json:"data"`
}

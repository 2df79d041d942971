package chart

import "IndexIndicator/internal/model"

// Presets holds the fixed presentation settings of a stock chart.
type Presets struct {
	Buttons      []model.RangeButton
	Selected     int
	AxisType     string
	LineWidth    int
	SpacingRight int
	YAxisOffset  int
}

// DefaultPresets mirrors the layout the charting page has always used.
// Selected is passed through to the renderer as is.
var DefaultPresets = Presets{
	Buttons: []model.RangeButton{
		{Type: "day", Count: 3, Text: "3d"},
		{Type: "week", Count: 1, Text: "1w"},
		{Type: "month", Count: 1, Text: "1m"},
		{Type: "month", Count: 6, Text: "6m"},
		{Type: "year", Count: 1, Text: "1y"},
		{Type: "all", Text: "All"},
	},
	Selected:     6,
	AxisType:     "datetime",
	LineWidth:    1,
	SpacingRight: 0,
	YAxisOffset:  25,
}

func (p Presets) buttons() []model.RangeButton {
	out := make([]model.RangeButton, len(p.Buttons))
	copy(out, p.Buttons)
	return out
}

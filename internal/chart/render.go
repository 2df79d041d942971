package chart

import (
	"errors"
	"fmt"
	"io"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"

	"IndexIndicator/internal/model"
)

// ErrTooFewPoints is returned by RenderPNG when a series cannot span a range.
var ErrTooFewPoints = errors.New("chart: need at least two points to render")

// RenderPNG draws the first series of cfg as a line chart.
func RenderPNG(cfg *model.ChartConfiguration, width, height int, w io.Writer) error {
	if cfg == nil || len(cfg.Series) == 0 {
		return ErrEmptyInput
	}
	s := cfg.Series[0]
	if len(s.Data) < 2 {
		return ErrTooFewPoints
	}

	xs := make([]time.Time, len(s.Data))
	ys := make([]float64, len(s.Data))
	for i, p := range s.Data {
		xs[i] = time.UnixMilli(p.Timestamp).UTC()
		ys[i] = p.Close.InexactFloat64()
	}

	graph := gochart.Chart{
		Width:  width,
		Height: height,
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeDateValueFormatter,
		},
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name:    s.Name,
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeWidth: float64(cfg.PlotOptions.Series.LineWidth),
				},
			},
		},
	}
	if cfg.Title != nil {
		graph.Title = cfg.Title.Text
	}
	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render %s: %w", s.Name, err)
	}
	return nil
}

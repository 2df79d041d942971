package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"IndexIndicator/internal/calendar"
	"IndexIndicator/internal/chart"
	"IndexIndicator/internal/model"
)

var (
	chartTitle string
	chartInput string
	chartStart string
	chartEnd   string
	chartPNG   string
)

var chartCmd = &cobra.Command{
	Use:   "chart [symbol]",
	Short: "Print the chart configuration for stored or file-provided records",
	Long: `Print the Highstock configuration for a symbol's stored daily records, or
for a JSON array of daily records read with --input ("-" for stdin).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChart,
}

func init() {
	f := chartCmd.Flags()
	f.StringVar(&chartTitle, "title", "", "chart title")
	f.StringVar(&chartInput, "input", "", "JSON file of daily records instead of the store")
	f.StringVar(&chartStart, "start", "", "first day (YYYY-MM-DD)")
	f.StringVar(&chartEnd, "end", "", "last day (YYYY-MM-DD)")
	f.StringVar(&chartPNG, "png", "", "also render a PNG preview to this path")
}

func runChart(cmd *cobra.Command, args []string) error {
	daily, err := chartRecords(cmd, args)
	if err != nil {
		return err
	}

	cfgChart, err := chart.Build(daily, chartTitle)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfgChart); err != nil {
		return err
	}

	if chartPNG != "" {
		var buf bytes.Buffer
		if err := chart.RenderPNG(cfgChart, 800, 400, &buf); err != nil {
			return fmt.Errorf("png preview: %w", err)
		}
		if err := os.WriteFile(chartPNG, buf.Bytes(), 0644); err != nil {
			return err
		}
	}
	return nil
}

func chartRecords(cmd *cobra.Command, args []string) ([]model.DailyRecord, error) {
	if chartInput != "" {
		var daily []model.DailyRecord
		r := cmd.InOrStdin()
		if chartInput != "-" {
			f, err := os.Open(chartInput)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			r = f
		}
		if err := json.NewDecoder(r).Decode(&daily); err != nil {
			return nil, fmt.Errorf("decode %s: %w", chartInput, err)
		}
		return daily, nil
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("symbol required unless --input is given")
	}
	from, err := flagDay(chartStart)
	if err != nil {
		return nil, err
	}
	to, err := flagDay(chartEnd)
	if err != nil {
		return nil, err
	}

	st := openStore()
	defer st.Close()
	return st.ListDaily(cmd.Context(), args[0], from, to)
}

func flagDay(v string) (string, error) {
	if v == "" {
		return "", nil
	}
	t, err := calendar.ParseDate(v)
	if err != nil {
		return "", err
	}
	return calendar.Day(t), nil
}

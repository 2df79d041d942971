package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"IndexIndicator/internal/chart"
	"IndexIndicator/internal/model"
)

func TestChartCommand_Input(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("SQLITE_PATH", "")
	input := filepath.Join(dir, "daily.json")
	require.NoError(t, os.WriteFile(input, []byte(`[
		{"symbol":"spy","date":"2021-03-04","open":"380","high":"381","low":"375","close":"376.70","volume":1},
		{"symbol":"spy","date":"2021-03-05","open":"377","high":"384","low":"376","close":"383.63","volume":1}
	]`), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"chart", "--config", "missing.yaml", "--input", input, "--title", "S&P 500"})
	t.Cleanup(func() { chartInput, chartTitle = "", "" })
	require.NoError(t, rootCmd.Execute())

	var cfgChart model.ChartConfiguration
	require.NoError(t, json.Unmarshal(out.Bytes(), &cfgChart))
	assert.Equal(t, "spy", cfgChart.Series[0].Name)
	assert.Len(t, cfgChart.Series[0].Data, 2)
	assert.Equal(t, "S&P 500", cfgChart.Title.Text)
}

func TestChartCommand_PNGNotWrittenOnRenderFailure(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("SQLITE_PATH", "")
	input := filepath.Join(dir, "one.json")
	require.NoError(t, os.WriteFile(input, []byte(`[
		{"symbol":"spy","date":"2021-03-05","open":"377","high":"384","low":"376","close":"383.63","volume":1}
	]`), 0644))
	png := filepath.Join(dir, "spy.png")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"chart", "--config", "missing.yaml", "--input", input, "--png", png})
	t.Cleanup(func() { chartInput, chartPNG = "", "" })

	err := rootCmd.Execute()
	assert.ErrorIs(t, err, chart.ErrTooFewPoints)
	assert.NoFileExists(t, png)

	var cfgChart model.ChartConfiguration
	require.NoError(t, json.Unmarshal(out.Bytes(), &cfgChart))
	assert.Len(t, cfgChart.Series[0].Data, 1)
}

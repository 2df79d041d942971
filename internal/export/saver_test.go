package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"IndexIndicator/internal/model"
)

func sample() []model.DailyRecord {
	d := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return []model.DailyRecord{
		{Symbol: "^skew", Date: "2021-03-04", Open: d("140.1"), High: d("142"), Low: d("139.5"), Close: d("141.25"), Volume: 0},
		{Symbol: "^skew", Date: "2021-03-05", Open: d("141"), High: d("143.5"), Low: d("140"), Close: d("142.75"), Volume: 10},
	}
}

func TestNewSaver(t *testing.T) {
	for _, f := range []string{"csv", " JSON ", "parquet"} {
		s, err := NewSaver(f)
		require.NoError(t, err, f)
		assert.NotNil(t, s)
	}
	_, err := NewSaver("xml")
	assert.Error(t, err)
}

func TestWriteSymbol_CSV(t *testing.T) {
	path, err := WriteSymbol(CSVSaver{}, t.TempDir(), sample())
	require.NoError(t, err)
	assert.Equal(t, "skew.csv", filepath.Base(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	lines, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"^skew", "2021-03-05", "141", "143.5", "140", "142.75", "10"}, lines[2])
}

func TestWriteSymbol_JSON(t *testing.T) {
	path, err := WriteSymbol(JSONSaver{}, t.TempDir(), sample())
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var rows []Row
	require.NoError(t, json.Unmarshal(b, &rows))
	assert.Equal(t, Rows(sample()), rows)
}

func TestWriteSymbol_Parquet(t *testing.T) {
	path, err := WriteSymbol(ParquetSaver{}, t.TempDir(), sample())
	require.NoError(t, err)

	rows, err := parquet.ReadFile[Row](path)
	require.NoError(t, err)
	assert.Equal(t, Rows(sample()), rows)
}

func TestWriteSymbol_Empty(t *testing.T) {
	_, err := WriteSymbol(CSVSaver{}, t.TempDir(), nil)
	assert.Error(t, err)
}

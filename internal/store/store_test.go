package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"IndexIndicator/internal/model"
)

func day(symbol, date, close string) model.DailyRecord {
	c := decimal.RequireFromString(close)
	return model.DailyRecord{Symbol: symbol, Date: date, Open: c, High: c, Low: c, Close: c, Volume: 10}
}

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })
	return map[string]Store{
		"sqlite": sq,
		"memory": NewMemoryStore(),
	}
}

func TestStore_DailyRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.UpsertDaily(ctx, []model.DailyRecord{
				day("spy", "2021-03-05", "383.63"),
				day("spy", "2021-03-03", "381.42"),
				day("tlt", "2021-03-03", "137.10"),
				day("spy", "2021-03-04", "376.70"),
			}))

			got, err := st.ListDaily(ctx, "SPY", "", "")
			require.NoError(t, err)
			require.Len(t, got, 3)
			assert.Equal(t, []string{"2021-03-03", "2021-03-04", "2021-03-05"},
				[]string{got[0].Date, got[1].Date, got[2].Date})
			assert.True(t, got[2].Close.Equal(decimal.RequireFromString("383.63")))
			assert.NotZero(t, got[0].ID)
			assert.NotEmpty(t, got[0].CreatedAt)

			ranged, err := st.ListDaily(ctx, "spy", "2021-03-04", "2021-03-04")
			require.NoError(t, err)
			require.Len(t, ranged, 1)
			assert.Equal(t, "2021-03-04", ranged[0].Date)

			none, err := st.ListDaily(ctx, "gld", "", "")
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	}
}

func TestStore_UpsertReplacesDay(t *testing.T) {
	ctx := context.Background()
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.UpsertDaily(ctx, []model.DailyRecord{day("spy", "2021-03-05", "1")}))
			first, err := st.ListDaily(ctx, "spy", "", "")
			require.NoError(t, err)

			require.NoError(t, st.UpsertDaily(ctx, []model.DailyRecord{day("spy", "2021-03-05", "2.5")}))
			got, err := st.ListDaily(ctx, "spy", "", "")
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, first[0].ID, got[0].ID)
			assert.Equal(t, "2.5", got[0].Close.String())
		})
	}
}

func TestStore_FearGreed(t *testing.T) {
	ctx := context.Background()
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, fg := range []model.FearGreed{
				{Date: "2021-03-03", Score: 25, Rating: "extreme fear"},
				{Date: "2021-03-05", Score: 75, Rating: "greed"},
				{Date: "2021-03-04", Score: 50, Rating: "neutral"},
			} {
				fg := fg
				require.NoError(t, st.SaveFearGreed(ctx, &fg))
			}
			require.NoError(t, st.SaveFearGreed(ctx, &model.FearGreed{Date: "2021-03-05", Score: 80, Rating: "extreme greed"}))

			got, err := st.ListFearGreed(ctx, 2)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "2021-03-05", got[0].Date)
			assert.Equal(t, 80.0, got[0].Score)
			assert.Equal(t, "extreme greed", got[0].Rating)
			assert.Equal(t, "2021-03-04", got[1].Date)
			assert.False(t, got[0].CreatedAt.IsZero())
		})
	}
}

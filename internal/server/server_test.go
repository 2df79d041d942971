package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"IndexIndicator/internal/collector"
	"IndexIndicator/internal/model"
	"IndexIndicator/internal/store"
	"IndexIndicator/internal/ticker"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  Meta            `json:"meta"`
	Error *ErrorDetail    `json:"error"`
}

func rec(symbol, date, close string) model.DailyRecord {
	c := decimal.RequireFromString(close)
	return model.DailyRecord{Symbol: symbol, Date: date, Open: c, High: c, Low: c, Close: c, Volume: 1}
}

func newTestServer(t *testing.T, col *collector.Collector) (*Server, http.Handler, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	require.NoError(t, st.UpsertDaily(context.Background(), []model.DailyRecord{
		rec("spy", "2021-03-03", "381.42"),
		rec("spy", "2021-03-04", "376.70"),
		rec("spy", "2021-03-05", "383.63"),
	}))
	if col != nil {
		col.Store = st
	}
	s := New(st, col, ticker.NewCatalog(nil))
	return s, s.Handler(Options{}), st
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	var env envelope
	if w.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestHealth(t *testing.T) {
	_, h, _ := newTestServer(t, nil)
	w, _ := get(t, h, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestGetChart(t *testing.T) {
	_, h, _ := newTestServer(t, nil)
	w, env := get(t, h, "/api/chart/SPY?title=S%26P&start=2021-03-04")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), env.Meta.RequestID)

	var cfg model.ChartConfiguration
	require.NoError(t, json.Unmarshal(env.Data, &cfg))
	require.Len(t, cfg.Series, 1)
	assert.Equal(t, "spy", cfg.Series[0].Name)
	require.Len(t, cfg.Series[0].Data, 2)
	assert.Equal(t, int64(1614816000000), cfg.Series[0].Data[0].Timestamp)
	require.NotNil(t, cfg.Title)
	assert.Equal(t, "S&P", cfg.Title.Text)
	assert.Equal(t, 6, cfg.RangeSelector.Selected)
}

func TestGetChart_Errors(t *testing.T) {
	_, h, st := newTestServer(t, nil)

	w, env := get(t, h, "/api/chart/qqq")
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeEmptyInput, env.Error.Code)

	w, env = get(t, h, "/api/chart/spy?start=yesterday")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrCodeInvalidParameter, env.Error.Code)

	require.NoError(t, st.UpsertDaily(context.Background(), []model.DailyRecord{rec("gld", "5th of March", "160")}))
	w, env = get(t, h, "/api/chart/gld")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, ErrCodeParseError, env.Error.Code)
	assert.Contains(t, env.Error.Message, "5th of March")
}

func TestGetChart_OnDemandSync(t *testing.T) {
	end := time.Date(2021, 3, 5, 0, 0, 0, 0, time.UTC)
	col := collector.NewCollector(&collector.MockFetcher{Price: 90, End: end}, nil, nil, 10)
	_, h, _ := newTestServer(t, col)

	w, env := get(t, h, "/api/chart/tlt")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var cfg model.ChartConfiguration
	require.NoError(t, json.Unmarshal(env.Data, &cfg))
	assert.Len(t, cfg.Series[0].Data, 10)

	col.Fetcher = &collector.MockFetcher{Err: errors.New("rate limited")}
	w, env = get(t, h, "/api/chart/gldm")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, ErrCodeUpstream, env.Error.Code)
}

type countingFetcher struct {
	calls atomic.Int32
	gate  chan struct{}
	inner collector.MockFetcher
}

func (c *countingFetcher) Name() string { return "counting" }

func (c *countingFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.DailyRecord, error) {
	c.calls.Add(1)
	<-c.gate
	return c.inner.FetchDailyBars(ctx, symbol, days)
}

func TestGetChart_SyncDeduplicated(t *testing.T) {
	f := &countingFetcher{gate: make(chan struct{}), inner: collector.MockFetcher{Price: 50, End: time.Date(2021, 3, 5, 0, 0, 0, 0, time.UTC)}}
	col := collector.NewCollector(f, nil, nil, 5)
	_, h, _ := newTestServer(t, col)

	var wg sync.WaitGroup
	codes := make([]int, 4)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/api/chart/gld", nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			codes[i] = w.Code
		}(i)
	}
	// let every request reach the store miss before releasing the fetch
	require.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(f.gate)
	wg.Wait()

	for _, c := range codes {
		assert.Equal(t, http.StatusOK, c)
	}
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestGetChartImage(t *testing.T) {
	_, h, _ := newTestServer(t, nil)
	w, _ := get(t, h, "/api/chart/spy/image.png?width=320&height=200")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))

	w, env := get(t, h, "/api/chart/spy/image.png?start=2021-03-05")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, ErrCodeEmptyInput, env.Error.Code)

	for _, q := range []string{"?width=50", "?height=5000", "?width=wide"} {
		w, env = get(t, h, "/api/chart/spy/image.png"+q)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
		require.NotNil(t, env.Error, q)
		assert.Equal(t, ErrCodeInvalidParameter, env.Error.Code, q)
	}
}

func TestGetDaily(t *testing.T) {
	_, h, _ := newTestServer(t, nil)
	w, env := get(t, h, "/api/daily/spy?end=2021-03-04")
	require.Equal(t, http.StatusOK, w.Code)
	var recs []model.DailyRecord
	require.NoError(t, json.Unmarshal(env.Data, &recs))
	assert.Len(t, recs, 2)
	assert.Equal(t, 2, env.Meta.Count)

	_, env = get(t, h, "/api/daily/none")
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestGetTickers(t *testing.T) {
	_, h, _ := newTestServer(t, nil)
	w, env := get(t, h, "/api/tickers?q=GL&selected=gld")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"options":["gldm"],"defaults":["spy"]}`, string(env.Data))

	_, env = get(t, h, "/api/tickers?q=zzz")
	assert.JSONEq(t, `{"options":[],"defaults":["spy"]}`, string(env.Data))
}

func TestGetFearGreed(t *testing.T) {
	_, h, st := newTestServer(t, nil)
	ctx := context.Background()
	for i, score := range []float64{25, 50, 75} {
		require.NoError(t, st.SaveFearGreed(ctx, &model.FearGreed{
			Date: time.Date(2021, 3, 3+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02"), Score: score, Rating: "x",
		}))
	}

	w, env := get(t, h, "/api/fgi")
	require.Equal(t, http.StatusOK, w.Code)
	var views []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &views))
	require.Len(t, views, 3)
	assert.Equal(t, "3/5", views[0]["label"])
	assert.Equal(t, "positive", views[0]["tone"])
	assert.Equal(t, "#18BA8F", views[0]["color"])
	assert.Equal(t, "none", views[1]["tone"])
	_, hasColor := views[1]["color"]
	assert.False(t, hasColor)
	assert.Equal(t, "#F44545", views[2]["color"])

	tests := []struct {
		query string
		want  int
	}{
		{"?limit=2", 2},
		{"?limit=0", 0},
		{"?limit=101", 3},
		{"?limit=-5", 3},
	}
	for _, tt := range tests {
		_, env := get(t, h, "/api/fgi"+tt.query)
		assert.Equal(t, tt.want, env.Meta.Count, tt.query)
	}

	w, _ = get(t, h, "/api/fgi?limit=ten")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetIndicators(t *testing.T) {
	_, h, _ := newTestServer(t, nil)
	w, env := get(t, h, "/api/indicators/spy")
	require.Equal(t, http.StatusOK, w.Code)
	var sum model.IndicatorSummary
	require.NoError(t, json.Unmarshal(env.Data, &sum))
	assert.Equal(t, "3/5", sum.Label)
	assert.Equal(t, 383.63, sum.Close)

	w, env = get(t, h, "/api/indicators/qqq")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ErrCodeEmptyInput, env.Error.Code)
}

func TestGetChart_UnknownSymbolNotFetched(t *testing.T) {
	gate := make(chan struct{})
	close(gate)
	f := &countingFetcher{gate: gate, inner: collector.MockFetcher{Price: 50}}
	_, h, _ := newTestServer(t, collector.NewCollector(f, nil, nil, 5))

	for _, target := range []string{
		"/api/chart/notaticker0",
		"/api/chart/notaticker1",
		"/api/chart/notaticker0",
		"/api/daily/notaticker2",
		"/api/indicators/notaticker3",
	} {
		w, env := get(t, h, target)
		if target == "/api/daily/notaticker2" {
			assert.Equal(t, http.StatusOK, w.Code, target)
			continue
		}
		assert.Equal(t, http.StatusNotFound, w.Code, target)
		require.NotNil(t, env.Error, target)
		assert.Equal(t, ErrCodeEmptyInput, env.Error.Code, target)
	}
	assert.Equal(t, int32(0), f.calls.Load())

	// catalog symbols still sync on demand, in any case
	w, _ := get(t, h, "/api/chart/TLT")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestUnmatchedRouteTagged(t *testing.T) {
	_, h, _ := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/nothing-here", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodDelete, "/api/tickers", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestCORSAndRequestID(t *testing.T) {
	_, h, _ := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/tickers", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

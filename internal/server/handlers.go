package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"IndexIndicator/internal/calculator"
	"IndexIndicator/internal/calendar"
	"IndexIndicator/internal/chart"
	"IndexIndicator/internal/classifier"
	"IndexIndicator/internal/model"
)

const (
	defaultFearGreedLimit = 100
	maxFearGreedLimit     = 100

	defaultImageWidth  = 800
	defaultImageHeight = 400
)

// dateRange reads optional start/end query parameters as canonical days.
func dateRange(r *http.Request) (from, to string, err error) {
	q := r.URL.Query()
	if from, err = queryDay(q.Get("start")); err != nil {
		return "", "", fmt.Errorf("start: %w", err)
	}
	if to, err = queryDay(q.Get("end")); err != nil {
		return "", "", fmt.Errorf("end: %w", err)
	}
	return from, to, nil
}

func queryDay(v string) (string, error) {
	if v == "" {
		return "", nil
	}
	t, err := calendar.ParseDate(v)
	if err != nil {
		return "", err
	}
	return calendar.Day(t), nil
}

// records resolves symbol and range, writing the error response itself on failure.
func (s *Server) records(w http.ResponseWriter, r *http.Request) ([]model.DailyRecord, bool) {
	symbol := mux.Vars(r)["symbol"]
	from, to, err := dateRange(r)
	if err != nil {
		fail(w, r, http.StatusBadRequest, ErrCodeInvalidParameter, err.Error())
		return nil, false
	}

	recs, err := s.loadDaily(r.Context(), symbol, from, to)
	if err != nil {
		var up *upstreamError
		if errors.As(err, &up) {
			fail(w, r, http.StatusBadGateway, ErrCodeUpstream, err.Error())
		} else {
			fail(w, r, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return nil, false
	}
	return recs, true
}

// chartError maps SeriesMapper failures to responses.
func chartError(w http.ResponseWriter, r *http.Request, symbol string, err error) {
	var pe *calendar.ParseError
	switch {
	case errors.Is(err, chart.ErrEmptyInput):
		fail(w, r, http.StatusNotFound, ErrCodeEmptyInput, fmt.Sprintf("no daily records for %s", symbol))
	case errors.As(err, &pe):
		fail(w, r, http.StatusUnprocessableEntity, ErrCodeParseError, err.Error())
	default:
		fail(w, r, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// getChart handles GET /api/chart/{symbol}
func (s *Server) getChart(w http.ResponseWriter, r *http.Request) {
	recs, ok := s.records(w, r)
	if !ok {
		return
	}
	cfg, err := s.Mapper.Build(recs, r.URL.Query().Get("title"))
	if err != nil {
		chartError(w, r, mux.Vars(r)["symbol"], err)
		return
	}
	success(w, r, cfg)
}

// getChartImage handles GET /api/chart/{symbol}/image.png
func (s *Server) getChartImage(w http.ResponseWriter, r *http.Request) {
	width, err := intParam(r, "width", defaultImageWidth, 100, 2000)
	if err != nil {
		fail(w, r, http.StatusBadRequest, ErrCodeInvalidParameter, err.Error())
		return
	}
	height, err := intParam(r, "height", defaultImageHeight, 100, 2000)
	if err != nil {
		fail(w, r, http.StatusBadRequest, ErrCodeInvalidParameter, err.Error())
		return
	}

	recs, ok := s.records(w, r)
	if !ok {
		return
	}
	cfg, err := s.Mapper.Build(recs, r.URL.Query().Get("title"))
	if err != nil {
		chartError(w, r, mux.Vars(r)["symbol"], err)
		return
	}

	var buf bytes.Buffer
	if err := chart.RenderPNG(cfg, width, height, &buf); err != nil {
		if errors.Is(err, chart.ErrTooFewPoints) {
			fail(w, r, http.StatusUnprocessableEntity, ErrCodeEmptyInput, err.Error())
			return
		}
		fail(w, r, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

// getDaily handles GET /api/daily/{symbol}
func (s *Server) getDaily(w http.ResponseWriter, r *http.Request) {
	recs, ok := s.records(w, r)
	if !ok {
		return
	}
	if recs == nil {
		recs = []model.DailyRecord{}
	}
	successList(w, r, recs, len(recs))
}

// TickerOptions is the payload of the ticker search box.
type TickerOptions struct {
	Options  []string `json:"options"`
	Defaults []string `json:"defaults"`
}

// getTickers handles GET /api/tickers
func (s *Server) getTickers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var selected []string
	if v := q.Get("selected"); v != "" {
		selected = strings.Split(v, ",")
	}
	success(w, r, TickerOptions{
		Options:  s.Catalog.Search(q.Get("q"), selected),
		Defaults: s.Catalog.Defaults(),
	})
}

// FearGreedView is a Fear & Greed reading decorated for display.
type FearGreedView struct {
	model.FearGreed
	Label string `json:"label"`
	classifier.Classification
}

// getFearGreed handles GET /api/fgi
func (s *Server) getFearGreed(w http.ResponseWriter, r *http.Request) {
	limit := defaultFearGreedLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fail(w, r, http.StatusBadRequest, ErrCodeInvalidParameter, "limit must be an integer")
			return
		}
		if n >= 0 && n <= maxFearGreedLimit {
			limit = n
		}
	}

	list, err := s.Store.ListFearGreed(r.Context(), limit)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	views := make([]FearGreedView, 0, len(list))
	for _, fg := range list {
		label, err := calendar.FormatMonthDay(fg.Date)
		if err != nil {
			log.Warn().Err(err).Str("date", fg.Date).Msg("skipping fear & greed reading")
			continue
		}
		views = append(views, FearGreedView{
			FearGreed:      fg,
			Label:          label,
			Classification: classifier.Classify(fg.Score),
		})
	}
	successList(w, r, views, len(views))
}

// getIndicators handles GET /api/indicators/{symbol}
func (s *Server) getIndicators(w http.ResponseWriter, r *http.Request) {
	recs, ok := s.records(w, r)
	if !ok {
		return
	}
	if len(recs) == 0 {
		fail(w, r, http.StatusNotFound, ErrCodeEmptyInput, fmt.Sprintf("no daily records for %s", mux.Vars(r)["symbol"]))
		return
	}
	sum, err := calculator.Summarize(recs)
	if err != nil {
		var pe *calendar.ParseError
		if errors.As(err, &pe) {
			fail(w, r, http.StatusUnprocessableEntity, ErrCodeParseError, err.Error())
			return
		}
		fail(w, r, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	success(w, r, sum)
}

// intParam reads an integer query parameter, returning def when absent.
// Malformed values or values outside [lo, hi] are an error.
func intParam(r *http.Request, name string, def, lo, hi int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("%s must be an integer in %d..%d", name, lo, hi)
	}
	return n, nil
}

// Package server exposes charts, daily records, tickers and the Fear & Greed
// index over HTTP.
package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"IndexIndicator/internal/chart"
	"IndexIndicator/internal/collector"
	"IndexIndicator/internal/model"
	"IndexIndicator/internal/store"
	"IndexIndicator/internal/ticker"
)

// Options configures the HTTP layer.
type Options struct {
	CORSOrigins  []string
	AccessLogger *zerolog.Logger // nil uses the global logger
}

// Server holds handler dependencies.
type Server struct {
	Store     store.Store
	Collector *collector.Collector // nil disables on-demand sync
	Catalog   *ticker.Catalog
	Mapper    *chart.Mapper

	sf singleflight.Group
}

// New creates a Server using the default chart presets.
func New(st store.Store, col *collector.Collector, cat *ticker.Catalog) *Server {
	return &Server{
		Store:     st,
		Collector: col,
		Catalog:   cat,
		Mapper:    chart.NewMapper(chart.DefaultPresets),
	}
}

// Handler builds the routed, CORS-wrapped handler.
func (s *Server) Handler(opts Options) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/chart/{symbol}", s.getChart).Methods(http.MethodGet)
	api.HandleFunc("/chart/{symbol}/image.png", s.getChartImage).Methods(http.MethodGet)
	api.HandleFunc("/daily/{symbol}", s.getDaily).Methods(http.MethodGet)
	api.HandleFunc("/tickers", s.getTickers).Methods(http.MethodGet)
	api.HandleFunc("/fgi", s.getFearGreed).Methods(http.MethodGet)
	api.HandleFunc("/indicators/{symbol}", s.getIndicators).Methods(http.MethodGet)

	access := log.Logger
	if opts.AccessLogger != nil {
		access = *opts.AccessLogger
	}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Accept", "Content-Type", RequestIDHeader}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
	)
	// outside the router so unmatched routes are tagged and logged too
	var h http.Handler = Logging(access, "/health")(r)
	h = RequestID(h)
	return handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{}))(cors(h))
}

// loadDaily reads records for symbol, syncing once from the collector when
// the store has none and the symbol is in the catalog. Concurrent callers for
// the same symbol share one fetch.
func (s *Server) loadDaily(ctx context.Context, symbol, from, to string) ([]model.DailyRecord, error) {
	recs, err := s.Store.ListDaily(ctx, symbol, from, to)
	if err != nil || len(recs) > 0 || s.Collector == nil {
		return recs, err
	}
	if s.Catalog == nil || !s.Catalog.Contains(symbol) {
		return recs, nil
	}

	key := strings.ToLower(symbol)
	_, err, shared := s.sf.Do(key, func() (interface{}, error) {
		// detached so one cancelled caller does not fail the others
		return s.Collector.SyncSymbol(context.WithoutCancel(ctx), symbol)
	})
	if err != nil {
		return nil, &upstreamError{err: err}
	}
	log.Debug().Str("symbol", symbol).Bool("shared", shared).Msg("on-demand sync finished")
	return s.Store.ListDaily(ctx, symbol, from, to)
}

type upstreamError struct{ err error }

func (e *upstreamError) Error() string { return e.err.Error() }
func (e *upstreamError) Unwrap() error { return e.err }

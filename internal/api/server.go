package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"groStats/internal/model"
	"groStats/internal/storage"
)

const (
	defaultHistoryLimit = 48
	maxHistoryLimit     = 1000

	protocolCacheKey = "gro_stats"
	personalCachePre = "personal:"
)

// StatsService builds the served documents. *service.Service satisfies it.
type StatsService interface {
	ProtocolStats(ctx context.Context) model.ProtocolStats
	PersonalStats(ctx context.Context, address string) model.PersonalPosition
}

// Config configures the HTTP server.
type Config struct {
	Listen         string
	CacheTTL       time.Duration
	RequestTimeout time.Duration
}

// Server exposes the stats documents over HTTP.
type Server struct {
	router  *mux.Router
	server  *http.Server
	stats   StatsService
	history storage.History
	cache   *docCache
	metrics *Metrics
	logger  *zap.Logger
	timeout time.Duration
}

func NewServer(cfg Config, stats StatsService, history storage.History, metrics *Metrics, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	cache, err := newDocCache(cfg.CacheTTL)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:  mux.NewRouter(),
		stats:   stats,
		history: history,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		timeout: cfg.RequestTimeout,
	}
	s.routes()
	s.server = &http.Server{
		Addr:              cfg.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.recoverMiddleware)

	s.router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	api := s.router.PathPrefix("/").Subrouter()
	api.Use(s.timeoutMiddleware)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/gro_stats", s.handleProtocolStats).Methods(http.MethodGet)
	api.HandleFunc("/gro_personal_position_mc", s.handlePersonalPosition).Methods(http.MethodGet)
	api.HandleFunc("/historical_apy", s.handleHistoricalApy).Methods(http.MethodGet)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", zap.String("addr", s.server.Addr))
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and releases the cache.
func (s *Server) Shutdown(ctx context.Context) error {
	defer s.cache.close()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":            string(model.StatusOK),
		"current_timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	})
}

func (s *Server) handleProtocolStats(w http.ResponseWriter, r *http.Request) {
	if cached, ok := s.cache.get(protocolCacheKey); ok {
		s.metrics.CacheHits.WithLabelValues(protocolCacheKey).Inc()
		writeJSON(w, http.StatusOK, map[string]interface{}{"gro_stats": cached})
		return
	}
	s.metrics.CacheMisses.WithLabelValues(protocolCacheKey).Inc()

	doc := s.stats.ProtocolStats(r.Context())
	if doc.Status != model.StatusError {
		s.cache.set(protocolCacheKey, doc)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"gro_stats": doc})
}

func (s *Server) handlePersonalPosition(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if !common.IsHexAddress(address) {
		writeError(w, http.StatusBadRequest, "invalid address")
		return
	}
	address = strings.ToLower(common.HexToAddress(address).Hex())

	key := personalCachePre + address
	if cached, ok := s.cache.get(key); ok {
		s.metrics.CacheHits.WithLabelValues("personal_stats").Inc()
		writeJSON(w, http.StatusOK, map[string]interface{}{"gro_personal_position_mc": cached})
		return
	}
	s.metrics.CacheMisses.WithLabelValues("personal_stats").Inc()

	pos := s.stats.PersonalStats(r.Context(), address)
	if pos.Status == model.StatusOK {
		s.cache.set(key, pos)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"gro_personal_position_mc": pos})
}

func (s *Server) handleHistoricalApy(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusServiceUnavailable, "historical apy storage not configured")
		return
	}

	query := r.URL.Query()
	network := query.Get("network")
	if network == "" {
		network = model.NetworkMainnet
	}
	limit := defaultHistoryLimit
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	snaps, err := s.history.ListApySnapshots(r.Context(), network, limit)
	if err != nil {
		s.logger.Error("list apy snapshots", zap.String("network", network), zap.Error(err))
		writeError(w, http.StatusBadGateway, "historical apy unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"historical_apy": snaps})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

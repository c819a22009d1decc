package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groStats/internal/model"
)

const validAddr = "0xAbCdEf0123456789aBcDeF0123456789AbCdEf01"

type fakeStats struct {
	mu             sync.Mutex
	protocolCalls  int
	personalCalls  int
	lastAddress    string
	protocolStatus model.Status
	panicPersonal  bool
}

func (f *fakeStats) ProtocolStats(context.Context) model.ProtocolStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.protocolCalls++
	status := f.protocolStatus
	if status == "" {
		status = model.StatusOK
	}
	return model.ProtocolStats{Status: status, Network: model.NetworkMainnet}
}

func (f *fakeStats) PersonalStats(_ context.Context, address string) model.PersonalPosition {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panicPersonal {
		panic("boom")
	}
	f.personalCalls++
	f.lastAddress = address
	return model.PersonalPosition{Status: model.StatusOK, Address: address}
}

type fakeHistory struct {
	snaps   []model.ApySnapshot
	err     error
	network string
	limit   int
}

func (f *fakeHistory) ListApySnapshots(_ context.Context, network string, limit int) ([]model.ApySnapshot, error) {
	f.network = network
	f.limit = limit
	return f.snaps, f.err
}

func newTestServer(t *testing.T, stats StatsService, history *fakeHistory, ttl time.Duration) *Server {
	t.Helper()
	var h interface {
		ListApySnapshots(context.Context, string, int) ([]model.ApySnapshot, error)
	}
	if history != nil {
		h = history
	}
	srv, err := NewServer(Config{CacheTTL: ttl}, stats, h, NewMetrics(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { srv.cache.close() })
	return srv
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestProtocolStatsIsCached(t *testing.T) {
	stats := &fakeStats{}
	srv := newTestServer(t, stats, nil, time.Minute)

	rec := get(t, srv, "/gro_stats")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	_, err := uuid.Parse(rec.Header().Get("X-Request-ID"))
	assert.NoError(t, err)

	var doc model.ProtocolStats
	require.NoError(t, json.Unmarshal(decode(t, rec)["gro_stats"], &doc))
	assert.Equal(t, model.NetworkMainnet, doc.Network)

	srv.cache.wait()
	get(t, srv, "/gro_stats")
	assert.Equal(t, 1, stats.protocolCalls)
}

func TestProtocolStatsErrorIsNotCached(t *testing.T) {
	stats := &fakeStats{protocolStatus: model.StatusError}
	srv := newTestServer(t, stats, nil, time.Minute)

	get(t, srv, "/gro_stats")
	srv.cache.wait()
	get(t, srv, "/gro_stats")
	assert.Equal(t, 2, stats.protocolCalls)
}

func TestPersonalPositionValidatesAddress(t *testing.T) {
	stats := &fakeStats{}
	srv := newTestServer(t, stats, nil, 0)

	for _, target := range []string{
		"/gro_personal_position_mc",
		"/gro_personal_position_mc?address=0x123",
		"/gro_personal_position_mc?address=not-an-address",
	} {
		rec := get(t, srv, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
	assert.Equal(t, 0, stats.personalCalls)
}

func TestPersonalPositionNormalisesAddress(t *testing.T) {
	stats := &fakeStats{}
	srv := newTestServer(t, stats, nil, 0)

	rec := get(t, srv, "/gro_personal_position_mc?address="+validAddr)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, strings.ToLower(validAddr), stats.lastAddress)

	var pos model.PersonalPosition
	require.NoError(t, json.Unmarshal(decode(t, rec)["gro_personal_position_mc"], &pos))
	assert.Equal(t, model.StatusOK, pos.Status)
}

func TestHandlerPanicReturns500(t *testing.T) {
	srv := newTestServer(t, &fakeStats{panicPersonal: true}, nil, 0)

	rec := get(t, srv, "/gro_personal_position_mc?address="+validAddr)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHistoricalApy(t *testing.T) {
	history := &fakeHistory{snaps: []model.ApySnapshot{{Network: model.NetworkMainnet, Timestamp: 10, ApyGvt: "0.1"}}}
	srv := newTestServer(t, &fakeStats{}, history, 0)

	rec := get(t, srv, "/historical_apy?limit=5000")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.NetworkMainnet, history.network)
	assert.Equal(t, maxHistoryLimit, history.limit)

	var snaps []model.ApySnapshot
	require.NoError(t, json.Unmarshal(decode(t, rec)["historical_apy"], &snaps))
	require.Len(t, snaps, 1)
	assert.Equal(t, "0.1", snaps[0].ApyGvt)

	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/historical_apy?limit=-1").Code)
}

func TestHistoricalApyFailures(t *testing.T) {
	srv := newTestServer(t, &fakeStats{}, &fakeHistory{err: errors.New("db down")}, 0)
	assert.Equal(t, http.StatusBadGateway, get(t, srv, "/historical_apy").Code)

	unconfigured := newTestServer(t, &fakeStats{}, nil, 0)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, unconfigured, "/historical_apy").Code)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, &fakeStats{}, nil, 0)

	rec := get(t, srv, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	srv.metrics.UpstreamFailed(model.NetworkAvalanche)
	srv.metrics.SectionsUnavailable("personal_stats", []string{model.SectionAirdrops})

	metrics := get(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, metrics.Code)
	body := metrics.Body.String()
	assert.Contains(t, body, `grostats_http_requests_total{code="200",route="/health"} 1`)
	assert.Contains(t, body, `grostats_subgraph_failures_total{network="avalanche"} 1`)
	assert.Contains(t, body, `grostats_unavailable_sections_total{document="personal_stats",section="airdrops"} 1`)
}

func TestNotFound(t *testing.T) {
	srv := newTestServer(t, &fakeStats{}, nil, 0)
	assert.Equal(t, http.StatusNotFound, get(t, srv, "/nope").Code)
}

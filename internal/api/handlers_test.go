package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/joshhsoj1902/steam-profile-exporter/internal/steam"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCollector struct {
	out   string
	err   error
	calls atomic.Int32
}

func (s *stubCollector) Collect(context.Context, string) (string, error) {
	s.calls.Add(1)
	return s.out, s.err
}

type stubLocker struct {
	acquired bool
	err      error
	released atomic.Int32
}

func (l *stubLocker) Acquire(context.Context, string) (func(), bool, error) {
	if l.err != nil || !l.acquired {
		return nil, false, l.err
	}
	return func() { l.released.Add(1) }, true, nil
}

func get(t *testing.T, h *Handlers, path string) (*http.Response, string) {
	t.Helper()
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHandleProfile_OK(t *testing.T) {
	collector := &stubCollector{out: "export const profile: Profile = {};\n"}

	resp, body := get(t, NewHandlers(collector, nil), "/profile/76561197960287930")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, collector.out, body)
}

func TestHandleProfile_BadSteamID(t *testing.T) {
	collector := &stubCollector{}

	resp, _ := get(t, NewHandlers(collector, nil), "/profile/gaben")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, collector.calls.Load())
}

func TestHandleProfile_RemoteError(t *testing.T) {
	collector := &stubCollector{err: &steam.RemoteError{StatusCode: 403, Reason: "Forbidden", Endpoint: steam.OwnedGamesEndpoint}}

	resp, body := get(t, NewHandlers(collector, nil), "/profile/76561197960287930")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, "403: Forbidden")
}

func TestHandleProfile_OtherError(t *testing.T) {
	collector := &stubCollector{err: errors.New("boom")}

	resp, _ := get(t, NewHandlers(collector, nil), "/profile/76561197960287930")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHandleProfile_Locked(t *testing.T) {
	collector := &stubCollector{out: "x"}
	locker := &stubLocker{acquired: false}

	resp, _ := get(t, NewHandlers(collector, locker), "/profile/76561197960287930")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Zero(t, collector.calls.Load())
}

func TestHandleProfile_LockReleased(t *testing.T) {
	collector := &stubCollector{out: "x"}
	locker := &stubLocker{acquired: true}

	resp, _ := get(t, NewHandlers(collector, locker), "/profile/76561197960287930")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), locker.released.Load())
}

func TestHandleProfile_LockError(t *testing.T) {
	collector := &stubCollector{out: "x"}
	locker := &stubLocker{err: errors.New("connection refused")}

	resp, _ := get(t, NewHandlers(collector, locker), "/profile/76561197960287930")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Zero(t, collector.calls.Load())
}

func TestMetricsEndpointsAreFiltered(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "steam_api_requests_test_total", Help: "x"}))
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "go_fake_total", Help: "x"}))

	h := NewHandlers(&stubCollector{}, nil)
	h.gatherer = reg

	_, system := get(t, h, "/metrics")
	assert.Contains(t, system, "go_fake_total")
	assert.NotContains(t, system, "steam_api_requests_test_total")

	_, steamOnly := get(t, h, "/metrics/steam")
	assert.Contains(t, steamOnly, "steam_api_requests_test_total")
	assert.NotContains(t, steamOnly, "go_fake_total")
}

func TestHandleRoot(t *testing.T) {
	resp, body := get(t, NewHandlers(nil, nil), "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "/profile/{steam_id}")
}

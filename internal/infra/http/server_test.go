package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/pocket-hornet/internal/app"
	"github.com/Spok95/pocket-hornet/internal/domain/ledger"
)

type stubSource struct {
	exportErr error
}

func (s stubSource) ReadSnapshot() (app.ExportedSnapshot, error) {
	if s.exportErr != nil {
		return app.ExportedSnapshot{}, s.exportErr
	}
	return app.ExportedSnapshot{Name: "HORNET_CONFIG_2026-03-14.json", Data: []byte(`{"meta":{}}`)}, nil
}

func (stubSource) ReadJournal() (string, []byte, error) {
	return "HORNET_JOURNAL_20260314_183000.xlsx", []byte("xlsx"), nil
}

func (stubSource) Summary() ledger.Summary {
	return ledger.Summary{Events: 2, CashOnHand: decimal.NewFromInt(8), Profit: decimal.NewFromInt(8)}
}

func get(t *testing.T, h http.Handler, path string) *http.Response {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Result()
}

func body(t *testing.T, res *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(b)
}

func TestRoutes(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "hornet_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()
	h := New(":0", log, stubSource{}, reg).Handler()

	res := get(t, h, "/health")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "OK", body(t, res))

	res = get(t, h, "/metrics")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body(t, res), "hornet_test_total 1")

	res = get(t, h, "/snapshot")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
	assert.Contains(t, res.Header.Get("Content-Disposition"), "HORNET_CONFIG_2026-03-14.json")

	res = get(t, h, "/journal")
	assert.Contains(t, res.Header.Get("Content-Disposition"), ".xlsx")
	assert.Equal(t, "xlsx", body(t, res))

	res = get(t, h, "/summary")
	assert.True(t, strings.Contains(body(t, res), `"cashOnHand":"8"`))
}

func TestExportsDisabled(t *testing.T) {
	h := New(":0", slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil).Handler()
	assert.Equal(t, http.StatusOK, get(t, h, "/health").StatusCode)
	for _, path := range []string{"/snapshot", "/journal", "/summary"} {
		assert.Equal(t, http.StatusNotFound, get(t, h, path).StatusCode, path)
	}
}

func TestMetricsDisabled(t *testing.T) {
	h := New(":0", slog.New(slog.NewTextHandler(io.Discard, nil)), stubSource{}, nil).Handler()
	assert.Equal(t, http.StatusNotFound, get(t, h, "/metrics").StatusCode)
}

func TestSnapshotFailure(t *testing.T) {
	h := New(":0", slog.New(slog.NewTextHandler(io.Discard, nil)), stubSource{exportErr: errors.New("boom")}, nil).Handler()
	assert.Equal(t, http.StatusInternalServerError, get(t, h, "/snapshot").StatusCode)
}

package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"swapwatch/internal/application"
	"swapwatch/internal/config"
	"swapwatch/internal/domain"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fakeConfig(t *testing.T) config.Config {
	t.Helper()
	t.Setenv("PROVIDER", "fake")
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestMonitorSettings_FromEnv(t *testing.T) {
	cfg := fakeConfig(t)
	_, err := MonitorSettings(cfg)
	require.ErrorIs(t, err, ErrNoMonitors)

	cfg.SellToken, cfg.BuyToken, cfg.Interval = "WETH", "DAI", "five"
	_, err = MonitorSettings(cfg)
	require.ErrorIs(t, err, domain.ErrInvalidInterval)

	cfg.Interval = "3"
	ms, err := MonitorSettings(cfg)
	require.NoError(t, err)
	require.Len(t, ms, 1)
	require.Equal(t, 3*time.Second, ms[0].Interval)
}

func TestBuildMonitor_RejectsUnknownStrategy(t *testing.T) {
	cfg := fakeConfig(t)
	s := cfg.Settings("WETH", "DAI", 0)
	s.Compare = "epsilon"
	_, err := BuildMonitor("", s, ProvideQuoteFetcher(cfg), nil, nil)
	require.ErrorIs(t, err, application.ErrBadRequest)
}

func TestCLIApp_RunsAgainstFakeProvider(t *testing.T) {
	cfg := fakeConfig(t)
	s := cfg.Settings("WETH", "DAI", 0)
	s.StopOnChange = true

	var out bytes.Buffer
	app, cleanup, err := NewCLIApp(context.Background(), cfg, s, &out, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	outcome, err := app.Monitor.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeChanged, outcome)
	require.Contains(t, out.String(), "Current price: 1800.00")
	require.Contains(t, out.String(), "Price changed: 1800.00 -> 1801.25")
}

const monitorsYAML = `
- sell: WETH
  buy: DAI
  interval: "0"
  stop_on_change: true
- sell: USDC
  buy: WETH
  interval: "0"
  compare: decimal
  stop_on_change: true
`

func TestAPIApp_ServesMonitorsAndPublishesChanges(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	path := filepath.Join(t.TempDir(), "monitors.yaml")
	require.NoError(t, os.WriteFile(path, []byte(monitorsYAML), 0o600))
	t.Setenv("MONITORS_FILE", path)
	t.Setenv("CHANGE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", mr.Addr())
	cfg := fakeConfig(t)

	app, cleanup, err := NewAPIApp(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	app.Worker.Start(ctx)
	for _, r := range app.Pool.Results() {
		require.NoError(t, r.Err)
	}

	rec := httptest.NewRecorder()
	app.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/monitors", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var views []struct {
		Pair    string `json:"pair"`
		Outcome string `json:"outcome"`
		Changes int    `json:"changes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 2)
	for _, v := range views {
		require.Equal(t, "changed", v.Outcome)
		require.Equal(t, 1, v.Changes)
	}

	rec = httptest.NewRecorder()
	app.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	app.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Contains(t, rec.Body.String(), `swapwatch_monitor_changes_total{pair="WETH/DAI"} 1`)

	// each transition reserved its dedup key
	require.True(t, mr.Exists("swapwatch:change:WETH/DAI:1800.00->1801.25"))
	require.True(t, mr.Exists("swapwatch:change:USDC/WETH:1800.00->1801.25"))
}

func TestAPIApp_RedisUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	t.Setenv("CHANGE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", addr)
	t.Setenv("REDIS_CONNECT_TIMEOUT_MS", "200")
	cfg := fakeConfig(t)
	cfg.SellToken, cfg.BuyToken, cfg.Interval = "WETH", "DAI", "1"

	_, _, err = NewAPIApp(context.Background(), cfg, zap.NewNop())
	require.ErrorContains(t, err, "init redis")
}

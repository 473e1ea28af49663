package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"swapwatch/internal/application"
	"swapwatch/internal/config"
	infracfg "swapwatch/internal/infrastructure/config"
	httpserver "swapwatch/internal/infrastructure/http"
	"swapwatch/internal/infrastructure/observability"
	"swapwatch/internal/infrastructure/worker"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// APIApp is a multi-monitor host: the supervised pool plus its HTTP surface.
type APIApp struct {
	Config  config.Config
	Pool    *worker.Pool
	Worker  application.Worker
	Hub     *httpserver.Hub
	Handler http.Handler
}

func InitAPIApp(ctx context.Context) (*APIApp, func(), error) {
	cfg, err := ProvideConfig()
	if err != nil {
		return nil, func() {}, err
	}
	return NewAPIApp(ctx, cfg, ProvideLogger())
}

func NewAPIApp(ctx context.Context, cfg config.Config, log *zap.Logger) (*APIApp, func(), error) {
	settings, err := MonitorSettings(cfg)
	if err != nil {
		return nil, func() {}, err
	}

	client, cleanup, err := ProvideRedisClient(ctx, log, cfg)
	if err != nil {
		return nil, func() {}, fmt.Errorf("init redis: %w", err)
	}

	metrics := observability.NewMetrics(prometheus.NewRegistry(), "")
	hub := httpserver.NewHub(log, infracfg.DefaultWSClientBuffer, infracfg.DefaultWSWriteTimeout)
	reporters := application.MultiReporter{metrics, hub}
	if pub := ProvideChangePublisher(client, cfg); pub != nil {
		reporters = append(reporters, application.ChangeReporter{Publisher: pub, Log: log})
	}

	fetcher := ProvideQuoteFetcher(cfg)
	pool := worker.NewPool(log)
	for _, s := range settings {
		m, err := BuildMonitor(uuid.NewString(), s, fetcher, reporters, log)
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("monitor %s/%s: %w", s.SellToken, s.BuyToken, err)
		}
		if err := pool.Add(m); err != nil {
			cleanup()
			return nil, func() {}, err
		}
	}

	srv := httpserver.NewServer(pool)
	srv.SetMetricsHandler(metrics.Handler())
	srv.SetHub(hub)
	if client != nil {
		srv.SetReadyCheck(func(ctx context.Context) error { return client.Ping(ctx).Err() })
	}

	app := &APIApp{Config: cfg, Pool: pool, Worker: pool, Hub: hub, Handler: httpserver.NewRouter(srv)}
	return app, func() {
		hub.Close()
		cleanup()
	}, nil
}

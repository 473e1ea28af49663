package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"swapwatch/internal/application"
	"swapwatch/internal/config"
	"swapwatch/internal/domain"
	"swapwatch/internal/infrastructure/httpx"
	"swapwatch/internal/infrastructure/logx"
	"swapwatch/internal/infrastructure/provider"
	redisstore "swapwatch/internal/infrastructure/redis"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrNoMonitors = errors.New("no monitors configured")

func ProvideLogger() *zap.Logger { return logx.L() }

func ProvideConfig() (config.Config, error) { return config.Load() }

// ProvideRedisClient connects only when changes are fanned out over Redis.
func ProvideRedisClient(ctx context.Context, log *zap.Logger, cfg config.Config) (*redis.Client, func(), error) {
	if cfg.ChangeBackend != "redis" {
		return nil, func() {}, nil
	}
	client, err := redisstore.Connect(ctx, &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, cfg.RedisConnectTimeout())
	if err != nil {
		return nil, func() {}, err
	}
	cleanup := func() {
		log.Info("closing redis")
		_ = client.Close()
	}
	return client, cleanup, nil
}

func ProvideChangePublisher(client *redis.Client, cfg config.Config) application.ChangePublisher {
	if client == nil {
		return nil
	}
	return redisstore.NewChangePublisher(client, redisstore.New(client, cfg.ChangeTTL()))
}

func ProvideQuoteFetcher(cfg config.Config) application.QuoteFetcher {
	switch cfg.Provider {
	case "fake":
		return provider.NewFake()
	default:
		return provider.NewZeroEx(httpx.New(cfg.QuoteTimeout()))
	}
}

// BuildMonitor turns resolved settings into a ready-to-run monitor.
func BuildMonitor(id string, s config.MonitorSettings, fetcher application.QuoteFetcher, rep application.Reporter, log *zap.Logger) (*application.Monitor, error) {
	cmp, err := application.NewComparator(s.Compare)
	if err != nil {
		return nil, err
	}
	req, err := domain.NewQuoteRequest(s.BaseURL, s.SellToken, s.BuyToken, s.SellAmount)
	if err != nil {
		return nil, err
	}
	opts := []application.MonitorOption{
		application.WithExtractor(application.ExtractorFor(s.PriceField, cmp)),
	}
	if rep != nil {
		opts = append(opts, application.WithReporter(rep))
	}
	if log != nil {
		opts = append(opts, application.WithLogger(log))
	}
	return application.NewMonitor(application.MonitorConfig{
		ID:           id,
		Request:      req,
		Interval:     s.Interval,
		StopOnChange: s.StopOnChange,
		Compare:      cmp,
	}, fetcher, opts...)
}

// MonitorSettings resolves the monitors a host should run: the yaml file when
// MONITORS_FILE is set, else the single pair from SELL_TOKEN/BUY_TOKEN/INTERVAL.
func MonitorSettings(cfg config.Config) ([]config.MonitorSettings, error) {
	if cfg.MonitorsFile != "" {
		return config.LoadMonitors(cfg.MonitorsFile, cfg)
	}
	if cfg.SellToken == "" || cfg.BuyToken == "" {
		return nil, fmt.Errorf("%w: set MONITORS_FILE or SELL_TOKEN and BUY_TOKEN", ErrNoMonitors)
	}
	interval, err := config.ParseInterval(cfg.Interval)
	if err != nil {
		return nil, err
	}
	return []config.MonitorSettings{cfg.Settings(cfg.SellToken, cfg.BuyToken, interval)}, nil
}

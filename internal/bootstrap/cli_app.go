package bootstrap

import (
	"context"
	"fmt"
	"io"

	"swapwatch/internal/application"
	"swapwatch/internal/config"
	"swapwatch/internal/infrastructure/console"

	"go.uber.org/zap"
)

// CLIApp runs one monitor in the foreground and prints its events.
type CLIApp struct {
	Monitor  *application.Monitor
	Console  *console.Reporter
	Settings config.MonitorSettings
}

func NewCLIApp(ctx context.Context, cfg config.Config, s config.MonitorSettings, out io.Writer, log *zap.Logger) (*CLIApp, func(), error) {
	client, cleanup, err := ProvideRedisClient(ctx, log, cfg)
	if err != nil {
		return nil, func() {}, fmt.Errorf("init redis: %w", err)
	}

	rep := console.NewReporter(out, s.Interval)
	reporters := application.MultiReporter{rep}
	if pub := ProvideChangePublisher(client, cfg); pub != nil {
		reporters = append(reporters, application.ChangeReporter{Publisher: pub, Log: log})
	}

	m, err := BuildMonitor("", s, ProvideQuoteFetcher(cfg), reporters, log)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return &CLIApp{Monitor: m, Console: rep, Settings: s}, cleanup, nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"swapwatch/internal/bootstrap"
	"swapwatch/internal/config"
	"swapwatch/internal/infrastructure/console"
	"swapwatch/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	os.Exit(run())
}

func run() int {
	log := logx.L()
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	sell := flag.String("sell", cfg.SellToken, "token to sell, e.g. WETH")
	buy := flag.String("buy", cfg.BuyToken, "token to buy, e.g. DAI")
	interval := flag.String("interval", cfg.Interval, "seconds between checks")
	stop := flag.Bool("stop-on-change", cfg.StopOnChange, "exit after the first detected change")
	flag.Parse()

	answers, err := console.Ask(console.Answers{Sell: *sell, Buy: *buy, Interval: *interval}, os.Getenv("ACCESSIBLE") != "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	every, err := config.ParseInterval(answers.Interval)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Invalid interval:", err)
		return 1
	}

	settings := cfg.Settings(answers.Sell, answers.Buy, every)
	settings.StopOnChange = *stop

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app, cleanup, err := bootstrap.NewCLIApp(ctx, cfg, settings, os.Stdout, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cleanup()

	app.Console.Banner(answers.Sell, answers.Buy)
	outcome, err := app.Monitor.Run(ctx)
	if err != nil {
		log.Error("monitor failed", zap.String("outcome", string(outcome)), zap.Error(err))
		return 1
	}
	return 0
}

package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"swapwatch/internal/domain"

	"github.com/kelseyhightower/envconfig"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// Common
	Env      string `envconfig:"ENV" default:"local"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// API host
	Port         string `envconfig:"PORT" default:"8080"`
	MonitorsFile string `envconfig:"MONITORS_FILE"`
	// Quote endpoint
	Provider       string `envconfig:"PROVIDER" default:"zeroex"`
	QuoteBaseURL   string `envconfig:"QUOTE_BASE_URL" default:"https://api.0x.org/swap/v1/quote"`
	SellAmount     string `envconfig:"SELL_AMOUNT" default:"100000000"`
	QuoteTimeoutMS int    `envconfig:"QUOTE_TIMEOUT_MS" default:"10000"`
	// Monitor policy
	SellToken    string `envconfig:"SELL_TOKEN"`
	BuyToken     string `envconfig:"BUY_TOKEN"`
	Interval     string `envconfig:"INTERVAL"`
	PriceField   string `envconfig:"PRICE_FIELD" default:"price"`
	Compare      string `envconfig:"COMPARE" default:"string"`
	StopOnChange bool   `envconfig:"STOP_ON_CHANGE" default:"false"`
	// Redis (change fan-out)
	ChangeBackend         string `envconfig:"CHANGE_BACKEND" default:"none"`
	RedisAddr             string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword         string `envconfig:"REDIS_PASSWORD"`
	RedisDB               int    `envconfig:"REDIS_DB" default:"0"`
	ChangeTTLMS           int    `envconfig:"CHANGE_TTL_MS" default:"3600000"`
	RedisConnectTimeoutMS int    `envconfig:"REDIS_CONNECT_TIMEOUT_MS" default:"5000"`
}

// Load reads environment variables and applies defaults.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Provider {
	case "zeroex", "fake":
	default:
		return fmt.Errorf("%w: PROVIDER=%q", ErrInvalidConfig, c.Provider)
	}
	switch c.Compare {
	case "string", "float", "decimal":
	default:
		return fmt.Errorf("%w: COMPARE=%q", ErrInvalidConfig, c.Compare)
	}
	switch c.ChangeBackend {
	case "redis", "none":
	default:
		return fmt.Errorf("%w: CHANGE_BACKEND=%q", ErrInvalidConfig, c.ChangeBackend)
	}
	if strings.TrimSpace(c.PriceField) == "" {
		return fmt.Errorf("%w: PRICE_FIELD is empty", ErrInvalidConfig)
	}
	if c.QuoteTimeoutMS < 0 {
		return fmt.Errorf("%w: QUOTE_TIMEOUT_MS=%d", ErrInvalidConfig, c.QuoteTimeoutMS)
	}
	return nil
}

func (c Config) QuoteTimeout() time.Duration {
	return time.Duration(c.QuoteTimeoutMS) * time.Millisecond
}

func (c Config) ChangeTTL() time.Duration {
	return time.Duration(c.ChangeTTLMS) * time.Millisecond
}

func (c Config) RedisConnectTimeout() time.Duration {
	return time.Duration(c.RedisConnectTimeoutMS) * time.Millisecond
}

// The interval ends up in a time.Duration, so that is the effective numeric
// width: parsing is uint64, the accepted range is what a Duration can hold.
const maxIntervalSeconds = uint64(math.MaxInt64 / int64(time.Second))

// ParseInterval accepts a non-negative integer number of seconds. Anything
// else, including negative numbers and values that overflow a time.Duration,
// is rejected with domain.ErrInvalidInterval.
func ParseInterval(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a non-negative whole number of seconds", domain.ErrInvalidInterval, s)
	}
	if n > maxIntervalSeconds {
		return 0, fmt.Errorf("%w: %d seconds is out of range", domain.ErrInvalidInterval, n)
	}
	return time.Duration(n) * time.Second, nil
}

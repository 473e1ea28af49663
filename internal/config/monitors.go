package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// MonitorSettings is one fully resolved monitor definition.
type MonitorSettings struct {
	BaseURL      string
	SellToken    string
	BuyToken     string
	SellAmount   string
	Interval     time.Duration
	PriceField   string
	Compare      string
	StopOnChange bool
}

type monitorTmp struct {
	Sell         string `yaml:"sell"`
	Buy          string `yaml:"buy"`
	Interval     string `yaml:"interval"`
	SellAmount   string `yaml:"sell_amount,omitempty"`
	PriceField   string `yaml:"price_field,omitempty"`
	Compare      string `yaml:"compare,omitempty"`
	StopOnChange *bool  `yaml:"stop_on_change,omitempty"`
}

// Settings builds monitor settings for one pair, taking policy from c.
func (c Config) Settings(sell, buy string, interval time.Duration) MonitorSettings {
	return MonitorSettings{
		BaseURL:      c.QuoteBaseURL,
		SellToken:    sell,
		BuyToken:     buy,
		SellAmount:   c.SellAmount,
		Interval:     interval,
		PriceField:   c.PriceField,
		Compare:      c.Compare,
		StopOnChange: c.StopOnChange,
	}
}

// LoadMonitors reads a yaml list of monitors. Fields left out of an entry
// fall back to the environment config.
func LoadMonitors(path string, c Config) ([]MonitorSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read monitors file: %w", err)
	}
	return ParseMonitors(data, c)
}

func ParseMonitors(data []byte, c Config) ([]MonitorSettings, error) {
	var tmp []monitorTmp
	if err := yaml.Unmarshal(data, &tmp); err != nil {
		return nil, fmt.Errorf("%w: monitors yaml: %v", ErrInvalidConfig, err)
	}
	if len(tmp) == 0 {
		return nil, fmt.Errorf("%w: monitors yaml has no entries", ErrInvalidConfig)
	}

	out := make([]MonitorSettings, 0, len(tmp))
	for i, m := range tmp {
		if m.Sell == "" || m.Buy == "" {
			return nil, fmt.Errorf("%w: monitor %d: 'sell' and 'buy' are required", ErrInvalidConfig, i)
		}
		interval, err := ParseInterval(m.Interval)
		if err != nil {
			return nil, fmt.Errorf("monitor %d (%s/%s): %w", i, m.Sell, m.Buy, err)
		}
		s := c.Settings(m.Sell, m.Buy, interval)
		if m.SellAmount != "" {
			if _, err := strconv.ParseUint(m.SellAmount, 10, 64); err != nil {
				return nil, fmt.Errorf("%w: monitor %d: incorrect 'sell_amount' %q", ErrInvalidConfig, i, m.SellAmount)
			}
			s.SellAmount = m.SellAmount
		}
		if m.PriceField != "" {
			s.PriceField = m.PriceField
		}
		if m.Compare != "" {
			s.Compare = m.Compare
		}
		if m.StopOnChange != nil {
			s.StopOnChange = *m.StopOnChange
		}
		out = append(out, s)
	}
	return out, nil
}

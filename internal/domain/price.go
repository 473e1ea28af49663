package domain

import "github.com/shopspring/decimal"

// Price is one observation. Raw always echoes the upstream field text;
// Value is set only when the extractor runs in numeric mode.
type Price struct {
	Raw     string
	Value   decimal.Decimal
	Numeric bool
}

func TextPrice(raw string) Price { return Price{Raw: raw} }

func (p Price) String() string { return p.Raw }

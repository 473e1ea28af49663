package provider

import (
	"context"
	"fmt"
	"sync"

	"swapwatch/internal/application"
	"swapwatch/internal/domain"
)

// Ensure Fake implements application.QuoteFetcher.
var _ application.QuoteFetcher = (*Fake)(nil)

// Fake serves quote bodies from a fixed price sequence, cycling per pair.
type Fake struct {
	prices []string

	mu   sync.Mutex
	next map[string]int
}

func NewFake(prices ...string) *Fake {
	if len(prices) == 0 {
		prices = []string{"1800.00", "1800.00", "1801.25", "1801.25", "1799.80"}
	}
	return &Fake{prices: prices, next: map[string]int{}}
}

func (f *Fake) Fetch(ctx context.Context, req domain.QuoteRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("fake: %w: %v", domain.ErrTransport, err)
	}
	f.mu.Lock()
	i := f.next[req.Pair()]
	f.next[req.Pair()] = (i + 1) % len(f.prices)
	f.mu.Unlock()

	return fmt.Sprintf(`{"sellToken":%q,"buyToken":%q,"sellAmount":%q,"price":%q,"guaranteedPrice":%q}`,
		req.SellToken, req.BuyToken, req.SellAmount, f.prices[i], f.prices[i]), nil
}

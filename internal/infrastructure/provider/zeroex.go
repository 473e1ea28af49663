package provider

import (
	"context"
	"fmt"

	"swapwatch/internal/application"
	"swapwatch/internal/domain"
	"swapwatch/internal/infrastructure/httpx"
)

// ZeroEx fetches raw swap quotes from a 0x-compatible quote endpoint.
type ZeroEx struct {
	Client *httpx.Client
}

var _ application.QuoteFetcher = (*ZeroEx)(nil)

func NewZeroEx(c *httpx.Client) *ZeroEx { return &ZeroEx{Client: c} }

func (p *ZeroEx) Fetch(ctx context.Context, req domain.QuoteRequest) (string, error) {
	u, err := req.URL()
	if err != nil {
		return "", fmt.Errorf("zeroex: %w", err)
	}
	client := p.Client
	if client == nil {
		client = httpx.New(0)
	}
	body, err := client.GetText(ctx, u)
	if err != nil {
		return "", fmt.Errorf("zeroex %s: %w", req.Pair(), err)
	}
	return body, nil
}

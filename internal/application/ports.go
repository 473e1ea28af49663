package application

import (
	"context"

	"swapwatch/internal/domain"
)

// QuoteFetcher performs exactly one request per call and returns the raw body.
type QuoteFetcher interface {
	Fetch(ctx context.Context, req domain.QuoteRequest) (string, error)
}

type PriceExtractor interface {
	Extract(raw string) (domain.Price, error)
}

// Reporter receives monitor events. Implementations must not block for long;
// the monitor calls them inline between ticks.
type Reporter interface {
	Report(ctx context.Context, e domain.Event)
}

// ChangePublisher fans detected changes out to external subscribers.
type ChangePublisher interface {
	PublishChange(ctx context.Context, c domain.Change) error
}

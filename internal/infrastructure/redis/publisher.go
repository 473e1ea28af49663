package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"swapwatch/internal/application"
	"swapwatch/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	ChannelPrefix = "swapwatch:changes:"
	dedupPrefix   = "swapwatch:change:"
)

var _ application.ChangePublisher = (*ChangePublisher)(nil)

// ChangePublisher fans detected changes out over Redis pub/sub. A transition
// is published once per dedup window even when several hosts watch the pair.
type ChangePublisher struct {
	Client *redis.Client
	Dedup  application.IdempotencyStore
}

func NewChangePublisher(client *redis.Client, dedup application.IdempotencyStore) *ChangePublisher {
	if dedup == nil {
		dedup = application.NoopIdempotency{}
	}
	return &ChangePublisher{Client: client, Dedup: dedup}
}

func Channel(pair string) string { return ChannelPrefix + pair }

func dedupKey(c domain.Change) string {
	return dedupPrefix + c.Pair + ":" + c.Previous + "->" + c.Current
}

func (p *ChangePublisher) PublishChange(ctx context.Context, c domain.Change) error {
	reserved, err := p.Dedup.TryReserve(ctx, dedupKey(c))
	if err != nil {
		return fmt.Errorf("reserve change: %w", err)
	}
	if !reserved {
		return nil
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode change: %w", err)
	}
	if err := p.Client.Publish(ctx, Channel(c.Pair), payload).Err(); err != nil {
		return fmt.Errorf("publish change: %w", err)
	}
	return nil
}

package application

import (
	"context"

	"swapwatch/internal/domain"

	"go.uber.org/zap"
)

// MultiReporter forwards every event to each reporter in order.
type MultiReporter []Reporter

func (m MultiReporter) Report(ctx context.Context, e domain.Event) {
	for _, r := range m {
		if r != nil {
			r.Report(ctx, e)
		}
	}
}

// ChangeReporter publishes changed events and ignores the rest.
type ChangeReporter struct {
	Publisher ChangePublisher
	Log       *zap.Logger
}

func (r ChangeReporter) Report(ctx context.Context, e domain.Event) {
	c, ok := domain.ChangeFromEvent(e)
	if !ok || r.Publisher == nil {
		return
	}
	if err := r.Publisher.PublishChange(ctx, c); err != nil && r.Log != nil {
		r.Log.Warn("change.publish_failed",
			zap.String("monitor_id", c.MonitorID),
			zap.String("pair", c.Pair),
			zap.Error(err),
		)
	}
}

package httpserver

import (
	"fmt"
	"time"

	"swapwatch/internal/application"
	"swapwatch/internal/domain"
)

var _ MonitorSource = (*fakeMonitors)(nil)

type fakeMonitors struct {
	snaps []application.Snapshot
}

func (f *fakeMonitors) Snapshots() []application.Snapshot { return f.snaps }

func (f *fakeMonitors) Snapshot(id string) (application.Snapshot, error) {
	for _, s := range f.snaps {
		if s.ID == id {
			return s, nil
		}
	}
	return application.Snapshot{}, fmt.Errorf("%w: %s", application.ErrNotFound, id)
}

func newFakeMonitors() *fakeMonitors {
	p := domain.TextPrice("1800.5")
	return &fakeMonitors{snaps: []application.Snapshot{
		{
			ID:          "m-1",
			Pair:        "WETH/DAI",
			Status:      domain.MonitorStatusPolling,
			Interval:    10 * time.Second,
			Compare:     application.CompareString,
			Previous:    &p,
			Ticks:       4,
			Changes:     1,
			LastEventAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "m-2",
			Pair:      "NOPE/DAI",
			Status:    domain.MonitorStatusTerminated,
			Compare:   application.CompareDecimal,
			Failures:  1,
			LastError: "bad status",
			Outcome:   domain.OutcomeBaselineFailed,
		},
	}}
}

package domain

import "time"

type EventKind string

const (
	EventBaseline  EventKind = "baseline"
	EventUnchanged EventKind = "unchanged"
	EventChanged   EventKind = "changed"
	EventFailed    EventKind = "failed"
)

// Event is emitted by a monitor once per tick.
type Event struct {
	MonitorID string
	Pair      string
	Kind      EventKind
	Tick      int
	Previous  *Price
	Current   *Price
	Err       error
	At        time.Time
}

package domain

import "time"

// Change is a detected price transition, the payload published to subscribers.
type Change struct {
	MonitorID string    `json:"monitor_id"`
	Pair      string    `json:"pair"`
	Previous  string    `json:"previous"`
	Current   string    `json:"current"`
	Tick      int       `json:"tick"`
	At        time.Time `json:"at"`
}

// ChangeFromEvent builds the change payload. ok is false for non-change events.
func ChangeFromEvent(e Event) (Change, bool) {
	if e.Kind != EventChanged || e.Previous == nil || e.Current == nil {
		return Change{}, false
	}
	return Change{
		MonitorID: e.MonitorID,
		Pair:      e.Pair,
		Previous:  e.Previous.Raw,
		Current:   e.Current.Raw,
		Tick:      e.Tick,
		At:        e.At,
	}, true
}

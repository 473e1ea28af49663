package domain

type MonitorStatus string

const (
	MonitorStatusIdle       MonitorStatus = "idle"
	MonitorStatusPolling    MonitorStatus = "polling"
	MonitorStatusTerminated MonitorStatus = "terminated"
)

// Outcome is the terminal result a monitor hands back to its host.
type Outcome string

const (
	OutcomeChanged        Outcome = "changed"
	OutcomeCancelled      Outcome = "cancelled"
	OutcomeBaselineFailed Outcome = "baseline_failed"
)

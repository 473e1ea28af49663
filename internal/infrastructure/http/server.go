package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"swapwatch/internal/application"
	"swapwatch/internal/domain"
)

// MonitorSource lists the monitors a host is running.
type MonitorSource interface {
	Snapshots() []application.Snapshot
	Snapshot(id string) (application.Snapshot, error)
}

type Server struct {
	monitors MonitorSource
	ping     func(ctx context.Context) error
	metrics  http.Handler
	hub      *Hub
}

func NewServer(monitors MonitorSource) *Server { return &Server{monitors: monitors} }

// SetReadyCheck sets the dependency probe used by /readyz.
func (s *Server) SetReadyCheck(ping func(ctx context.Context) error) { s.ping = ping }

func (s *Server) SetMetricsHandler(h http.Handler) { s.metrics = h }

func (s *Server) SetHub(h *Hub) { s.hub = h }

type monitorView struct {
	ID             string     `json:"id"`
	Pair           string     `json:"pair"`
	Status         string     `json:"status"`
	IntervalSecond int64      `json:"interval_seconds"`
	StopOnChange   bool       `json:"stop_on_change"`
	Compare        string     `json:"compare"`
	Price          *string    `json:"price"`
	Ticks          int        `json:"ticks"`
	Changes        int        `json:"changes"`
	Failures       int        `json:"failures"`
	LastError      string     `json:"last_error,omitempty"`
	LastEventAt    *time.Time `json:"last_event_at,omitempty"`
	Outcome        string     `json:"outcome,omitempty"`
}

func toView(s application.Snapshot) monitorView {
	v := monitorView{
		ID:             s.ID,
		Pair:           s.Pair,
		Status:         string(s.Status),
		IntervalSecond: int64(s.Interval / time.Second),
		StopOnChange:   s.StopOnChange,
		Compare:        string(s.Compare),
		Ticks:          s.Ticks,
		Changes:        s.Changes,
		Failures:       s.Failures,
		LastError:      s.LastError,
		Outcome:        string(s.Outcome),
	}
	if s.Previous != nil {
		p := s.Previous.Raw
		v.Price = &p
	}
	if !s.LastEventAt.IsZero() {
		at := s.LastEventAt
		v.LastEventAt = &at
	}
	return v
}

func (s *Server) ListMonitors(w http.ResponseWriter, _ *http.Request) {
	snaps := s.monitors.Snapshots()
	out := make([]monitorView, 0, len(snaps))
	for _, sn := range snaps {
		out = append(out, toView(sn))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) GetMonitor(w http.ResponseWriter, _ *http.Request, id string) {
	sn, err := s.monitors.Snapshot(id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			notFound(w)
			return
		}
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, toView(sn))
}

type eventView struct {
	MonitorID string    `json:"monitor_id"`
	Pair      string    `json:"pair"`
	Kind      string    `json:"kind"`
	Tick      int       `json:"tick"`
	Previous  *string   `json:"previous,omitempty"`
	Current   *string   `json:"current,omitempty"`
	Error     string    `json:"error,omitempty"`
	ErrorKind string    `json:"error_kind,omitempty"`
	At        time.Time `json:"at"`
}

func toEventView(e domain.Event) eventView {
	v := eventView{
		MonitorID: e.MonitorID,
		Pair:      e.Pair,
		Kind:      string(e.Kind),
		Tick:      e.Tick,
		At:        e.At,
	}
	if e.Previous != nil {
		p := e.Previous.Raw
		v.Previous = &p
	}
	if e.Current != nil {
		c := e.Current.Raw
		v.Current = &c
	}
	if e.Err != nil {
		v.Error = e.Err.Error()
		v.ErrorKind = domain.ErrorKind(e.Err)
	}
	return v
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Code: status, Message: msg})
}

func notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, "not found")
}

func internalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "internal error")
}

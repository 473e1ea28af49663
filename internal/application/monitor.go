package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"swapwatch/internal/domain"

	"go.uber.org/zap"
)

// MonitorConfig is everything a monitor needs for one run.
type MonitorConfig struct {
	ID           string
	Request      domain.QuoteRequest
	Interval     time.Duration
	StopOnChange bool
	Compare      Comparator
}

// Snapshot is a read-only copy of a monitor's state for hosts.
type Snapshot struct {
	ID           string
	Pair         string
	Status       domain.MonitorStatus
	Interval     time.Duration
	StopOnChange bool
	Compare      Strategy
	Previous     *domain.Price
	Ticks        int
	Changes      int
	Failures     int
	LastError    string
	LastEventAt  time.Time
	Outcome      domain.Outcome
}

type Monitor struct {
	cfg       MonitorConfig
	fetcher   QuoteFetcher
	extractor PriceExtractor
	reporter  Reporter
	clock     Clock
	log       *zap.Logger

	// previous is only written by Run.
	previous *domain.Price

	mu   sync.RWMutex
	snap Snapshot
}

type MonitorOption func(*Monitor)

func WithReporter(r Reporter) MonitorOption        { return func(m *Monitor) { m.reporter = r } }
func WithMonitorClock(c Clock) MonitorOption       { return func(m *Monitor) { m.clock = c } }
func WithLogger(l *zap.Logger) MonitorOption       { return func(m *Monitor) { m.log = l } }
func WithExtractor(x PriceExtractor) MonitorOption { return func(m *Monitor) { m.extractor = x } }

func NewMonitor(cfg MonitorConfig, fetcher QuoteFetcher, opts ...MonitorOption) (*Monitor, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("%w: fetcher is required", ErrBadRequest)
	}
	if cfg.Interval < 0 {
		return nil, fmt.Errorf("%w: interval %s", domain.ErrInvalidInterval, cfg.Interval)
	}
	if err := cfg.Request.Validate(); err != nil {
		return nil, err
	}
	if cfg.Compare == nil {
		cfg.Compare = StringComparator{}
	}
	if cfg.ID == "" {
		cfg.ID = newID()
	}
	m := &Monitor{cfg: cfg, fetcher: fetcher}
	for _, opt := range opts {
		opt(m)
	}
	if m.extractor == nil {
		m.extractor = ExtractorFor(FieldPrice, cfg.Compare)
	}
	if m.reporter == nil {
		m.reporter = MultiReporter(nil)
	}
	if m.clock == nil {
		m.clock = realClock{}
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	m.snap = Snapshot{
		ID:           cfg.ID,
		Pair:         cfg.Request.Pair(),
		Status:       domain.MonitorStatusIdle,
		Interval:     cfg.Interval,
		StopOnChange: cfg.StopOnChange,
		Compare:      cfg.Compare.Name(),
	}
	return m, nil
}

func (m *Monitor) ID() string { return m.cfg.ID }

// Snapshot returns a copy of the current state; safe for concurrent use.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.snap
	if s.Previous != nil {
		p := *s.Previous
		s.Previous = &p
	}
	return s
}

// Run establishes a baseline and then polls until the context is canceled or,
// with StopOnChange, until the first change. A failed baseline ends the run
// with OutcomeBaselineFailed and the underlying error.
func (m *Monitor) Run(ctx context.Context) (domain.Outcome, error) {
	log := m.log.With(zap.String("monitor_id", m.cfg.ID), zap.String("pair", m.cfg.Request.Pair()))
	m.update(func(s *Snapshot) { s.Status = domain.MonitorStatusPolling })

	if ctx.Err() != nil {
		return m.finish(log, domain.OutcomeCancelled), nil
	}

	baseline, err := m.observe(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return m.finish(log, domain.OutcomeCancelled), nil
		}
		m.emit(ctx, domain.Event{Kind: domain.EventFailed, Err: err})
		log.Warn("monitor.baseline_failed", zap.String("error_kind", domain.ErrorKind(err)), zap.Error(err))
		return m.finish(log, domain.OutcomeBaselineFailed), fmt.Errorf("initial fetch: %w", err)
	}
	m.previous = &baseline
	m.emit(ctx, domain.Event{Kind: domain.EventBaseline, Current: &baseline})
	log.Info("monitor.baseline", zap.String("price", baseline.Raw), zap.Duration("interval", m.cfg.Interval))

	for tick := 1; ; tick++ {
		if err := m.wait(ctx); err != nil {
			return m.finish(log, domain.OutcomeCancelled), nil
		}

		current, err := m.observe(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return m.finish(log, domain.OutcomeCancelled), nil
			}
			m.emit(ctx, domain.Event{Kind: domain.EventFailed, Tick: tick, Previous: m.previous, Err: err})
			log.Warn("monitor.tick_failed",
				zap.Int("tick", tick),
				zap.String("error_class", errorClass(err)),
				zap.String("error_kind", domain.ErrorKind(err)),
				zap.Error(err),
			)
			continue
		}

		previous := m.previous
		if m.cfg.Compare.Equal(*previous, current) {
			m.emit(ctx, domain.Event{Kind: domain.EventUnchanged, Tick: tick, Previous: previous, Current: &current})
			log.Debug("monitor.unchanged", zap.Int("tick", tick), zap.String("price", current.Raw))
			continue
		}

		m.previous = &current
		m.emit(ctx, domain.Event{Kind: domain.EventChanged, Tick: tick, Previous: previous, Current: &current})
		log.Info("monitor.changed",
			zap.Int("tick", tick),
			zap.String("previous", previous.Raw),
			zap.String("price", current.Raw),
		)
		if m.cfg.StopOnChange {
			return m.finish(log, domain.OutcomeChanged), nil
		}
	}
}

func errorClass(err error) string {
	switch {
	case domain.IsFetchError(err):
		return "fetch"
	case domain.IsExtractError(err):
		return "extract"
	default:
		return "other"
	}
}

func (m *Monitor) observe(ctx context.Context) (domain.Price, error) {
	raw, err := m.fetcher.Fetch(ctx, m.cfg.Request)
	if err != nil {
		return domain.Price{}, err
	}
	return m.extractor.Extract(raw)
}

func (m *Monitor) wait(ctx context.Context) error {
	if m.cfg.Interval <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.cfg.Interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return ctx.Err()
	}
}

func (m *Monitor) emit(ctx context.Context, e domain.Event) {
	e.MonitorID = m.cfg.ID
	e.Pair = m.cfg.Request.Pair()
	e.At = m.clock.Now()

	m.update(func(s *Snapshot) {
		s.LastEventAt = e.At
		if e.Tick > s.Ticks {
			s.Ticks = e.Tick
		}
		switch e.Kind {
		case domain.EventFailed:
			s.Failures++
			s.LastError = e.Err.Error()
		case domain.EventChanged:
			s.Changes++
			p := *e.Current
			s.Previous = &p
		case domain.EventBaseline:
			p := *e.Current
			s.Previous = &p
		}
	})
	// Reporters run on a context detached from cancellation so the final
	// event of a run is still delivered.
	m.reporter.Report(context.WithoutCancel(ctx), e)
}

func (m *Monitor) finish(log *zap.Logger, o domain.Outcome) domain.Outcome {
	m.update(func(s *Snapshot) {
		s.Status = domain.MonitorStatusTerminated
		s.Outcome = o
	})
	log.Info("monitor.stopped", zap.String("outcome", string(o)))
	return o
}

func (m *Monitor) update(fn func(s *Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.snap)
}

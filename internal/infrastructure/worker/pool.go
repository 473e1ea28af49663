package worker

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"swapwatch/internal/application"
	"swapwatch/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var _ application.Worker = (*Pool)(nil)

// Result is how a single monitor run ended.
type Result struct {
	ID      string
	Pair    string
	Outcome domain.Outcome
	Err     error
}

// Pool runs independent monitors, one goroutine each. A monitor that ends,
// including on a failed baseline, does not affect the others.
type Pool struct {
	Log *zap.Logger

	mu       sync.RWMutex
	monitors []*application.Monitor
	byID     map[string]*application.Monitor
	results  map[string]Result
}

func NewPool(log *zap.Logger) *Pool {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pool{Log: log, byID: map[string]*application.Monitor{}, results: map[string]Result{}}
}

func (p *Pool) Add(m *application.Monitor) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, dup := p.byID[m.ID()]; dup {
		return fmt.Errorf("%w: duplicate monitor id %s", application.ErrBadRequest, m.ID())
	}
	p.monitors = append(p.monitors, m)
	p.byID[m.ID()] = m
	return nil
}

// Start runs the pool as an application.Worker; monitor errors are logged.
func (p *Pool) Start(ctx context.Context) {
	if err := p.Run(ctx); err != nil {
		p.Log.Warn("pool.finished_with_errors", zap.Error(err))
	}
}

// Run blocks until every monitor has terminated and returns the first
// monitor error, if any.
func (p *Pool) Run(ctx context.Context) error {
	p.mu.RLock()
	monitors := append([]*application.Monitor(nil), p.monitors...)
	p.mu.RUnlock()

	p.Log.Info("pool.started", zap.Int("monitors", len(monitors)))
	var g errgroup.Group
	for _, m := range monitors {
		g.Go(func() error { return p.runOne(ctx, m) })
	}
	err := g.Wait()
	p.Log.Info("pool.stopped")
	return err
}

func (p *Pool) runOne(ctx context.Context, m *application.Monitor) (err error) {
	res := Result{ID: m.ID(), Pair: m.Snapshot().Pair}
	defer func() {
		if r := recover(); r != nil {
			p.Log.Warn("pool.monitor_panic", zap.String("monitor_id", res.ID), zap.Any("r", r))
			err = fmt.Errorf("monitor %s panicked: %v", res.ID, r)
		}
		res.Err = err
		p.mu.Lock()
		p.results[res.ID] = res
		p.mu.Unlock()
	}()

	out, err := m.Run(ctx)
	res.Outcome = out
	if err != nil {
		p.Log.Warn("pool.monitor_failed",
			zap.String("monitor_id", res.ID),
			zap.String("pair", res.Pair),
			zap.String("outcome", string(out)),
			zap.Error(err),
		)
		return fmt.Errorf("monitor %s (%s): %w", res.ID, res.Pair, err)
	}
	return nil
}

// Snapshots returns the state of every monitor ordered by pair then id.
func (p *Pool) Snapshots() []application.Snapshot {
	p.mu.RLock()
	out := make([]application.Snapshot, 0, len(p.monitors))
	for _, m := range p.monitors {
		out = append(out, m.Snapshot())
	}
	p.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pair != out[j].Pair {
			return out[i].Pair < out[j].Pair
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (p *Pool) Snapshot(id string) (application.Snapshot, error) {
	p.mu.RLock()
	m, ok := p.byID[id]
	p.mu.RUnlock()
	if !ok {
		return application.Snapshot{}, fmt.Errorf("%w: monitor %s", application.ErrNotFound, id)
	}
	return m.Snapshot(), nil
}

// Results returns how finished monitors ended, keyed by monitor id.
func (p *Pool) Results() map[string]Result {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]Result, len(p.results))
	for k, v := range p.results {
		out[k] = v
	}
	return out
}

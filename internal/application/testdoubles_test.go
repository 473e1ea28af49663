package application

import (
	"context"
	"sync"
	"time"

	"swapwatch/internal/domain"
)

type step struct {
	body string
	err  error
}

func raw(body string) step    { return step{body: body} }
func fail(err error) step     { return step{err: err} }
func priceBody(p string) step { return raw(`{"price":"` + p + `","guaranteedPrice":"0"}`) }

// scriptedFetcher replays steps in order and cancels the run once they are exhausted.
type scriptedFetcher struct {
	mu     sync.Mutex
	steps  []step
	calls  int
	cancel context.CancelFunc
}

func (f *scriptedFetcher) Fetch(ctx context.Context, _ domain.QuoteRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls >= len(f.steps) {
		if f.cancel != nil {
			f.cancel()
		}
		return "", ctx.Err()
	}
	s := f.steps[f.calls]
	f.calls++
	return s.body, s.err
}

func (f *scriptedFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recordingReporter struct {
	mu     sync.Mutex
	events []domain.Event
	ch     chan domain.Event
}

func (r *recordingReporter) Report(_ context.Context, e domain.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
	if r.ch != nil {
		r.ch <- e
	}
}

func (r *recordingReporter) kinds() []domain.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.EventKind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func (r *recordingReporter) last(kind domain.EventKind) (domain.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Kind == kind {
			return r.events[i], true
		}
	}
	return domain.Event{}, false
}

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

func testRequest() domain.QuoteRequest {
	return domain.QuoteRequest{
		BaseURL:    "http://quotes.test/swap/v1/quote",
		SellToken:  "WETH",
		BuyToken:   "DAI",
		SellAmount: domain.DefaultSellAmount,
	}
}

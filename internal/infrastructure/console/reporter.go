package console

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"swapwatch/internal/application"
	"swapwatch/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#9A9A9A"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	warning   = lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF5F87"}

	headerStyle    = lipgloss.NewStyle().Foreground(highlight).Bold(true)
	infoStyle      = lipgloss.NewStyle().Foreground(subtle)
	changedStyle   = lipgloss.NewStyle().Foreground(special).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(warning)
	errorHintStyle = lipgloss.NewStyle().Foreground(warning).Italic(true)
)

var _ application.Reporter = (*Reporter)(nil)

// Reporter prints monitor events as human readable lines.
type Reporter struct {
	out      io.Writer
	interval time.Duration

	mu sync.Mutex
}

func NewReporter(out io.Writer, interval time.Duration) *Reporter {
	return &Reporter{out: out, interval: interval}
}

// Banner announces the pair before the baseline fetch.
func (r *Reporter) Banner(sell, buy string) {
	r.println(headerStyle.Render(fmt.Sprintf("Monitoring price change for %s -> %s", sell, buy)))
	r.println(infoStyle.Render("Checking initial price..."))
}

func (r *Reporter) Report(_ context.Context, e domain.Event) {
	switch e.Kind {
	case domain.EventBaseline:
		r.println(fmt.Sprintf("Current price: %s", e.Current))
	case domain.EventUnchanged:
		r.println(infoStyle.Render(fmt.Sprintf("Price unchanged. Checking again in %d seconds...", int64(r.interval/time.Second))))
	case domain.EventChanged:
		r.println(changedStyle.Render(fmt.Sprintf("Price changed: %s -> %s", e.Previous, e.Current)))
	case domain.EventFailed:
		if e.Tick == 0 {
			r.println(errorStyle.Render(fmt.Sprintf("Failed to fetch initial price: %v", e.Err)))
			r.println(errorHintStyle.Render("Please make sure you are using a valid token name"))
			return
		}
		r.println(errorStyle.Render(fmt.Sprintf("Failed to fetch price: %v", e.Err)))
	}
}

func (r *Reporter) println(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintln(r.out, s)
}

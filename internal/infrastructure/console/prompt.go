package console

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pkg/errors"
)

// Answers are the values the CLI needs before it can start a monitor.
type Answers struct {
	Sell     string
	Buy      string
	Interval string
}

// Missing reports whether any answer still has to be asked for.
func (a Answers) Missing() bool {
	return a.Sell == "" || a.Buy == "" || a.Interval == ""
}

// Trim strips surrounding whitespace from every answer.
func (a Answers) Trim() Answers {
	return Answers{
		Sell:     strings.TrimSpace(a.Sell),
		Buy:      strings.TrimSpace(a.Buy),
		Interval: strings.TrimSpace(a.Interval),
	}
}

// Ask prompts only for the answers that are still empty. The interval is
// taken as typed; validating it is up to the caller.
func Ask(a Answers, accessible bool) (Answers, error) {
	a = a.Trim()
	if !a.Missing() {
		return a, nil
	}

	var fields []huh.Field
	if a.Sell == "" {
		fields = append(fields, huh.NewInput().
			Title("Enter the sell token (e.g. WETH)").
			Value(&a.Sell))
	}
	if a.Buy == "" {
		fields = append(fields, huh.NewInput().
			Title("Enter the buy token (e.g. DAI)").
			Value(&a.Buy))
	}
	if a.Interval == "" {
		fields = append(fields, huh.NewInput().
			Title("Enter the check interval in seconds").
			Description("Whole number of seconds, 0 or more").
			Value(&a.Interval))
	}

	err := huh.NewForm(huh.NewGroup(fields...)).
		WithAccessible(accessible).
		Run()
	if err != nil {
		return a, errors.Wrap(err, "error reading monitor settings")
	}
	return a.Trim(), nil
}

// Package display shows calculation results with a success or error tone.
//
// A Panel holds the last result and a flash flag. Show raises the flash and
// Tick lowers it once ClearAfter has passed. The panel never computes
// anything; it only renders what the pipeline returned.
package display

import (
	"time"

	"github.com/roach88/abacus/internal/calc"
)

// DefaultClearAfter is how long a result stays highlighted.
const DefaultClearAfter = 2 * time.Second

// Tone is the visual class of the panel.
type Tone int

const (
	ToneIdle Tone = iota
	ToneSuccess
	ToneError
)

func (t Tone) String() string {
	switch t {
	case ToneSuccess:
		return "success"
	case ToneError:
		return "error"
	default:
		return "idle"
	}
}

// Panel is the result area of a calculator form. It is not safe for
// concurrent use; the TUI drives it from its update loop.
type Panel struct {
	ClearAfter time.Duration

	text     string
	tone     Tone
	flashing bool
	shownAt  time.Time
}

// NewPanel returns an empty panel using DefaultClearAfter.
func NewPanel() *Panel {
	return &Panel{ClearAfter: DefaultClearAfter}
}

// Show replaces the panel content with r and raises the flash.
func (p *Panel) Show(r calc.Result, now time.Time) {
	p.text = r.Message()
	if r.OK() {
		p.tone = ToneSuccess
	} else {
		p.tone = ToneError
	}
	p.flashing = true
	p.shownAt = now
}

// Tick lowers the flash once ClearAfter has elapsed since the last Show.
// It reports whether the flash was lowered by this call.
func (p *Panel) Tick(now time.Time) bool {
	if !p.flashing || now.Before(p.Deadline()) {
		return false
	}
	p.flashing = false
	return true
}

// Deadline is when the current flash expires.
func (p *Panel) Deadline() time.Time {
	return p.shownAt.Add(p.ClearAfter)
}

// Clear empties the panel.
func (p *Panel) Clear() {
	*p = Panel{ClearAfter: p.ClearAfter}
}

func (p *Panel) Text() string   { return p.text }
func (p *Panel) Tone() Tone     { return p.tone }
func (p *Panel) Flashing() bool { return p.flashing }

// Render returns the styled content. The text keeps its tone after the
// flash ends; only the emphasis goes away.
func (p *Panel) Render() string {
	switch p.tone {
	case ToneSuccess:
		return SuccessStyle.Bold(p.flashing).Render(p.text)
	case ToneError:
		return ErrorStyle.Bold(p.flashing).Render(p.text)
	default:
		return IdleStyle.Render(Placeholder)
	}
}

// Placeholder is rendered before the first result.
const Placeholder = "No result yet"

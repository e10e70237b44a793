// Package progress provides CLI progress indicators. Output goes to stderr
// to keep stdout clean for piping, and nothing is drawn unless stderr is a
// terminal.
package progress

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// Spinner shows that an indeterminate operation is running. Key derivation
// takes long enough on slower machines that a silent pause looks like a hang.
type Spinner struct {
	s     *spinner.Spinner
	isTTY bool
}

// NewSpinner creates a spinner that writes to stderr.
func NewSpinner(label string) *Spinner {
	return newSpinner(os.Stderr, label, term.IsTerminal(int(os.Stderr.Fd())))
}

func newSpinner(w io.Writer, label string, isTTY bool) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + label + "..."
	_ = s.Color("cyan") // colour is cosmetic
	return &Spinner{s: s, isTTY: isTTY}
}

// Start displays the spinner.
func (s *Spinner) Start() {
	if !s.isTTY {
		return
	}
	s.s.Start()
}

// Stop clears the spinner line.
func (s *Spinner) Stop() {
	if !s.isTTY {
		return
	}
	s.s.Stop()
}

// Active reports whether the spinner is currently drawing.
func (s *Spinner) Active() bool {
	return s.isTTY && s.s.Active()
}

// Run calls fn with a spinner on stderr and returns its results.
func Run[T any](label string, fn func() (T, error)) (T, error) {
	sp := NewSpinner(label)
	sp.Start()
	defer sp.Stop()
	return fn()
}

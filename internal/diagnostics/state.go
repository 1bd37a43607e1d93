package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/terminal"
)

// State accumulates fatal conditions for the lifetime of the process.
// Only the first condition's message is kept; later ones are only counted.
type State struct {
	count ErrorCount
	first *FatalError
}

// Record notes a fatal condition.
func (s *State) Record(err *FatalError) {
	if !s.count.IsZero() {
		s.count = s.count.Increment()
		return
	}
	if s.first == nil {
		s.first = err
	}
	s.count = Exact(1)
}

// Failed reports whether any fatal condition was recorded.
func (s *State) Failed() bool {
	return !s.count.IsZero()
}

// Count returns the error counter.
func (s *State) Count() ErrorCount {
	return s.count
}

// First returns the first recorded condition, or nil.
func (s *State) First() *FatalError {
	return s.first
}

// FirstMessage returns the text the report starts with.
func (s *State) FirstMessage() string {
	if s.first == nil || s.first.Message == "" {
		return MessageInternal
	}
	return s.first.Message
}

// Report writes the human-readable failure report to w. It writes nothing
// when no fatal condition was recorded.
func (s *State) Report(w io.Writer, useColor bool) error {
	if !s.Failed() {
		return nil
	}

	// Build the report first so it reaches w in a single write
	var sb strings.Builder
	message := s.FirstMessage()
	if useColor {
		message = terminal.Red(message)
	}
	sb.WriteString(message)
	sb.WriteString("\n")

	if followUps := s.count.FollowUps(); followUps > 0 {
		var line string
		if s.count.Saturated() {
			line = fmt.Sprintf("(%d or more follow-up errors also occurred.)", followUps)
		} else {
			line = fmt.Sprintf("(%d follow-up errors also occurred.)", followUps)
		}
		if useColor {
			line = terminal.Yellow(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

package session

import (
	"fmt"
	"strings"
)

// FormatHistory renders the turn window as prompt-ready text: one
// two-line exchange per turn, blank-line separated, numbered by position
// in the window rather than by the turn's lifetime number. Empty window
// renders as the empty string.
func (s *Session) FormatHistory() string {
	if len(s.RecentTurns) == 0 {
		return ""
	}

	var b strings.Builder
	for i, turn := range s.RecentTurns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Turn %d:\n", i+1)
		fmt.Fprintf(&b, "Student: %q\n", turn.StudentInput)
		fmt.Fprintf(&b, "Tutor: %q", turn.TutorResponse)
	}
	return b.String()
}

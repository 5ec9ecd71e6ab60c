// Package session owns per-session tutoring state: the current problem and
// its attempt counter, the bounded turn window, taught concepts, and
// running statistics. One turn mutates a session exactly once, under the
// host's single-writer discipline per session id.
package session

import (
	"fmt"
	"time"

	"github.com/abhisek/socra/internal/verify"
)

// MaxRecentTurns is the turn window capacity. Older turns are evicted
// front-first.
const MaxRecentTurns = 5

// DefaultTTL is how long a session stays live after its last activity.
// Expiry is advisory: storage enforces it on read, the core never reaps.
const DefaultTTL = 1800 * time.Second

// Problem is a problem as issued by the problem source. Immutable once
// issued; a new problem replaces the slot wholesale.
type Problem struct {
	ID            string
	Text          string
	CorrectAnswer string
}

// CurrentProblem is the session's active problem slot with its per-problem
// bookkeeping.
type CurrentProblem struct {
	Problem
	AttemptCount int
	StartedAt    time.Time
}

// Turn is the immutable record of one exchange. Appended to the window,
// never mutated afterwards.
type Turn struct {
	TurnNumber   int
	Timestamp    time.Time
	StudentInput string
	IsAnswer     bool

	// Category is the classified answer quality. Kept as a plain string:
	// a category outside the closed set still records and flows through
	// verbatim for the host to log on.
	Category string

	// Verification is the snapshot of the verifier's verdict for this
	// turn, when the turn was an answer.
	Verification *verify.Result

	TutorResponse string
	LatencyMs     int64
}

// Stats are the session's running aggregates.
type Stats struct {
	TotalTurns        int
	TotalLatencyMs    int64
	AvgLatencyMs      int64
	ProblemsAttempted int
	ProblemsSolved    int
}

// Session is the aggregate root for one student conversation. It
// exclusively owns its problem slot and turn window; nothing is shared
// across sessions.
type Session struct {
	SessionID string
	StudentID string

	CreatedAt  time.Time
	LastActive time.Time
	TTL        time.Duration

	CurrentProblem CurrentProblem

	// RecentTurns holds at most MaxRecentTurns turns, oldest first.
	RecentTurns []Turn

	// ConceptsTaught is a dedup set with insertion order preserved.
	ConceptsTaught []string

	Stats Stats

	// Scaffolding state, scoped to the current problem. Replaced
	// alongside the problem slot.
	ScaffoldingActive bool
	TeachBackActive   bool
	SubAnswers        []string
}

// Initialize creates a session for its first problem.
func Initialize(studentID, sessionID string, problem Problem) *Session {
	now := time.Now()
	return &Session{
		SessionID:  sessionID,
		StudentID:  studentID,
		CreatedAt:  now,
		LastActive: now,
		TTL:        DefaultTTL,
		CurrentProblem: CurrentProblem{
			Problem:   problem,
			StartedAt: now,
		},
		Stats: Stats{ProblemsAttempted: 1},
	}
}

// RecordTurn applies one completed turn to the session: problem switch
// handling, attempt and solved counters, window append with eviction, and
// latency stats. The update is transactional: it is computed on a copy
// and swapped in whole, so a failed turn leaves the aggregate untouched.
//
// The turn's number and timestamp are assigned here; callers never
// pre-number turns.
func (s *Session) RecordTurn(turn Turn, current Problem) error {
	if current.ID == "" {
		return fmt.Errorf("record turn: problem has no id")
	}

	next := s.clone()
	now := time.Now()

	// A new problem replaces the slot wholesale and resets everything
	// scoped to it: attempts, scaffolding state, collected sub-answers.
	if next.CurrentProblem.ID != current.ID {
		next.CurrentProblem = CurrentProblem{
			Problem:   current,
			StartedAt: now,
		}
		next.Stats.ProblemsAttempted++
		next.ScaffoldingActive = false
		next.TeachBackActive = false
		next.SubAnswers = nil
	}

	if turn.IsAnswer {
		next.CurrentProblem.AttemptCount++
	}
	if turn.Category == "correct" {
		next.Stats.ProblemsSolved++
	}

	turn.TurnNumber = next.Stats.TotalTurns + 1
	turn.Timestamp = now
	next.RecentTurns = append(next.RecentTurns, turn)
	if n := len(next.RecentTurns); n > MaxRecentTurns {
		next.RecentTurns = next.RecentTurns[n-MaxRecentTurns:]
	}

	next.LastActive = now
	next.Stats.TotalTurns++
	if turn.LatencyMs > 0 {
		next.Stats.TotalLatencyMs += turn.LatencyMs
		next.Stats.AvgLatencyMs = int64(float64(next.Stats.TotalLatencyMs)/float64(next.Stats.TotalTurns) + 0.5)
	}

	*s = *next
	return nil
}

// AddTaughtConcept records a concept identifier once. Adding a concept
// already present is a no-op.
func (s *Session) AddTaughtConcept(concept string) {
	for _, c := range s.ConceptsTaught {
		if c == concept {
			return
		}
	}
	s.ConceptsTaught = append(s.ConceptsTaught, concept)
}

// Expired reports whether the session's TTL window has elapsed since its
// last activity. Read-side check for storage; the core never enforces it.
func (s *Session) Expired(now time.Time) bool {
	return now.Sub(s.LastActive) > s.TTL
}

// clone deep-copies the session so RecordTurn can stage its update.
func (s *Session) clone() *Session {
	next := *s
	next.RecentTurns = append([]Turn(nil), s.RecentTurns...)
	next.ConceptsTaught = append([]string(nil), s.ConceptsTaught...)
	next.SubAnswers = append([]string(nil), s.SubAnswers...)
	return &next
}

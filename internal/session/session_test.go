package session

import (
	"strings"
	"testing"
	"time"
)

func newTestSession() *Session {
	return Initialize("student-1", "sess-1", Problem{
		ID:            "p1",
		Text:          "-3 + 5 = ?",
		CorrectAnswer: "2",
	})
}

func TestInitialize(t *testing.T) {
	s := newTestSession()

	if s.SessionID != "sess-1" || s.StudentID != "student-1" {
		t.Fatalf("identity not set: %+v", s)
	}
	if s.CurrentProblem.ID != "p1" {
		t.Errorf("current problem = %q, want p1", s.CurrentProblem.ID)
	}
	if s.CurrentProblem.AttemptCount != 0 {
		t.Errorf("attempt count = %d, want 0", s.CurrentProblem.AttemptCount)
	}
	if s.Stats.ProblemsAttempted != 1 {
		t.Errorf("problems attempted = %d, want 1", s.Stats.ProblemsAttempted)
	}
	if s.TTL != DefaultTTL {
		t.Errorf("ttl = %v, want %v", s.TTL, DefaultTTL)
	}
}

func TestRecordTurn_AnswerIncrementsAttempts(t *testing.T) {
	s := newTestSession()
	p := s.CurrentProblem.Problem

	turns := []struct {
		input        string
		isAnswer     bool
		wantAttempts int
	}{
		{"what do I do first?", false, 0},
		{"5", true, 1},
		{"hmm", false, 1},
		{"2", true, 2},
	}
	for _, tt := range turns {
		err := s.RecordTurn(Turn{StudentInput: tt.input, IsAnswer: tt.isAnswer}, p)
		if err != nil {
			t.Fatalf("RecordTurn(%q): %v", tt.input, err)
		}
		if got := s.CurrentProblem.AttemptCount; got != tt.wantAttempts {
			t.Errorf("after %q: attempts = %d, want %d", tt.input, got, tt.wantAttempts)
		}
	}
	if s.Stats.TotalTurns != 4 {
		t.Errorf("total turns = %d, want 4", s.Stats.TotalTurns)
	}
}

func TestRecordTurn_WindowKeepsLastFive(t *testing.T) {
	s := newTestSession()
	p := s.CurrentProblem.Problem

	inputs := []string{"a", "b", "c", "d", "e", "f"}
	for _, in := range inputs {
		if err := s.RecordTurn(Turn{StudentInput: in}, p); err != nil {
			t.Fatal(err)
		}
	}

	if len(s.RecentTurns) != MaxRecentTurns {
		t.Fatalf("window size = %d, want %d", len(s.RecentTurns), MaxRecentTurns)
	}
	// Oldest evicted, order preserved, lifetime numbers untouched.
	wantInputs := []string{"b", "c", "d", "e", "f"}
	for i, turn := range s.RecentTurns {
		if turn.StudentInput != wantInputs[i] {
			t.Errorf("window[%d] = %q, want %q", i, turn.StudentInput, wantInputs[i])
		}
		if turn.TurnNumber != i+2 {
			t.Errorf("window[%d] turn number = %d, want %d", i, turn.TurnNumber, i+2)
		}
	}
	if s.Stats.TotalTurns != 6 {
		t.Errorf("total turns = %d, want 6", s.Stats.TotalTurns)
	}
}

func TestRecordTurn_ProblemSwitchResets(t *testing.T) {
	s := newTestSession()
	p1 := s.CurrentProblem.Problem

	if err := s.RecordTurn(Turn{StudentInput: "5", IsAnswer: true}, p1); err != nil {
		t.Fatal(err)
	}
	s.ScaffoldingActive = true
	s.SubAnswers = []string{"3"}

	p2 := Problem{ID: "p2", Text: "1/4 + 1/2 = ?", CorrectAnswer: "3/4"}
	if err := s.RecordTurn(Turn{StudentInput: "4", IsAnswer: true}, p2); err != nil {
		t.Fatal(err)
	}

	if s.CurrentProblem.ID != "p2" {
		t.Fatalf("current problem = %q, want p2", s.CurrentProblem.ID)
	}
	if s.CurrentProblem.AttemptCount != 1 {
		t.Errorf("attempts = %d, want 1 (reset then this answer)", s.CurrentProblem.AttemptCount)
	}
	if s.Stats.ProblemsAttempted != 2 {
		t.Errorf("problems attempted = %d, want 2", s.Stats.ProblemsAttempted)
	}
	if s.ScaffoldingActive || len(s.SubAnswers) != 0 {
		t.Errorf("scaffolding state not reset: active=%v subAnswers=%v", s.ScaffoldingActive, s.SubAnswers)
	}
	// Turn window spans the switch.
	if len(s.RecentTurns) != 2 {
		t.Errorf("window size = %d, want 2", len(s.RecentTurns))
	}
}

func TestRecordTurn_CorrectIncrementsSolved(t *testing.T) {
	s := newTestSession()
	p := s.CurrentProblem.Problem

	if err := s.RecordTurn(Turn{StudentInput: "5", IsAnswer: true, Category: "wrong_operation"}, p); err != nil {
		t.Fatal(err)
	}
	if s.Stats.ProblemsSolved != 0 {
		t.Fatalf("solved = %d after wrong answer, want 0", s.Stats.ProblemsSolved)
	}
	if err := s.RecordTurn(Turn{StudentInput: "2", IsAnswer: true, Category: "correct"}, p); err != nil {
		t.Fatal(err)
	}
	if s.Stats.ProblemsSolved != 1 {
		t.Errorf("solved = %d, want 1", s.Stats.ProblemsSolved)
	}
}

func TestRecordTurn_LatencyStats(t *testing.T) {
	s := newTestSession()
	p := s.CurrentProblem.Problem

	for _, ms := range []int64{100, 201} {
		if err := s.RecordTurn(Turn{StudentInput: "x", LatencyMs: ms}, p); err != nil {
			t.Fatal(err)
		}
	}

	if s.Stats.TotalLatencyMs != 301 {
		t.Errorf("total latency = %d, want 301", s.Stats.TotalLatencyMs)
	}
	// 301/2 = 150.5 rounds up.
	if s.Stats.AvgLatencyMs != 151 {
		t.Errorf("avg latency = %d, want 151", s.Stats.AvgLatencyMs)
	}
}

func TestRecordTurn_RejectsProblemWithoutID(t *testing.T) {
	s := newTestSession()
	before := *s

	err := s.RecordTurn(Turn{StudentInput: "2"}, Problem{Text: "orphan"})
	if err == nil {
		t.Fatal("expected error for problem without id")
	}
	if s.Stats.TotalTurns != before.Stats.TotalTurns || len(s.RecentTurns) != len(before.RecentTurns) {
		t.Error("failed turn must leave the session untouched")
	}
}

func TestAddTaughtConcept_Idempotent(t *testing.T) {
	s := newTestSession()

	s.AddTaughtConcept("negative_numbers")
	s.AddTaughtConcept("fractions")
	s.AddTaughtConcept("negative_numbers")

	want := []string{"negative_numbers", "fractions"}
	if len(s.ConceptsTaught) != len(want) {
		t.Fatalf("concepts = %v, want %v", s.ConceptsTaught, want)
	}
	for i, c := range want {
		if s.ConceptsTaught[i] != c {
			t.Errorf("concepts[%d] = %q, want %q", i, s.ConceptsTaught[i], c)
		}
	}
}

func TestEscalationFor(t *testing.T) {
	tests := []struct {
		attempts int
		want     Level
	}{
		{0, LevelProbe},
		{1, LevelProbe},
		{2, LevelHint},
		{3, LevelTeach},
		{7, LevelTeach},
	}
	for _, tt := range tests {
		if got := EscalationFor(tt.attempts); got != tt.want {
			t.Errorf("EscalationFor(%d) = %q, want %q", tt.attempts, got, tt.want)
		}
	}
}

func TestExpired(t *testing.T) {
	s := newTestSession()

	if s.Expired(s.LastActive.Add(time.Minute)) {
		t.Error("session expired after one minute")
	}
	if !s.Expired(s.LastActive.Add(DefaultTTL + time.Second)) {
		t.Error("session not expired past its ttl")
	}
}

func TestFormatHistory(t *testing.T) {
	s := newTestSession()
	if got := s.FormatHistory(); got != "" {
		t.Fatalf("empty window formats as %q, want empty", got)
	}

	p := s.CurrentProblem.Problem
	turns := []Turn{
		{StudentInput: "what now?", TutorResponse: "Where does -3 sit on the number line?"},
		{StudentInput: "left of zero", TutorResponse: "Right! Now move 5 steps."},
	}
	for _, turn := range turns {
		if err := s.RecordTurn(turn, p); err != nil {
			t.Fatal(err)
		}
	}

	got := s.FormatHistory()
	if !strings.HasPrefix(got, "Turn 1:\nStudent: \"what now?\"\nTutor: ") {
		t.Errorf("unexpected first exchange:\n%s", got)
	}
	if !strings.Contains(got, "\n\nTurn 2:\n") {
		t.Errorf("exchanges not blank-line separated:\n%s", got)
	}
	if !strings.Contains(got, `Tutor: "Right! Now move 5 steps."`) {
		t.Errorf("tutor line missing:\n%s", got)
	}
}

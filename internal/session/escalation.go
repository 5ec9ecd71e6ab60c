package session

// Level is the tutoring escalation tier for the current problem, derived
// from how many answer attempts the problem has absorbed.
type Level string

const (
	// LevelProbe asks guiding questions without giving anything away.
	LevelProbe Level = "probe"
	// LevelHint offers a concrete nudge toward the method.
	LevelHint Level = "hint"
	// LevelTeach walks through the solution step by step.
	LevelTeach Level = "teach"
)

// EscalationFor maps an attempt count to its tier: probe through the
// first attempt, hint on the second, teach from the third on.
func EscalationFor(attempts int) Level {
	switch {
	case attempts <= 1:
		return LevelProbe
	case attempts == 2:
		return LevelHint
	default:
		return LevelTeach
	}
}

// EscalationLevel is the session's current tier. Pure read; it never
// advances state.
func (s *Session) EscalationLevel() Level {
	return EscalationFor(s.CurrentProblem.AttemptCount)
}

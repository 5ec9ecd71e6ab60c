package scaffold

import (
	"encoding/json"
	"fmt"
)

// Action is the decider's verdict for the current scaffolding exchange.
type Action string

const (
	// ActionSynthesize means enough sub-answers are in hand (or a loop
	// was detected) and they should be combined into the final answer.
	ActionSynthesize Action = "synthesize"

	// ActionContinue means more intermediate steps are needed.
	ActionContinue Action = "continue"
)

// Decision is the outcome of one progress check.
type Decision struct {
	Action Action
	Reason string

	// SubAnswers is the ordered list of correctly answered sub-questions
	// for the current problem, including the latest one.
	SubAnswers []string

	// SynthesisHint is the recombining question handed verbatim to the
	// response generator. Empty unless Action is ActionSynthesize.
	SynthesisHint string

	// Fallback is set when the host degraded to continue after a failed
	// reasoning call, so downstream consumers can tell a decided
	// continue from a defaulted one.
	Fallback bool
}

// Input is the context for one progress check.
type Input struct {
	// ProblemText and CorrectAnswer describe the main problem.
	ProblemText   string
	CorrectAnswer string

	// StudentMessage is the latest sub-answer, already validated correct.
	StudentMessage string

	// SubAnswers are the previously collected sub-answers for the
	// current problem only. Switching problems clears them.
	SubAnswers []string

	// ChatHistory is the formatted recent conversation window.
	ChatHistory string
}

// MalformedDecisionError reports that the reasoning service's response did
// not parse as a decision. Surfaced distinctly so the host can retry or
// degrade explicitly; never silently treated as continue.
type MalformedDecisionError struct {
	Content json.RawMessage
	Err     error
}

func (e *MalformedDecisionError) Error() string {
	return fmt.Sprintf("malformed scaffold decision: %v", e.Err)
}

func (e *MalformedDecisionError) Unwrap() error { return e.Err }

// ContinueFallback builds the explicit degraded decision a host may use
// after a failed reasoning call.
func ContinueFallback(subAnswers []string) *Decision {
	return &Decision{
		Action:     ActionContinue,
		Reason:     "reasoning call failed; continuing scaffolding by fallback",
		SubAnswers: subAnswers,
		Fallback:   true,
	}
}

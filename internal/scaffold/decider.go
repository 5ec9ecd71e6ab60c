// Package scaffold decides whether a multi-step problem breakdown should
// synthesize its collected sub-answers into the final answer or keep
// going. Deterministic guardrails handle the unambiguous cases; the
// injected reasoning provider judges combinability and paraphrased-question
// loops, which are semantic calls no local rule can make.
package scaffold

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/socra/internal/llm"
)

// Decider runs progress checks for active scaffolding.
type Decider struct {
	provider llm.Provider
}

// NewDecider creates a Decider using the given reasoning provider.
func NewDecider(provider llm.Provider) *Decider {
	return &Decider{provider: provider}
}

// Decide returns the synthesize/continue decision for the latest validated
// sub-answer.
//
// Guardrails run first and make no reasoning call:
//   - the student repeating an earlier sub-answer is a loop: synthesize;
//   - fewer than two distinct sub-answers collected: continue.
//
// Everything else goes to the reasoning service. A response that does not
// parse as a decision comes back as *MalformedDecisionError, never as a
// fabricated verdict.
func (d *Decider) Decide(ctx context.Context, in Input) (*Decision, error) {
	if containsAnswer(in.SubAnswers, in.StudentMessage) {
		return &Decision{
			Action:        ActionSynthesize,
			Reason:        "loop detected: student repeated an earlier sub-answer",
			SubAnswers:    in.SubAnswers,
			SynthesisHint: synthesisHint(in.ProblemText, in.SubAnswers),
		}, nil
	}

	collected := append(append([]string{}, in.SubAnswers...), in.StudentMessage)
	if len(collected) < 2 {
		return &Decision{
			Action:     ActionContinue,
			Reason:     "only one sub-answer collected so far",
			SubAnswers: collected,
		}, nil
	}

	resp, err := d.provider.Generate(ctx, llm.Request{
		Purpose: llm.PurposeScaffoldDecision,
		System:  deciderSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildDeciderUserMessage(in)},
		},
		Schema:    DecisionSchema,
		MaxTokens: 512,
	})
	if err != nil {
		return nil, fmt.Errorf("scaffold decision: %w", err)
	}

	return ParseDecision(resp.Content)
}

// decisionWire is the JSON shape the reasoning service returns.
type decisionWire struct {
	Action        string   `json:"action"`
	Reason        string   `json:"reason"`
	SubAnswers    []string `json:"sub_answers"`
	SynthesisHint string   `json:"synthesis_hint"`
}

// ParseDecision converts a raw reasoning response into a Decision.
// Anything that does not match the contract is a *MalformedDecisionError.
func ParseDecision(raw json.RawMessage) (*Decision, error) {
	var wire decisionWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, &MalformedDecisionError{Content: raw, Err: err}
	}

	action := Action(wire.Action)
	if action != ActionSynthesize && action != ActionContinue {
		return nil, &MalformedDecisionError{
			Content: raw,
			Err:     fmt.Errorf("unknown action %q", wire.Action),
		}
	}
	if wire.Reason == "" {
		return nil, &MalformedDecisionError{
			Content: raw,
			Err:     fmt.Errorf("missing reason"),
		}
	}

	return &Decision{
		Action:        action,
		Reason:        wire.Reason,
		SubAnswers:    wire.SubAnswers,
		SynthesisHint: wire.SynthesisHint,
	}, nil
}

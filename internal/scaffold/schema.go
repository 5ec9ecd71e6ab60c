package scaffold

import "github.com/abhisek/socra/internal/llm"

// DecisionSchema is the JSON shape the reasoning service must return for
// a progress check.
var DecisionSchema = &llm.Schema{
	Name:        "scaffold-decision",
	Description: "Decision whether to synthesize collected sub-answers or continue scaffolding",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"action": map[string]any{
				"type":        "string",
				"enum":        []any{"synthesize", "continue"},
				"description": "Whether to combine sub-answers now or keep scaffolding",
			},
			"reason": map[string]any{
				"type":        "string",
				"description": "Brief explanation of the decision",
			},
			"sub_answers": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "The sub-answers collected so far, in order",
			},
			"synthesis_hint": map[string]any{
				"type":        "string",
				"description": "Recombining question to ask; empty string when continuing",
			},
		},
		"required":             []any{"action", "reason", "sub_answers", "synthesis_hint"},
		"additionalProperties": false,
	},
}

// Package llm is the boundary to the external reasoning service. The core
// never builds provider-specific payloads: callers describe a request with
// an optional JSON schema, and providers return validated structured JSON.
package llm

import (
	"context"
	"encoding/json"
)

// Provider sends prompts to a reasoning backend and returns structured
// output. Implementations wrap one vendor SDK each; decorators add retry
// and audit logging.
type Provider interface {
	// Generate sends the request and returns the response. When
	// req.Schema is set the returned Content is JSON validated against
	// that schema; otherwise it is the raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Purpose labels what a request is for. Recorded in the audit trail so
// usage can be broken down per concern.
type Purpose string

const (
	PurposeScaffoldDecision Purpose = "scaffold-decision"
	PurposeResponse         Purpose = "response"
)

// Request describes one reasoning call.
type Request struct {
	// Purpose tags the request for the audit trail.
	Purpose Purpose

	// System sets the backend's role and constraints.
	System string

	// Messages is the conversation. Single-turn calls carry one user
	// message.
	Messages []Message

	// Schema, when set, is the JSON Schema the response must conform to.
	// Providers use their native structured-output mechanism and the
	// response is additionally validated locally.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls sampling randomness, 0.0–1.0. Zero means
	// deterministic, which is what a decision call wants.
	Temperature float64
}

// Message is one conversation entry.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema definition for structured output.
type Schema struct {
	// Name identifies the schema, kebab-case ("scaffold-decision").
	Name string

	// Description tells the backend what the schema represents.
	Description string

	// Definition is the JSON Schema as a map.
	Definition map[string]any
}

// Response is the backend's output.
type Response struct {
	// Content is validated JSON when the request carried a schema,
	// raw text otherwise.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage is per-request token accounting.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// resolveModel maps a friendly model alias to a vendor model ID, passing
// unknown names through so direct IDs keep working.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}

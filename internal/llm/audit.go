package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// CallRecord is one audited reasoning call.
type CallRecord struct {
	Provider     string
	Model        string
	Purpose      Purpose
	LatencyMs    int64
	InputTokens  int
	OutputTokens int
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// AuditSink receives call records. The store implements this; tests use
// an in-memory sink.
type AuditSink interface {
	RecordLLMCall(ctx context.Context, rec CallRecord) error
}

// AuditProvider is a decorator that records every reasoning call.
// Recording failures warn on stderr and never fail the call itself.
type AuditProvider struct {
	inner Provider
	sink  AuditSink
}

// WithAudit wraps a Provider with call auditing.
func WithAudit(p Provider, sink AuditSink) Provider {
	return &AuditProvider{inner: p, sink: sink}
}

func (a *AuditProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := a.inner.Generate(ctx, req)

	rec := CallRecord{
		Provider:    a.inner.ModelID(),
		Model:       a.inner.ModelID(),
		Purpose:     req.Purpose,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
		rec.Model = resp.Model
		rec.ResponseBody = string(resp.Content)
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	if sinkErr := a.sink.RecordLLMCall(ctx, rec); sinkErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record reasoning call: %v\n", sinkErr)
	}

	return resp, err
}

func (a *AuditProvider) ModelID() string {
	return a.inner.ModelID()
}

// serializeRequest builds a readable dump of the request for the audit row.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}

	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}

	return b.String()
}

package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// RequestRecord describes one model request for durable logging.
type RequestRecord struct {
	Purpose      string
	Model        string
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	Prompt       string
	Response     string
	InputTokens  int
	OutputTokens int
}

// RequestSink receives a record for every model request.
// Implemented by the SQLite request log.
type RequestSink interface {
	Append(ctx context.Context, rec RequestRecord) error
}

// LoggingProvider is a decorator that records every model request.
type LoggingProvider struct {
	inner Provider
	sink  RequestSink
}

// WithLogging wraps a Provider with request logging.
func WithLogging(p Provider, sink RequestSink) Provider {
	return &LoggingProvider{inner: p, sink: sink}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	rec := RequestRecord{
		Purpose:   purpose,
		Model:     l.inner.ModelID(),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		Prompt:    serializeRequest(req),
	}

	if resp != nil {
		rec.Model = resp.Model
		rec.Response = resp.Text
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
	}

	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	// Log the request but don't fail the call if logging fails.
	if logErr := l.sink.Append(ctx, rec); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log model request: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the model request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	return b.String()
}

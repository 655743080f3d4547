package llm

import (
	"context"
	"strings"
	"testing"
)

type memorySink struct {
	records []RequestRecord
}

func (m *memorySink) Append(_ context.Context, rec RequestRecord) error {
	m.records = append(m.records, rec)
	return nil
}

func TestWithLogging_RecordsSuccess(t *testing.T) {
	sink := &memorySink{}
	mock := NewMockProvider(MockResponse{
		Text:  "generated text",
		Usage: Usage{InputTokens: 3, OutputTokens: 5},
	})
	p := WithLogging(mock, sink)

	ctx := WithPurpose(context.Background(), "question-paper")
	resp, err := p.Generate(ctx, UserRequest("make a paper", 100, 0.7))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Text != "generated text" {
		t.Errorf("response text = %q", resp.Text)
	}

	if len(sink.records) != 1 {
		t.Fatalf("got %d records, want 1", len(sink.records))
	}
	rec := sink.records[0]
	if rec.Purpose != "question-paper" {
		t.Errorf("purpose = %q", rec.Purpose)
	}
	if !rec.Success || rec.ErrorMessage != "" {
		t.Errorf("expected success record, got %+v", rec)
	}
	if !strings.Contains(rec.Prompt, "make a paper") {
		t.Errorf("prompt not serialized: %q", rec.Prompt)
	}
	if rec.Response != "generated text" || rec.InputTokens != 3 || rec.OutputTokens != 5 {
		t.Errorf("response fields not recorded: %+v", rec)
	}
}

func TestWithLogging_RecordsFailure(t *testing.T) {
	sink := &memorySink{}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{}})
	p := WithLogging(mock, sink)

	_, err := p.Generate(context.Background(), UserRequest("prompt", 10, 0))
	if err == nil {
		t.Fatal("expected provider error to pass through")
	}

	if len(sink.records) != 1 {
		t.Fatalf("got %d records, want 1", len(sink.records))
	}
	rec := sink.records[0]
	if rec.Success || rec.ErrorMessage == "" {
		t.Errorf("expected failure record, got %+v", rec)
	}
	if rec.Purpose != "unknown" {
		t.Errorf("purpose without label = %q, want unknown", rec.Purpose)
	}
}

func TestMockProvider_FIFOAndExhaustion(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: "first"},
		MockResponse{Text: "second"},
	)

	r1, _ := mock.Generate(context.Background(), Request{})
	r2, _ := mock.Generate(context.Background(), Request{})
	if r1.Text != "first" || r2.Text != "second" {
		t.Error("responses not served in FIFO order")
	}

	if _, err := mock.Generate(context.Background(), Request{}); err == nil {
		t.Error("expected error once the queue is empty")
	}
	if mock.CallCount() != 3 {
		t.Errorf("CallCount = %d, want 3", mock.CallCount())
	}
}

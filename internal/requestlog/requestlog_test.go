package requestlog

import (
	"context"
	"path/filepath"
	"testing"

	"papergen/internal/llm"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "requests.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestAppendAndRecent(t *testing.T) {
	l := openTestLog(t)
	ctx := context.Background()

	recs := []llm.RequestRecord{
		{Purpose: "question-paper", Model: "mock", Success: true, Prompt: "p1", Response: "r1", InputTokens: 10, OutputTokens: 20},
		{Purpose: "answer-key", Model: "mock", Success: false, ErrorMessage: "boom", Prompt: "p2"},
	}
	for _, rec := range recs {
		if err := l.Append(ctx, rec); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	entries, err := l.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	// Newest first.
	if entries[0].Purpose != "answer-key" || entries[0].Success {
		t.Errorf("unexpected newest entry: %+v", entries[0])
	}
	if entries[0].ErrorMessage != "boom" {
		t.Errorf("error message not persisted: %+v", entries[0])
	}
	if entries[1].InputTokens != 10 || entries[1].OutputTokens != 20 {
		t.Errorf("token counts not persisted: %+v", entries[1])
	}
}

func TestRecent_RespectsLimit(t *testing.T) {
	l := openTestLog(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := l.Append(ctx, llm.RequestRecord{Purpose: "p", Model: "m", Prompt: "x", Success: true}); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := l.Recent(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("got %d entries, want 3", len(entries))
	}
}

func TestTokenTotals(t *testing.T) {
	l := openTestLog(t)
	ctx := context.Background()

	in, out, err := l.TokenTotals(ctx)
	if err != nil || in != 0 || out != 0 {
		t.Fatalf("empty totals = %d, %d, %v", in, out, err)
	}

	l.Append(ctx, llm.RequestRecord{Purpose: "p", Model: "m", Prompt: "x", Success: true, InputTokens: 5, OutputTokens: 7})
	l.Append(ctx, llm.RequestRecord{Purpose: "p", Model: "m", Prompt: "x", Success: true, InputTokens: 3, OutputTokens: 4})

	in, out, err = l.TokenTotals(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if in != 8 || out != 11 {
		t.Errorf("totals = %d, %d; want 8, 11", in, out)
	}
}

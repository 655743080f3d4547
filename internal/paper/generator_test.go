package paper

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"papergen/internal/bank"
	"papergen/internal/llm"
	"papergen/internal/ratelimit"
)

func newTestGenerator(t *testing.T, provider llm.Provider) (*Generator, *bank.Bank, *ratelimit.Limiter) {
	t.Helper()
	qbank := bank.Open(filepath.Join(t.TempDir(), "question_bank.json"))
	limiter := ratelimit.New(0)
	g := New(provider, limiter, qbank, DefaultConfig())
	g.SetSleep(func(time.Duration) {})
	return g, qbank, limiter
}

func TestGenerate_ProducesBannersAndCallsTwice(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "Q1. What is a scheduler?"},
		llm.MockResponse{Text: "Q1. The component that picks the next process."},
	)
	g, _, _ := newTestGenerator(t, mock)

	res, err := g.Generate(context.Background(), sampleRequirements())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(res.Combined, "Question Paper") {
		t.Error("missing Question Paper banner")
	}
	if !strings.Contains(res.Combined, "Answer Key") {
		t.Error("missing Answer Key banner")
	}
	if !strings.Contains(res.Combined, strings.Repeat("=", 50)) {
		t.Error("missing separator line")
	}
	if mock.CallCount() != 2 {
		t.Errorf("expected 2 model calls, got %d", mock.CallCount())
	}
	if res.Questions != "Q1. What is a scheduler?" {
		t.Errorf("unexpected questions text: %q", res.Questions)
	}
}

func TestGenerate_ExactMatchCacheSkipsModel(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "questions"},
		llm.MockResponse{Text: "answers"},
	)
	g, _, _ := newTestGenerator(t, mock)
	req := sampleRequirements()

	first, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	// Same requirements again: served from cache, queue stays empty.
	second, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("cached Generate failed: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("expected no further model calls, got %d total", mock.CallCount())
	}
	if second.Combined != first.Combined {
		t.Error("cached blob differs from original")
	}
	if second.Questions != first.Questions || second.Answers != first.Answers {
		t.Error("cached result lost its question/answer split")
	}
}

func TestGenerate_ProviderFailureSurfaced(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
	)
	g, _, _ := newTestGenerator(t, mock)

	_, err := g.Generate(context.Background(), sampleRequirements())
	if err == nil {
		t.Fatal("expected error from failing provider")
	}
	if !strings.Contains(err.Error(), "generating questions") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGenerate_AnswerFailureSurfaced(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "questions"},
		llm.MockResponse{Err: &llm.ErrRateLimit{}},
	)
	g, _, _ := newTestGenerator(t, mock)

	_, err := g.Generate(context.Background(), sampleRequirements())
	if err == nil || !strings.Contains(err.Error(), "generating answers") {
		t.Errorf("expected answer-stage error, got %v", err)
	}
}

func TestGenerate_NilProviderIsPermanent(t *testing.T) {
	g, _, _ := newTestGenerator(t, nil)

	for i := 0; i < 2; i++ {
		_, err := g.Generate(context.Background(), sampleRequirements())
		if err != ErrNoProvider {
			t.Fatalf("call %d: expected ErrNoProvider, got %v", i+1, err)
		}
	}
}

func TestGenerate_BacksOffOnceWhenWindowFull(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "questions"},
		llm.MockResponse{Text: "answers"},
	)
	qbank := bank.Open(filepath.Join(t.TempDir(), "bank.json"))
	limiter := ratelimit.New(1)
	limiter.LogCall() // window already full

	var slept []time.Duration
	g := New(mock, limiter, qbank, DefaultConfig())
	g.SetSleep(func(d time.Duration) { slept = append(slept, d) })

	if _, err := g.Generate(context.Background(), sampleRequirements()); err != nil {
		t.Fatal(err)
	}

	if len(slept) == 0 {
		t.Fatal("expected a backoff sleep with the window full")
	}
	if slept[0] != ratelimit.Backoff {
		t.Errorf("backoff = %v, want %v", slept[0], ratelimit.Backoff)
	}
}

func TestGenerateSection_ZeroCountSkipsModel(t *testing.T) {
	mock := llm.NewMockProvider()
	g, _, _ := newTestGenerator(t, mock)

	req := sampleRequirements()
	req.NumMCQ, req.Num3Mark, req.Num5Mark = 0, 0, 0

	for _, cat := range bank.Categories() {
		got, err := g.GenerateSection(context.Background(), req, cat)
		if err != nil {
			t.Fatalf("%s: %v", cat, err)
		}
		if len(got) != 0 {
			t.Errorf("%s: expected empty result, got %v", cat, got)
		}
	}
	if mock.CallCount() != 0 {
		t.Errorf("expected no model calls, got %d", mock.CallCount())
	}
}

func TestGenerateSection_BankBypassesModel(t *testing.T) {
	mock := llm.NewMockProvider()
	g, qbank, _ := newTestGenerator(t, mock)
	req := sampleRequirements()
	req.NumMCQ = 2

	stored := []string{"Q1. A?", "Q2. B?", "Q3. C?"}
	if err := qbank.Add(req.Subject, req.Topic, bank.CategoryMCQ, stored); err != nil {
		t.Fatal(err)
	}

	got, err := g.GenerateSection(context.Background(), req, bank.CategoryMCQ)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "Q1. A?" || got[1] != "Q2. B?" {
		t.Errorf("expected first 2 stored questions verbatim, got %v", got)
	}
	if mock.CallCount() != 0 {
		t.Error("expected the bank to bypass the model entirely")
	}
}

func TestGenerateSection_FreshGenerationFillsBank(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "Q1. First?\n\nQ2. Second?\n\nQ3. Third?"},
	)
	g, qbank, _ := newTestGenerator(t, mock)
	req := sampleRequirements()
	req.NumMCQ = 2

	got, err := g.GenerateSection(context.Background(), req, bank.CategoryMCQ)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Errorf("expected all 3 parsed questions, got %v", got)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected exactly one model call, got %d", mock.CallCount())
	}

	// Everything parsed went into the bank.
	if n := qbank.Count(req.Subject, req.Topic, bank.CategoryMCQ); n != 3 {
		t.Errorf("bank holds %d questions, want 3", n)
	}

	// A rerun is now satisfied from the bank.
	again, err := g.GenerateSection(context.Background(), req, bank.CategoryMCQ)
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != 2 || mock.CallCount() != 1 {
		t.Error("expected rerun to come from the bank without a model call")
	}
}

func TestGenerateSectionAnswers_NumbersAnswers(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "b) because of locality"},
		llm.MockResponse{Text: "a) by definition"},
	)
	g, _, _ := newTestGenerator(t, mock)

	got, err := g.GenerateSectionAnswers(context.Background(),
		[]string{"Q about caches", "Q about paging"}, bank.CategoryMCQ)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Q1. b) because of locality") {
		t.Errorf("missing first numbered answer in %q", got)
	}
	if !strings.Contains(got, "Q2. a) by definition") {
		t.Errorf("missing second numbered answer in %q", got)
	}
	if mock.CallCount() != 2 {
		t.Errorf("expected one call per question, got %d", mock.CallCount())
	}
}

func TestGenerateSectionAnswers_UsesMCQPromptOnlyForMCQ(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "answer"},
	)
	g, _, _ := newTestGenerator(t, mock)

	if _, err := g.GenerateSectionAnswers(context.Background(),
		[]string{"Explain deadlocks."}, bank.CategoryDescriptive3); err != nil {
		t.Fatal(err)
	}

	prompt := mock.Calls[0].Messages[0].Content
	if strings.Contains(prompt, "option letter") {
		t.Error("descriptive question got the MCQ answer prompt")
	}
	if !strings.Contains(prompt, "bullet form") {
		t.Error("descriptive prompt missing bullet rule")
	}
}

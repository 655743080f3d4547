package paper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"papergen/internal/bank"
	"papergen/internal/llm"
	"papergen/internal/ratelimit"
)

const separatorWidth = 50

// ErrNoProvider reports that the model provider never initialized.
// This is permanent for the process lifetime: every call fails identically
// until the operator fixes the credential and restarts.
var ErrNoProvider = errors.New("model provider is not configured")

// Config controls generation parameters.
type Config struct {
	// MaxTokens is the token budget for a full paper or answer key.
	MaxTokens int

	// SectionMaxTokens is the budget for single-section generation.
	SectionMaxTokens int

	// Temperature controls model output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the recommended generation parameters.
func DefaultConfig() Config {
	return Config{
		MaxTokens:        4096,
		SectionMaxTokens: 2048,
		Temperature:      0.7,
	}
}

// Result is the outcome of one successful full-paper generation.
type Result struct {
	// Questions is the raw question paper text.
	Questions string

	// Answers is the raw answer key text.
	Answers string

	// Combined is the labeled blob: "Question Paper" banner, questions,
	// "Answer Key" banner, answers. This is what gets cached and stored.
	Combined string
}

// Generator composes the rate limiter, question bank, prompt builders and
// model provider into the generation operations. Provider may be nil when
// credentials failed at startup; every generation then fails with
// ErrNoProvider.
type Generator struct {
	provider llm.Provider
	limiter  *ratelimit.Limiter
	bank     *bank.Bank
	cfg      Config
	sleep    func(time.Duration)
}

// New creates a Generator.
func New(provider llm.Provider, limiter *ratelimit.Limiter, qbank *bank.Bank, cfg Config) *Generator {
	return &Generator{
		provider: provider,
		limiter:  limiter,
		bank:     qbank,
		cfg:      cfg,
		sleep:    time.Sleep,
	}
}

// SetSleep replaces the backoff sleep. Test hook.
func (g *Generator) SetSleep(fn func(time.Duration)) { g.sleep = fn }

// Generate produces a full question paper and answer key for req.
//
// The response cache is exact-match on the full requirements field set:
// a repeated identical request returns the prior blob without touching
// the model. When the rolling rate limit is exhausted the generator waits
// one fixed backoff and proceeds; there is no retry loop. Any provider
// failure terminates this attempt and is returned as-is.
func (g *Generator) Generate(ctx context.Context, req Requirements) (Result, error) {
	if g.provider == nil {
		return Result{}, ErrNoProvider
	}

	key := req.CacheKey()
	if blob, ok := g.limiter.Cached(key); ok {
		return splitCombined(blob), nil
	}

	g.waitForSlot()

	questionsPrompt := BuildQuestionPrompt(req)
	qResp, err := g.provider.Generate(llm.WithPurpose(ctx, "question-paper"),
		llm.UserRequest(questionsPrompt, g.cfg.MaxTokens, g.cfg.Temperature))
	g.limiter.LogCall()
	if err != nil {
		return Result{}, fmt.Errorf("generating questions: %w", err)
	}
	questions := strings.TrimSpace(qResp.Text)

	answersPrompt := BuildAnswerPrompt(questions)
	aResp, err := g.provider.Generate(llm.WithPurpose(ctx, "answer-key"),
		llm.UserRequest(answersPrompt, g.cfg.MaxTokens, g.cfg.Temperature))
	g.limiter.LogCall()
	if err != nil {
		return Result{}, fmt.Errorf("generating answers: %w", err)
	}
	answers := strings.TrimSpace(aResp.Text)

	res := Result{
		Questions: questions,
		Answers:   answers,
		Combined:  combine(questions, answers),
	}
	g.limiter.Cache(key, res.Combined)

	return res, nil
}

// GenerateSection produces the questions for one category of req.
//
// The question bank is the dominant cache here: with enough stored
// questions for (subject, topic, category) the model is bypassed entirely
// and the first N stored questions are returned verbatim. Freshly
// generated questions are appended to the bank before returning.
func (g *Generator) GenerateSection(ctx context.Context, req Requirements, cat bank.Category) ([]string, error) {
	n := req.CountFor(cat)
	if n == 0 {
		return nil, nil
	}

	stored := g.bank.Get(req.Subject, req.Topic, cat)
	if len(stored) >= n {
		return stored[:n:n], nil
	}

	if g.provider == nil {
		return nil, ErrNoProvider
	}

	prompt := BuildQuestionPrompt(req)
	if cached, ok := g.limiter.Cached(prompt); ok {
		return splitQuestions(cached), nil
	}

	g.waitForSlot()

	resp, err := g.provider.Generate(llm.WithPurpose(ctx, "section-"+string(cat)),
		llm.UserRequest(prompt, g.cfg.SectionMaxTokens, g.cfg.Temperature))
	g.limiter.LogCall()
	if err != nil {
		return nil, fmt.Errorf("generating %s questions: %w", cat, err)
	}

	questions := splitQuestions(resp.Text)
	g.limiter.Cache(prompt, resp.Text)

	if err := g.bank.Add(req.Subject, req.Topic, cat, questions); err != nil {
		// Losing the bank write only costs future model calls.
		fmt.Fprintf(os.Stderr, "warning: question bank write failed: %v\n", err)
	}

	return questions, nil
}

// GenerateSectionAnswers produces one answer per question, each through
// its own model call, numbered Q1., Q2., ... in input order.
func (g *Generator) GenerateSectionAnswers(ctx context.Context, questions []string, cat bank.Category) (string, error) {
	if g.provider == nil {
		return "", ErrNoProvider
	}

	var answers []string
	for i, q := range questions {
		var prompt string
		if cat == bank.CategoryMCQ {
			prompt = BuildMCQAnswerPrompt(q)
		} else {
			prompt = BuildDescriptiveAnswerPrompt(q)
		}

		g.waitForSlot()
		resp, err := g.provider.Generate(llm.WithPurpose(ctx, "section-answer"),
			llm.UserRequest(prompt, g.cfg.SectionMaxTokens, g.cfg.Temperature))
		g.limiter.LogCall()
		if err != nil {
			return "", fmt.Errorf("answering question %d: %w", i+1, err)
		}

		answers = append(answers, fmt.Sprintf("Q%d. %s", i+1, strings.TrimSpace(resp.Text)))
	}

	return strings.Join(answers, "\n\n"), nil
}

// waitForSlot applies the single fixed backoff when the rolling window is
// full. One wait, no loop: the limiter is a heuristic throttle.
func (g *Generator) waitForSlot() {
	if !g.limiter.CanCall() {
		g.sleep(ratelimit.Backoff)
	}
}

// combine assembles the labeled output blob.
func combine(questions, answers string) string {
	sep := strings.Repeat("=", separatorWidth)
	return "Question Paper\n" + sep + "\n\n" + questions +
		"\n\nAnswer Key\n" + sep + "\n\n" + answers
}

// splitCombined recovers Questions and Answers from a cached blob.
// Best effort: a blob that lost its banners comes back whole in Questions.
func splitCombined(blob string) Result {
	res := Result{Combined: blob}
	sep := strings.Repeat("=", separatorWidth)

	qMarker := "Question Paper\n" + sep + "\n\n"
	aMarker := "\n\nAnswer Key\n" + sep + "\n\n"

	rest, ok := strings.CutPrefix(blob, qMarker)
	if !ok {
		res.Questions = blob
		return res
	}
	if q, a, found := strings.Cut(rest, aMarker); found {
		res.Questions = q
		res.Answers = a
	} else {
		res.Questions = rest
	}
	return res
}

// splitQuestions breaks a model response into individual questions on
// blank lines. Free text in, free text out: no structural guarantee.
func splitQuestions(text string) []string {
	parts := strings.Split(strings.TrimSpace(text), "\n\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Package paper turns a structured question-paper request into generated
// question and answer text through a model provider, with a rolling rate
// limit, an exact-match response cache, and the persistent question bank
// in front of the model.
package paper

import (
	"errors"
	"fmt"

	"papergen/internal/bank"
)

// Difficulty is the requested difficulty level of the paper.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Requirements is the immutable specification of one question-paper
// request. Construct it fully and treat it as a value afterwards.
type Requirements struct {
	Syllabus   string
	Subject    string
	Topic      string
	NumMCQ     int
	Num3Mark   int
	Num5Mark   int
	Difficulty Difficulty
	// WithAnswers selects whether an answer key is generated and shipped
	// alongside the paper.
	WithAnswers bool
}

// TotalMarks derives the paper total: MCQs carry 1 mark, short answers 3,
// long answers 5.
func (r Requirements) TotalMarks() int {
	return r.NumMCQ + r.Num3Mark*3 + r.Num5Mark*5
}

// CountFor returns the requested question count for a category.
func (r Requirements) CountFor(cat bank.Category) int {
	switch cat {
	case bank.CategoryMCQ:
		return r.NumMCQ
	case bank.CategoryDescriptive3:
		return r.Num3Mark
	case bank.CategoryDescriptive5:
		return r.Num5Mark
	}
	return 0
}

// Validate reports the first problem that must block generation before
// any external call is attempted.
func (r Requirements) Validate() error {
	if r.Syllabus == "" {
		return errors.New("syllabus text is required")
	}
	if r.NumMCQ < 0 || r.Num3Mark < 0 || r.Num5Mark < 0 {
		return errors.New("question counts must not be negative")
	}
	if r.NumMCQ == 0 && r.Num3Mark == 0 && r.Num5Mark == 0 {
		return errors.New("select at least one question type")
	}
	if r.Difficulty != "" && !r.Difficulty.Valid() {
		return fmt.Errorf("unknown difficulty %q", r.Difficulty)
	}
	return nil
}

// CacheKey renders the full field set deterministically for use as an
// exact-match cache key. Equal Requirements always produce equal keys.
func (r Requirements) CacheKey() string {
	return fmt.Sprintf("subject=%s|topic=%s|difficulty=%s|mcq=%d|3mark=%d|5mark=%d|answers=%t|syllabus=%s",
		r.Subject, r.Topic, r.Difficulty, r.NumMCQ, r.Num3Mark, r.Num5Mark, r.WithAnswers, r.Syllabus)
}

// Package template persists named generation presets so common paper
// shapes (mid-term, final) don't have to be retyped.
package template

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"papergen/internal/fsutil"
)

// QuestionTypes flags which kinds of questions a preset includes.
type QuestionTypes struct {
	MCQ         bool `json:"MCQ"`
	Descriptive bool `json:"Descriptive"`
}

// Template is one named generation preset.
type Template struct {
	QuestionTypes  QuestionTypes `json:"question_types"`
	NumMCQ         int           `json:"num_mcq"`
	Num3Marks      int           `json:"num_3_marks"`
	Num5Marks      int           `json:"num_5_marks"`
	TotalMarks     int           `json:"total_marks"`
	Difficulty     string        `json:"selected_option"`
	IncludeAnswers bool          `json:"include_answers"`
}

// Defaults returns the seed presets written on first use.
func Defaults() map[string]Template {
	return map[string]Template{
		"Mid Exam": {
			QuestionTypes:  QuestionTypes{MCQ: true, Descriptive: true},
			NumMCQ:         5,
			Num3Marks:      6,
			Num5Marks:      5,
			TotalMarks:     48,
			Difficulty:     "Easy",
			IncludeAnswers: true,
		},
		"Final Exam": {
			QuestionTypes:  QuestionTypes{MCQ: true, Descriptive: true},
			NumMCQ:         10,
			Num3Marks:      12,
			Num5Marks:      10,
			TotalMarks:     96,
			Difficulty:     "Hard",
			IncludeAnswers: true,
		},
	}
}

// Store manages the templates file.
type Store struct {
	path string
}

// NewStore creates a Store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads all templates. An absent file is seeded with Defaults and
// persisted; an unparseable file falls back to Defaults without
// persisting (the broken file may still hold operator edits worth
// recovering by hand).
func (s *Store) Load() map[string]Template {
	data, err := os.ReadFile(s.path)
	if err != nil {
		defaults := Defaults()
		if err := s.Save(defaults); err != nil {
			fmt.Fprintf(os.Stderr, "warning: seeding templates failed: %v\n", err)
		}
		return defaults
	}

	var templates map[string]Template
	if err := json.Unmarshal(data, &templates); err != nil {
		fmt.Fprintf(os.Stderr, "warning: templates %s unreadable, using defaults: %v\n", s.path, err)
		return Defaults()
	}
	return templates
}

// Save persists the full template set.
func (s *Store) Save(templates map[string]Template) error {
	data, err := json.MarshalIndent(templates, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal templates: %w", err)
	}
	return fsutil.WriteAtomic(s.path, data)
}

// Add stores or replaces one named template.
func (s *Store) Add(name string, tpl Template) error {
	templates := s.Load()
	templates[name] = tpl
	return s.Save(templates)
}

// Delete removes a named template. Returns false when absent.
func (s *Store) Delete(name string) (bool, error) {
	templates := s.Load()
	if _, ok := templates[name]; !ok {
		return false, nil
	}
	delete(templates, name)
	return true, s.Save(templates)
}

// Names returns all template names sorted alphabetically.
func (s *Store) Names() []string {
	templates := s.Load()
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Package bank persists previously generated question text, organized by
// subject, topic, and question category. It is the first-level reuse cache
// for section generation: when enough questions are stored for a key, the
// model is not invoked at all.
package bank

import (
	"encoding/json"
	"fmt"
	"os"

	"papergen/internal/fsutil"
)

// Category partitions questions by type. It doubles as a storage key, so
// the literal values are part of the on-disk format.
type Category string

const (
	CategoryMCQ          Category = "MCQ"
	CategoryDescriptive3 Category = "descriptive_3"
	CategoryDescriptive5 Category = "descriptive_5"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryMCQ, CategoryDescriptive3, CategoryDescriptive5:
		return true
	}
	return false
}

// Categories lists all known categories in paper order.
func Categories() []Category {
	return []Category{CategoryMCQ, CategoryDescriptive3, CategoryDescriptive5}
}

// entries is the on-disk shape: subject → topic → category → questions.
type entries map[string]map[string]map[Category][]string

// Bank is a persistent question store backed by a single JSON file.
// The bank is the sole writer of its file. Every mutation rewrites the
// whole file synchronously via temp-file-and-rename, so a crash mid-write
// leaves the previous contents intact. Concurrent writers from separate
// processes are not coordinated: last writer wins.
type Bank struct {
	path    string
	entries entries
}

// Open loads the bank at path. A missing or unparseable file yields an
// empty bank, never an error: losing the cache only costs model calls.
func Open(path string) *Bank {
	b := &Bank{path: path, entries: make(entries)}

	data, err := os.ReadFile(path)
	if err != nil {
		return b
	}
	if err := json.Unmarshal(data, &b.entries); err != nil {
		fmt.Fprintf(os.Stderr, "warning: question bank %s unreadable, starting empty: %v\n", path, err)
		b.entries = make(entries)
	}
	return b
}

// Get returns the stored questions for (subject, topic, category).
// Absent keys yield an empty slice; Get never fails.
func (b *Bank) Get(subject, topic string, cat Category) []string {
	return b.entries[subject][topic][cat]
}

// Add appends questions under (subject, topic, category), creating
// intermediate levels as needed, and persists the full bank immediately.
// Appending never removes or reorders existing entries.
func (b *Bank) Add(subject, topic string, cat Category, questions []string) error {
	if len(questions) == 0 {
		return nil
	}
	if !cat.Valid() {
		return fmt.Errorf("unknown question category %q", cat)
	}

	topics, ok := b.entries[subject]
	if !ok {
		topics = make(map[string]map[Category][]string)
		b.entries[subject] = topics
	}
	cats, ok := topics[topic]
	if !ok {
		cats = make(map[Category][]string)
		topics[topic] = cats
	}
	cats[cat] = append(cats[cat], questions...)

	return b.save()
}

// Subjects returns all subjects with stored questions.
func (b *Bank) Subjects() []string {
	out := make([]string, 0, len(b.entries))
	for s := range b.entries {
		out = append(out, s)
	}
	return out
}

// Topics returns all topics stored under subject.
func (b *Bank) Topics(subject string) []string {
	topics := b.entries[subject]
	out := make([]string, 0, len(topics))
	for t := range topics {
		out = append(out, t)
	}
	return out
}

// Count returns the number of stored questions for a key.
func (b *Bank) Count(subject, topic string, cat Category) int {
	return len(b.Get(subject, topic, cat))
}

func (b *Bank) save() error {
	data, err := json.MarshalIndent(b.entries, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal question bank: %w", err)
	}
	return fsutil.WriteAtomic(b.path, data)
}

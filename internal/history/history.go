// Package history keeps an append-only log of past generations in a
// single JSON file, with query, search, delete and statistics operations.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"papergen/internal/fsutil"
)

const timestampLayout = "2006-01-02 15:04:05"

// Metadata describes the request that produced a record.
type Metadata struct {
	Subject    string `json:"subject"`
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	TotalMarks int    `json:"total_marks"`
	NumMCQ     int    `json:"num_mcq"`
	Num3Mark   int    `json:"num_3_marks"`
	Num5Mark   int    `json:"num_5_marks"`
}

// Record is one persisted generation. Records are created once and never
// mutated; they can only be deleted by id.
type Record struct {
	ID        int      `json:"id"`
	Timestamp string   `json:"timestamp"`
	Questions string   `json:"questions"`
	Answers   string   `json:"answers,omitempty"`
	Metadata  Metadata `json:"metadata"`
}

// Statistics summarizes the whole store, computed by full scan.
type Statistics struct {
	TotalPapers  int
	BySubject    map[string]int
	ByDifficulty map[string]int
	AverageMarks float64
}

// Store is the paper history. It owns its backing file exclusively and
// rewrites it in full, atomically, on every mutation. Two processes
// writing the same file race with last-writer-wins; this is a documented
// limitation of the single-operator tool, not a guarantee.
type Store struct {
	path    string
	records []Record
	now     func() time.Time
}

// Open loads the history at path. A missing or unreadable file yields an
// empty store, never an error.
func Open(path string) *Store {
	s := &Store{path: path, now: time.Now}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, &s.records); err != nil {
		fmt.Fprintf(os.Stderr, "warning: paper history %s unreadable, starting empty: %v\n", path, err)
		s.records = nil
	}
	return s
}

// SetClock replaces the time source. Test hook.
func (s *Store) SetClock(now func() time.Time) { s.now = now }

// Append stores a new record and persists immediately. Ids are assigned
// sequentially from 1 and never reused, even after deletes.
func (s *Store) Append(questions, answers string, meta Metadata) (int, error) {
	rec := Record{
		ID:        s.nextID(),
		Timestamp: s.now().Format(timestampLayout),
		Questions: questions,
		Answers:   answers,
		Metadata:  meta,
	}
	s.records = append(s.records, rec)
	if err := s.save(); err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (s *Store) nextID() int {
	max := 0
	for _, rec := range s.records {
		if rec.ID > max {
			max = rec.ID
		}
	}
	return max + 1
}

// Get returns the record with the given id.
func (s *Store) Get(id int) (Record, bool) {
	for _, rec := range s.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return Record{}, false
}

// List returns records sorted by timestamp descending. limit <= 0 means
// all records.
func (s *Store) List(limit int) []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Delete removes the record with the given id and persists. Returns
// false when no such record exists.
func (s *Store) Delete(id int) bool {
	for i, rec := range s.records {
		if rec.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			if err := s.save(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: persisting history delete failed: %v\n", err)
			}
			return true
		}
	}
	return false
}

// Search returns records whose subject or topic contains query,
// case-insensitively.
func (s *Store) Search(query string) []Record {
	query = strings.ToLower(query)
	var out []Record
	for _, rec := range s.records {
		if strings.Contains(strings.ToLower(rec.Metadata.Subject), query) ||
			strings.Contains(strings.ToLower(rec.Metadata.Topic), query) {
			out = append(out, rec)
		}
	}
	return out
}

// Len returns the number of stored records.
func (s *Store) Len() int { return len(s.records) }

// Statistics computes store-wide aggregates with a full scan.
func (s *Store) Statistics() Statistics {
	stats := Statistics{
		TotalPapers:  len(s.records),
		BySubject:    make(map[string]int),
		ByDifficulty: make(map[string]int),
	}

	total := 0
	for _, rec := range s.records {
		stats.BySubject[orUnknown(rec.Metadata.Subject)]++
		stats.ByDifficulty[orUnknown(rec.Metadata.Difficulty)]++
		total += rec.Metadata.TotalMarks
	}
	if len(s.records) > 0 {
		stats.AverageMarks = float64(total) / float64(len(s.records))
	}
	return stats
}

func orUnknown(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}

func (s *Store) save() error {
	records := s.records
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	return fsutil.WriteAtomic(s.path, data)
}

// Package requestlog keeps a durable record of every model request in a
// local SQLite database. It exists for cost and quality audits: what was
// asked, what came back, how long it took, what it cost in tokens.
package requestlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"papergen/internal/llm"
)

const schema = `CREATE TABLE IF NOT EXISTS llm_requests (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	purpose TEXT NOT NULL,
	model TEXT NOT NULL,
	latency_ms INTEGER NOT NULL,
	success INTEGER NOT NULL,
	error TEXT,
	prompt TEXT NOT NULL,
	response TEXT,
	input_tokens INTEGER NOT NULL DEFAULT 0,
	output_tokens INTEGER NOT NULL DEFAULT 0
)`

// Entry is one logged model request.
type Entry struct {
	ID           int64
	Timestamp    time.Time
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

// Log is the SQLite-backed request log. It implements llm.RequestSink.
type Log struct {
	db *sql.DB
}

// Open opens (creating if needed) the request log at path.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open request log: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create request log schema: %w", err)
	}
	return &Log{db: db}, nil
}

// Close releases the database handle.
func (l *Log) Close() error { return l.db.Close() }

// Append records one model request.
func (l *Log) Append(ctx context.Context, rec llm.RequestRecord) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO llm_requests
		(timestamp, purpose, model, latency_ms, success, error, prompt, response, input_tokens, output_tokens)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().Format(time.RFC3339),
		rec.Purpose,
		rec.Model,
		rec.LatencyMs,
		rec.Success,
		rec.ErrorMessage,
		rec.Prompt,
		rec.Response,
		rec.InputTokens,
		rec.OutputTokens,
	)
	if err != nil {
		return fmt.Errorf("append request log: %w", err)
	}
	return nil
}

// Recent returns the latest n entries, newest first. A non-positive n
// returns everything.
func (l *Log) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		n = -1
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, timestamp, purpose, model, latency_ms, success,
		        COALESCE(error, ''), prompt, COALESCE(response, ''),
		        input_tokens, output_tokens
		 FROM llm_requests ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query request log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.ID, &ts, &e.Purpose, &e.Model, &e.LatencyMs, &e.Success,
			&e.ErrorMessage, &e.Prompt, &e.Response, &e.InputTokens, &e.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan request log row: %w", err)
		}
		e.Timestamp, _ = time.Parse(time.RFC3339, ts)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// TokenTotals sums input and output tokens across all logged requests.
func (l *Log) TokenTotals(ctx context.Context) (input, output int, err error) {
	row := l.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0) FROM llm_requests`)
	if err := row.Scan(&input, &output); err != nil {
		return 0, 0, fmt.Errorf("sum request log tokens: %w", err)
	}
	return input, output, nil
}

package feedback

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/platefinder/backend/internal/domain"
)

// Store persists recommendation feedback in sqlite.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the feedback database at path
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feedback database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS feedback (
		id TEXT PRIMARY KEY,
		satisfaction INTEGER NOT NULL,
		relevant INTEGER NOT NULL,
		criteria TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_feedback_created ON feedback(created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize feedback schema: %w", err)
	}
	return nil
}

// Save inserts one feedback record. The ID and timestamp are assigned
// here when the caller left them empty.
func (s *Store) Save(ctx context.Context, fb *domain.Feedback) error {
	if fb == nil || fb.Satisfaction < 1 || fb.Satisfaction > 5 {
		return domain.ErrInvalidRequest
	}

	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now()
	}

	criteria, err := json.Marshal(fb.Criteria)
	if err != nil {
		return fmt.Errorf("failed to encode criteria: %w", err)
	}

	relevant := 0
	if fb.Relevant {
		relevant = 1
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO feedback (id, satisfaction, relevant, criteria, created_at) VALUES (?, ?, ?, ?, ?)`,
		fb.ID, fb.Satisfaction, relevant, string(criteria), fb.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrFeedbackUnavailable, err)
	}
	return nil
}

// Recent returns the most recent feedback entries, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]domain.Feedback, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, satisfaction, relevant, criteria, created_at FROM feedback ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedbackUnavailable, err)
	}
	defer rows.Close()

	var out []domain.Feedback
	for rows.Next() {
		var fb domain.Feedback
		var relevant int
		var criteria string
		var createdAt int64
		if err := rows.Scan(&fb.ID, &fb.Satisfaction, &relevant, &criteria, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		fb.Relevant = relevant != 0
		fb.CreatedAt = time.Unix(createdAt, 0)
		if err := json.Unmarshal([]byte(criteria), &fb.Criteria); err != nil {
			return nil, fmt.Errorf("failed to decode criteria: %w", err)
		}
		out = append(out, fb)
	}
	return out, rows.Err()
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

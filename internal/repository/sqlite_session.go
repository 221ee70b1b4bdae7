package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/focus/internal/db"
	"github.com/alexanderramin/focus/internal/domain"
)

// SQLiteFocusSessionRepo implements FocusSessionRepo using a SQLite database.
type SQLiteFocusSessionRepo struct {
	db db.DBTX
}

// NewSQLiteFocusSessionRepo creates a new SQLiteFocusSessionRepo.
func NewSQLiteFocusSessionRepo(conn db.DBTX) *SQLiteFocusSessionRepo {
	return &SQLiteFocusSessionRepo{db: conn}
}

func (r *SQLiteFocusSessionRepo) Create(ctx context.Context, s *domain.FocusSession) error {
	query := `INSERT INTO focus_sessions (id, completed_at, created_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.CompletedAt.UTC().Format(time.RFC3339),
		s.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting focus session: %w", err)
	}
	return nil
}

func (r *SQLiteFocusSessionRepo) GetByID(ctx context.Context, id string) (*domain.FocusSession, error) {
	query := `SELECT id, completed_at, created_at FROM focus_sessions WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var s domain.FocusSession
	var completedAtStr, createdAtStr string
	if err := row.Scan(&s.ID, &completedAtStr, &createdAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("focus session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning focus session: %w", err)
	}
	return r.populateSession(&s, completedAtStr, createdAtStr)
}

// ListSince returns sessions completed at or after since, newest first.
func (r *SQLiteFocusSessionRepo) ListSince(ctx context.Context, since time.Time) ([]*domain.FocusSession, error) {
	query := `SELECT id, completed_at, created_at FROM focus_sessions
		WHERE completed_at >= ?
		ORDER BY completed_at DESC`
	rows, err := r.db.QueryContext(ctx, query, since.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing focus sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.FocusSession
	for rows.Next() {
		var s domain.FocusSession
		var completedAtStr, createdAtStr string
		if err := rows.Scan(&s.ID, &completedAtStr, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning focus session row: %w", err)
		}
		session, parseErr := r.populateSession(&s, completedAtStr, createdAtStr)
		if parseErr != nil {
			return nil, parseErr
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating focus sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLiteFocusSessionRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM focus_sessions WHERE completed_at >= ?`,
		since.UTC().Format(time.RFC3339),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting focus sessions: %w", err)
	}
	return n, nil
}

func (r *SQLiteFocusSessionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM focus_sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting focus session: %w", err)
	}
	return nil
}

// populateSession fills in parsed fields on a FocusSession after scanning raw strings.
func (r *SQLiteFocusSessionRepo) populateSession(s *domain.FocusSession, completedAtStr, createdAtStr string) (*domain.FocusSession, error) {
	var parseErr error
	s.CompletedAt, parseErr = time.Parse(time.RFC3339, completedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing completed_at: %w", parseErr)
	}
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	return s, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const taskColumns = "id, title, description, completed, priority, recurrence, category, created_at, completed_at, due_at, remind_at"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Insert(ctx context.Context, in Task) error {
	// Upsert by primary key: a re-insert of an existing id is a full-record
	// replace, last write wins.
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.Description, boolInt(in.Completed), in.Priority, in.Recurrence, in.Category,
		millis(in.CreatedAt), nullMillis(in.CompletedAt), nullMillis(in.DueAt), nullMillis(in.RemindAt),
	)
	return err
}

func (r *SQLiteRepository) Update(ctx context.Context, in Task) error {
	// Updating an absent row is a silent no-op; rows-affected is not checked.
	_, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, completed = ?, priority = ?, recurrence = ?, category = ?,
		    completed_at = ?, due_at = ?, remind_at = ?
		WHERE id = ?`,
		in.Title, in.Description, boolInt(in.Completed), in.Priority, in.Recurrence, in.Category,
		nullMillis(in.CompletedAt), nullMillis(in.DueAt), nullMillis(in.RemindAt), in.ID,
	)
	return err
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepository) SetCompletion(ctx context.Context, id string, completed bool, completedAt *time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET completed = ?, completed_at = ? WHERE id = ?`,
		boolInt(completed), nullMillis(completedAt), id,
	)
	return err
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) ListAll(ctx context.Context) ([]Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at DESC`)
}

func (r *SQLiteRepository) ListIncomplete(ctx context.Context) ([]Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks WHERE completed = 0 ORDER BY created_at DESC`)
}

func (r *SQLiteRepository) ListCompleted(ctx context.Context) ([]Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks WHERE completed = 1 ORDER BY completed_at DESC`)
}

func (r *SQLiteRepository) ListDueBetween(ctx context.Context, start, end time.Time) ([]Task, error) {
	return r.list(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE due_at IS NOT NULL AND due_at >= ? AND due_at <= ?
		ORDER BY due_at ASC`,
		millis(start), millis(end))
}

func (r *SQLiteRepository) ListCompletedBetween(ctx context.Context, start, end time.Time) ([]Task, error) {
	return r.list(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE completed = 1 AND completed_at IS NOT NULL AND completed_at >= ? AND completed_at <= ?
		ORDER BY completed_at DESC`,
		millis(start), millis(end))
}

func (r *SQLiteRepository) ListByPriority(ctx context.Context, priority string) ([]Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks WHERE priority = ? ORDER BY created_at DESC`, priority)
}

func (r *SQLiteRepository) ListByCategory(ctx context.Context, category string) ([]Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks WHERE category = ? ORDER BY created_at DESC`, category)
}

func (r *SQLiteRepository) Search(ctx context.Context, query string) ([]Task, error) {
	pattern := "%" + escapeLike(query) + "%"
	return r.list(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE lower(title) LIKE lower(?) ESCAPE '\' OR lower(description) LIKE lower(?) ESCAPE '\'
		ORDER BY created_at DESC`,
		pattern, pattern)
}

func (r *SQLiteRepository) CountAll(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tasks`)
}

func (r *SQLiteRepository) CountIncomplete(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tasks WHERE completed = 0`)
}

func (r *SQLiteRepository) CountCompleted(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tasks WHERE completed = 1`)
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Times are persisted as epoch milliseconds.

func millis(v time.Time) int64 {
	return v.UnixMilli()
}

func nullMillis(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UnixMilli()
}

func timeFromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

func nullableTime(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	tm := timeFromMillis(v.Int64)
	return &tm
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var completed int
	var created int64
	var completedAt, dueAt, remindAt sql.NullInt64
	if err := s.Scan(&out.ID, &out.Title, &out.Description, &completed, &out.Priority, &out.Recurrence,
		&out.Category, &created, &completedAt, &dueAt, &remindAt); err != nil {
		return Task{}, err
	}
	out.Completed = completed == 1
	out.CreatedAt = timeFromMillis(created)
	out.CompletedAt = nullableTime(completedAt)
	out.DueAt = nullableTime(dueAt)
	out.RemindAt = nullableTime(remindAt)
	return out, nil
}

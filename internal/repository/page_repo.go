package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wiki_system/internal/models"
)

type PageSQLite struct {
	db *sql.DB
}

func NewPageSQLite(db *sql.DB) *PageSQLite {
	return &PageSQLite{db: db}
}

var _ Pages = (*PageSQLite)(nil)

const (
	insertPageSQL = `
		INSERT INTO pages (title, content, author, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	// Last writer wins: no version check against what the editor last read.
	updatePageSQL = `
		UPDATE pages SET content = ?, author = ?, updated_at = ?
		WHERE title = ?
	`

	listPagesSQL = `
		SELECT title, author, updated_at FROM pages
		ORDER BY updated_at DESC, id DESC
	`

	selectPageByTitleSQL = `
		SELECT id, title, content, author, created_at, updated_at
		FROM pages WHERE title = ?
	`
)

// Create inserts a page with created_at = updated_at = at and returns its id.
// Title uniqueness is enforced by the UNIQUE constraint at insert time.
func (r *PageSQLite) Create(ctx context.Context, title, content, author string, at time.Time) (int, error) {
	ts := at.UTC()
	res, err := r.db.ExecContext(ctx, insertPageSQL, title, content, author, ts, ts)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert page %q: %w", title, models.ErrTitleConflict)
		}
		return 0, fmt.Errorf("insert page %q: %w", title, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for page %q: %w", title, err)
	}
	return int(id), nil
}

// Update overwrites content, author and updated_at of the page with title.
func (r *PageSQLite) Update(ctx context.Context, title, content, author string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, updatePageSQL, content, author, at.UTC(), title)
	if err != nil {
		return fmt.Errorf("update page %q: %w", title, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for page %q: %w", title, err)
	}
	if n == 0 {
		return fmt.Errorf("update page %q: %w", title, models.ErrNotFound)
	}
	return nil
}

// List returns every page, most recently touched first.
func (r *PageSQLite) List(ctx context.Context) ([]models.PageSummary, error) {
	rows, err := r.db.QueryContext(ctx, listPagesSQL)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	out := make([]models.PageSummary, 0, 32)
	for rows.Next() {
		var p models.PageSummary
		if err := rows.Scan(&p.Title, &p.Author, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan page summary: %w", err)
		}
		p.UpdatedAt = p.UpdatedAt.UTC()
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pages: %w", err)
	}
	return out, nil
}

// GetByTitle fetches a page by exact title. Returns (nil, nil) if not found.
func (r *PageSQLite) GetByTitle(ctx context.Context, title string) (*models.Page, error) {
	var p models.Page
	err := r.db.QueryRowContext(ctx, selectPageByTitleSQL, title).Scan(
		&p.ID,
		&p.Title,
		&p.Content,
		&p.Author,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select page %q: %w", title, err)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

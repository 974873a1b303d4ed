package repository

import (
	"context"
	"database/sql"
	"time"

	"wiki_system/internal/models"
)

// Credentials persists users and their password digests.
type Credentials interface {
	Create(ctx context.Context, username, passwordHash string) error
	GetByCredentials(ctx context.Context, username, passwordHash string) (*models.User, error)
}

// Pages persists wiki pages keyed by their unique title.
type Pages interface {
	Create(ctx context.Context, title, content, author string, at time.Time) (int, error)
	Update(ctx context.Context, title, content, author string, at time.Time) error
	List(ctx context.Context) ([]models.PageSummary, error)
	GetByTitle(ctx context.Context, title string) (*models.Page, error)
}

type Repository struct {
	Credentials Credentials
	Pages       Pages
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Credentials: NewUserSQLite(db),
		Pages:       NewPageSQLite(db),
	}
}

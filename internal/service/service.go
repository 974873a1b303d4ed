package service

import (
	"context"
	"time"

	"wiki_system/internal/models"
	"wiki_system/internal/repository"
)

// Credentials registers and authenticates users.
type Credentials interface {
	Register(ctx context.Context, username, password string) error
	// Authenticate returns nil when the username/password pair matches no user.
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// Pages is the page store as seen by the session layer.
type Pages interface {
	CreatePage(ctx context.Context, title, content, author string) error
	UpdatePage(ctx context.Context, title, content, author string) error
	ListPages(ctx context.Context) ([]models.PageSummary, error)
	GetPage(ctx context.Context, title string) (*models.Page, error)
}

// Tokens issues and verifies bearer tokens bound to a session id.
type Tokens interface {
	GenerateToken(sessionID string) (string, error)
	ParseToken(accessToken string) (string, error)
}

type Service struct {
	Credentials
	Pages
	Tokens
}

// Options carries the settings services need from configuration.
type Options struct {
	HashAlgorithm string
	SigningKey    string
	TokenTTL      time.Duration
}

func NewService(repos *repository.Repository, opts Options) (*Service, error) {
	hasher, err := NewHasher(opts.HashAlgorithm)
	if err != nil {
		return nil, err
	}
	return &Service{
		Credentials: NewCredentialService(repos.Credentials, hasher),
		Pages:       NewPageService(repos.Pages, time.Now),
		Tokens:      NewTokenService(opts.SigningKey, opts.TokenTTL),
	}, nil
}

package service

import (
	"context"
	"strings"

	"wiki_system/internal/models"
	"wiki_system/internal/repository"
)

type CredentialService struct {
	repo   repository.Credentials
	hasher Hasher
}

func NewCredentialService(repo repository.Credentials, hasher Hasher) *CredentialService {
	return &CredentialService{repo: repo, hasher: hasher}
}

// Register stores a new user. A taken username surfaces as
// models.ErrDuplicateUser from the store; nothing is retried.
func (s *CredentialService) Register(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return models.ErrEmptyCredentials
	}
	return s.repo.Create(ctx, username, s.hasher.Hash(password))
}

// Authenticate does not distinguish an unknown user from a wrong password.
func (s *CredentialService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	return s.repo.GetByCredentials(ctx, username, s.hasher.Hash(password))
}

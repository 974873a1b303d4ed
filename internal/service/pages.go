package service

import (
	"context"
	"time"

	"wiki_system/internal/models"
	"wiki_system/internal/repository"
)

type PageService struct {
	repo repository.Pages
	now  func() time.Time
}

func NewPageService(repo repository.Pages, now func() time.Time) *PageService {
	if now == nil {
		now = time.Now
	}
	return &PageService{repo: repo, now: now}
}

func (s *PageService) CreatePage(ctx context.Context, title, content, author string) error {
	_, err := s.repo.Create(ctx, title, content, author, s.now().UTC())
	return err
}

// UpdatePage overwrites unconditionally; concurrent editors race and the
// last write wins.
func (s *PageService) UpdatePage(ctx context.Context, title, content, author string) error {
	return s.repo.Update(ctx, title, content, author, s.now().UTC())
}

func (s *PageService) ListPages(ctx context.Context) ([]models.PageSummary, error) {
	return s.repo.List(ctx)
}

// GetPage returns nil when no page has exactly this title.
func (s *PageService) GetPage(ctx context.Context, title string) (*models.Page, error) {
	return s.repo.GetByTitle(ctx, title)
}

package handlers

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"wiki_system/internal/models"
	"wiki_system/internal/service"
	"wiki_system/internal/session"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockCredentials struct {
	mu    sync.Mutex
	users map[string]string
	err   error
}

func newMockCredentials() *mockCredentials {
	return &mockCredentials{users: map[string]string{}}
}

func (m *mockCredentials) Register(ctx context.Context, username, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if username == "" || password == "" {
		return models.ErrEmptyCredentials
	}
	if _, ok := m.users[username]; ok {
		return models.ErrDuplicateUser
	}
	m.users[username] = password
	return nil
}

func (m *mockCredentials) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if pw, ok := m.users[username]; ok && pw == password {
		return &models.User{Username: username}, nil
	}
	return nil, nil
}

type mockPages struct {
	mu    sync.Mutex
	pages map[string]*models.Page
	clock time.Time
	err   error
}

func newMockPages() *mockPages {
	return &mockPages{
		pages: map[string]*models.Page{},
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *mockPages) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *mockPages) CreatePage(ctx context.Context, title, content, author string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.pages[title]; ok {
		return models.ErrTitleConflict
	}
	at := m.tick()
	m.pages[title] = &models.Page{
		ID: len(m.pages) + 1, Title: title, Content: content, Author: author,
		CreatedAt: at, UpdatedAt: at,
	}
	return nil
}

func (m *mockPages) UpdatePage(ctx context.Context, title, content, author string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	p, ok := m.pages[title]
	if !ok {
		return models.ErrNotFound
	}
	p.Content, p.Author, p.UpdatedAt = content, author, m.tick()
	return nil
}

func (m *mockPages) ListPages(ctx context.Context) ([]models.PageSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []models.PageSummary
	for _, p := range m.pages {
		out = append(out, models.PageSummary{Title: p.Title, Author: p.Author, UpdatedAt: p.UpdatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *mockPages) GetPage(ctx context.Context, title string) (*models.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.pages[title]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// mockTokens uses the session id itself as the token.
type mockTokens struct {
	genErr   error
	parseErr error
}

func (m *mockTokens) GenerateToken(sessionID string) (string, error) {
	if m.genErr != nil {
		return "", m.genErr
	}
	return "tok-" + sessionID, nil
}

func (m *mockTokens) ParseToken(token string) (string, error) {
	if m.parseErr != nil {
		return "", m.parseErr
	}
	if len(token) < 4 || token[:4] != "tok-" {
		return "", models.ErrInvalidToken
	}
	return token[4:], nil
}

// ---- Shared Test Helpers ----

type testEnv struct {
	creds    *mockCredentials
	pages    *mockPages
	tokens   *mockTokens
	services *service.Service
	sessions *session.Registry
	handler  *Handler
	router   *gin.Engine
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)
	e := &testEnv{
		creds:    newMockCredentials(),
		pages:    newMockPages(),
		tokens:   &mockTokens{},
		sessions: session.NewRegistry(time.Hour),
	}
	e.services = &service.Service{Credentials: e.creds, Pages: e.pages, Tokens: e.tokens}
	e.handler = NewHandler(e.services, e.sessions, nil)
	e.router = e.handler.InitRoutes()
	return e
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

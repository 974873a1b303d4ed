package session

import (
	"context"
	"fmt"
	"strings"

	"wiki_system/internal/logger"
	"wiki_system/internal/models"
	"wiki_system/internal/service"
)

// Controller applies user actions to a Session. It is stateless itself and
// safe for concurrent use; per-session serialisation comes from the
// Session's own lock.
type Controller struct {
	creds service.Credentials
	pages service.Pages
	log   *logger.Logger
}

func NewController(creds service.Credentials, pages service.Pages, log *logger.Logger) *Controller {
	return &Controller{creds: creds, pages: pages, log: log}
}

func illegal(action string, m Mode) error {
	return fmt.Errorf("%s in mode %s: %w", action, m, models.ErrIllegalTransition)
}

// Login authenticates and moves to Home. Bad credentials leave the session untouched.
func (c *Controller) Login(ctx context.Context, s *Session, username, password string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.authenticated || s.mode != ModeLogin {
		return s.snapshot(), illegal("login", s.mode)
	}
	u, err := c.creds.Authenticate(ctx, username, password)
	if err != nil {
		c.logError("session_login_failed", err, "session", s.id)
		return s.snapshot(), err
	}
	if u == nil {
		c.logInfo("session_login_rejected", "session", s.id, "username", username)
		return s.snapshot(), models.ErrInvalidCredentials
	}

	s.authenticated = true
	s.user = u.Username
	s.mode = ModeHome
	c.logInfo("session_logged_in", "session", s.id, "username", u.Username)
	return s.snapshot(), nil
}

// SignUp registers a user and returns to the login screen. The new user is
// not logged in.
func (c *Controller) SignUp(ctx context.Context, s *Session, username, password string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.authenticated || s.mode != ModeSignUp {
		return s.snapshot(), illegal("sign up", s.mode)
	}
	if err := c.creds.Register(ctx, username, password); err != nil {
		c.logInfo("session_sign_up_failed", "session", s.id, "username", username, "err", err)
		return s.snapshot(), err
	}

	s.mode = ModeLogin
	c.logInfo("session_signed_up", "session", s.id, "username", username)
	return s.snapshot(), nil
}

// ShowLogin switches an unauthenticated session to the login form.
func (c *Controller) ShowLogin(s *Session) (State, error) {
	return c.switchAuthForm(s, ModeLogin)
}

// ShowSignUp switches an unauthenticated session to the sign-up form.
func (c *Controller) ShowSignUp(s *Session) (State, error) {
	return c.switchAuthForm(s, ModeSignUp)
}

func (c *Controller) switchAuthForm(s *Session, m Mode) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.authenticated {
		return s.snapshot(), illegal("show "+string(m), s.mode)
	}
	s.mode = m
	return s.snapshot(), nil
}

// Logout returns the session to its initial state, discarding any edit in progress.
func (c *Controller) Logout(s *Session) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated {
		return s.snapshot(), models.ErrNotAuthenticated
	}
	user := s.user
	s.reset()
	c.logInfo("session_logged_out", "session", s.id, "username", user)
	return s.snapshot(), nil
}

// Navigate handles a sidebar menu selection. While a page is being edited the
// menu is suppressed and the call is a no-op.
func (c *Controller) Navigate(s *Session, target Mode) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == ModeEditPage {
		return s.snapshot(), nil
	}
	if !menuModes[target] {
		return s.snapshot(), illegal("navigate to "+string(target), s.mode)
	}
	s.mode = target
	return s.snapshot(), nil
}

// BeginEdit opens title for editing from the page browser.
func (c *Controller) BeginEdit(ctx context.Context, s *Session, title string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated {
		return s.snapshot(), models.ErrNotAuthenticated
	}
	if s.mode != ModeBrowsePages {
		return s.snapshot(), illegal("edit", s.mode)
	}
	p, err := c.pages.GetPage(ctx, title)
	if err != nil {
		c.logError("session_begin_edit_failed", err, "session", s.id, "title", title)
		return s.snapshot(), err
	}
	if p == nil {
		return s.snapshot(), fmt.Errorf("edit %q: %w", title, models.ErrNotFound)
	}

	s.mode = ModeEditPage
	s.editingTitle = p.Title
	return s.snapshot(), nil
}

// SaveEdit writes content to the page being edited and returns to the page
// browser. Empty content is rejected without touching the store.
func (c *Controller) SaveEdit(ctx context.Context, s *Session, content string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeEditPage {
		return s.snapshot(), illegal("save", s.mode)
	}
	if content == "" {
		return s.snapshot(), models.ErrEmptyContent
	}
	if err := c.pages.UpdatePage(ctx, s.editingTitle, content, s.user); err != nil {
		c.logError("session_save_edit_failed", err, "session", s.id, "title", s.editingTitle)
		return s.snapshot(), err
	}

	c.logInfo("page_updated", "session", s.id, "title", s.editingTitle, "author", s.user)
	s.mode = ModeBrowsePages
	s.editingTitle = ""
	return s.snapshot(), nil
}

// CancelEdit leaves edit mode without saving.
func (c *Controller) CancelEdit(s *Session) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeEditPage {
		return s.snapshot(), illegal("cancel edit", s.mode)
	}
	s.mode = ModeBrowsePages
	s.editingTitle = ""
	return s.snapshot(), nil
}

// CreatePage creates a page authored by the current user. It is accepted
// from any mode except EditPage, so a user who was turned away before logging
// in can repeat the same action right after login. Authentication is checked
// before anything else so an anonymous request never reaches the store. Only
// a successful create moves the session to the create screen; a rejected one
// leaves the mode as it was.
func (c *Controller) CreatePage(ctx context.Context, s *Session, title, content string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated {
		return s.snapshot(), models.ErrNotAuthenticated
	}
	if s.mode == ModeEditPage {
		return s.snapshot(), illegal("create page", s.mode)
	}
	if strings.TrimSpace(title) == "" {
		return s.snapshot(), models.ErrEmptyTitle
	}
	if content == "" {
		return s.snapshot(), models.ErrEmptyContent
	}
	if err := c.pages.CreatePage(ctx, title, content, s.user); err != nil {
		c.logInfo("page_create_failed", "session", s.id, "title", title, "err", err)
		return s.snapshot(), err
	}

	c.logInfo("page_created", "session", s.id, "title", title, "author", s.user)
	s.mode = ModeCreatePage
	return s.snapshot(), nil
}

// ListPages returns the recent-pages listing. It never changes the session.
func (c *Controller) ListPages(ctx context.Context) ([]models.PageSummary, error) {
	return c.pages.ListPages(ctx)
}

// ViewPage looks a page up by title; a missing page is models.ErrNotFound.
func (c *Controller) ViewPage(ctx context.Context, title string) (*models.Page, error) {
	p, err := c.pages.GetPage(ctx, title)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("view %q: %w", title, models.ErrNotFound)
	}
	return p, nil
}

func (c *Controller) logInfo(msg string, kv ...interface{}) {
	if c.log != nil {
		c.log.Infow(msg, kv...)
	}
}

func (c *Controller) logError(msg string, err error, kv ...interface{}) {
	if c.log != nil {
		c.log.Errorw(msg, append([]interface{}{"err", err}, kv...)...)
	}
}

// Package session holds per-client navigation and authentication state and
// the controller that decides which wiki actions are legal in each state.
package session

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Mode is the screen/operation context a session is in.
type Mode string

const (
	ModeLogin       Mode = "login"
	ModeSignUp      Mode = "sign_up"
	ModeHome        Mode = "home"
	ModeBrowsePages Mode = "browse_pages"
	ModeCreatePage  Mode = "create_page"
	ModeEditPage    Mode = "edit_page"
)

// menuModes are the targets reachable from the sidebar menu.
var menuModes = map[Mode]bool{
	ModeHome:        true,
	ModeBrowsePages: true,
	ModeCreatePage:  true,
}

// ParseMode accepts a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeLogin, ModeSignUp, ModeHome, ModeBrowsePages, ModeCreatePage, ModeEditPage:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Session is the state of one client interaction context. All fields are
// guarded by mu; callers go through Controller.
//
// Invariants: user != "" iff authenticated; editingTitle != "" iff
// mode == ModeEditPage.
type Session struct {
	mu sync.Mutex

	id            string
	authenticated bool
	user          string
	mode          Mode
	editingTitle  string
	lastSeen      time.Time
}

// New returns a session in the initial state: unauthenticated, on the login screen.
func New(id string) *Session {
	return &Session{id: id, mode: ModeLogin, lastSeen: time.Now()}
}

func (s *Session) ID() string { return s.id }

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() State {
	return State{
		SessionID:     s.id,
		Authenticated: s.authenticated,
		CurrentUser:   s.user,
		Mode:          s.mode,
		EditingTitle:  s.editingTitle,
	}
}

func (s *Session) reset() {
	s.authenticated = false
	s.user = ""
	s.editingTitle = ""
	s.mode = ModeLogin
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// State is what the presentation layer needs to decide what to render.
type State struct {
	SessionID     string `json:"session_id"`
	Authenticated bool   `json:"authenticated"`
	CurrentUser   string `json:"current_user,omitempty"`
	Mode          Mode   `json:"mode"`
	EditingTitle  string `json:"editing_title,omitempty"`
}

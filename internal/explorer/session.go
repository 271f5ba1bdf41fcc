package explorer

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"country-explorer/internal/models"
)

const sessionFile = "session.json"

type sessionState struct {
	Token string             `json:"token"`
	User  *models.PublicUser `json:"user"`
}

// Session is the locally persisted login: token plus a minimal profile.
// Logging out only forgets the token; the server keeps no session to revoke.
type Session struct {
	mu    sync.RWMutex
	path  string
	state sessionState
}

func OpenSession(stateDir string) (*Session, error) {
	s := &Session{path: filepath.Join(stateDir, sessionFile)}
	if err := readState(s.path, &s.state); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) Login(resp models.AuthResponse) error {
	if resp.Token == "" || resp.ID == "" {
		return errors.New("token or user data is missing")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := sessionState{
		Token: resp.Token,
		User:  &models.PublicUser{ID: resp.ID, Name: resp.Name, Email: resp.Email, Role: resp.Role},
	}
	if err := writeState(s.path, next); err != nil {
		return err
	}
	s.state = next
	return nil
}

func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	s.state = sessionState{}
	return nil
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token != "" && s.state.User != nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *Session) User() (models.PublicUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return models.PublicUser{}, false
	}
	return *s.state.User, true
}

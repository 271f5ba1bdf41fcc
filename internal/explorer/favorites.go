package explorer

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
)

const favoritesFile = "favorites.json"

var ErrLoginRequired = errors.New("login required to manage favorites")

// Favorites is the per-device set of favourite country codes. It is never
// synced to the server; the login requirement is a local gate only.
type Favorites struct {
	mu      sync.Mutex
	path    string
	session *Session
	codes   []string
}

func OpenFavorites(stateDir string, session *Session) (*Favorites, error) {
	f := &Favorites{path: filepath.Join(stateDir, favoritesFile), session: session}
	if err := readState(f.path, &f.codes); err != nil {
		return nil, err
	}
	return f, nil
}

// Toggle adds code when absent and removes it when present. It reports
// whether code is a favourite afterwards.
func (f *Favorites) Toggle(code string) (bool, error) {
	if f.session == nil || !f.session.IsAuthenticated() {
		return false, ErrLoginRequired
	}
	code = normalizeCode(code)
	if code == "" {
		return false, errors.New("country code is required")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	next := make([]string, 0, len(f.codes)+1)
	removed := false
	for _, c := range f.codes {
		if c == code {
			removed = true
			continue
		}
		next = append(next, c)
	}
	if !removed {
		next = append(next, code)
	}

	if err := writeState(f.path, next); err != nil {
		return false, err
	}
	f.codes = next
	return !removed, nil
}

func (f *Favorites) Contains(code string) bool {
	code = normalizeCode(code)

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.codes {
		if c == code {
			return true
		}
	}
	return false
}

// List returns the codes in the order they were added. Like Toggle it
// needs a logged-in session.
func (f *Favorites) List() ([]string, error) {
	if f.session == nil || !f.session.IsAuthenticated() {
		return nil, ErrLoginRequired
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.codes...), nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"country-explorer/internal/models"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore reports an email uniqueness violation as ErrDuplicateEmail.
// Only GetUserByEmail returns the password hash.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open picks a backend from the URL scheme: mongodb:// and mongodb+srv://
// for the document store, mysql:// for MySQL, memory:// for an in-process store.
func Open(ctx context.Context, url string, logger zerolog.Logger) (UserStore, error) {
	switch {
	case strings.HasPrefix(url, "mongodb://"), strings.HasPrefix(url, "mongodb+srv://"):
		store, err := OpenMongo(ctx, url, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	case strings.HasPrefix(url, "mysql://"):
		store, err := OpenMySQL(ctx, strings.TrimPrefix(url, "mysql://"), logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	case strings.HasPrefix(url, "memory://"):
		logger.Warn().Msg("Using in-memory user store, data is lost on restart")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported database url scheme: %q", schemeOf(url))
	}
}

func schemeOf(url string) string {
	if i := strings.Index(url, "://"); i >= 0 {
		return url[:i]
	}
	return url
}

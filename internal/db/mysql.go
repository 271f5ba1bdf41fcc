package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"country-explorer/internal/models"
)

const mysqlErrDuplicateEntry = 1062

type MySQLStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// OpenMySQL connects with a go-sql-driver DSN, pings and runs migrations.
func OpenMySQL(ctx context.Context, dsn string, logger zerolog.Logger) (*MySQLStore, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	logger.Info().Str("addr", cfg.Addr).Str("db", cfg.DBName).Msg("Connected to MySQL")

	store := NewMySQLStore(db, logger)
	if err := store.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func NewMySQLStore(db *sql.DB, logger zerolog.Logger) *MySQLStore {
	return &MySQLStore{db: db, logger: logger}
}

func (s *MySQLStore) RunMigrations(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id CHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(320) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(32) NOT NULL DEFAULT 'user',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			UNIQUE KEY uq_users_email (email)
		)`,
	}

	for _, q := range queries {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	s.logger.Info().Msg("Migrations complete")
	return nil
}

func (s *MySQLStore) CreateUser(ctx context.Context, u *models.User) error {
	now := time.Now().UTC().Truncate(time.Second)
	id := uuid.NewString()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, u.Name, u.Email, u.PasswordHash, string(u.Role), now, now,
	)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlErrDuplicateEntry {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	u.ID = id
	u.CreatedAt = now
	u.UpdatedAt = now
	return nil
}

func (s *MySQLStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, role, created_at, updated_at FROM users WHERE email = ?",
		email,
	))
}

func (s *MySQLStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, role, created_at, updated_at FROM users WHERE id = ?",
		id,
	))
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *MySQLStore) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var role string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	u.Role = models.UserRole(role)
	return &u, nil
}

func (s *MySQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *MySQLStore) Close(context.Context) error {
	return s.db.Close()
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"country-explorer/internal/apperror"
	"country-explorer/internal/db"
	"country-explorer/internal/models"
)

// bcrypt refuses to hash passwords longer than this.
const maxPasswordBytes = 72

type UserService struct {
	store      db.UserStore
	tokens     *TokenIssuer
	validate   *validator.Validate
	bcryptCost int
	dummyHash  []byte
	logger     zerolog.Logger
}

func NewUserService(store db.UserStore, tokens *TokenIssuer, bcryptCost int, logger zerolog.Logger) (*UserService, error) {
	// Compared against when the email is unknown so both login failures cost
	// one bcrypt comparison.
	dummy, err := bcrypt.GenerateFromPassword([]byte("placeholder-password"), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("prepare password hasher: %w", err)
	}

	return &UserService{
		store:      store,
		tokens:     tokens,
		validate:   validator.New(),
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
		logger:     logger,
	}, nil
}

func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return models.AuthResponse{}, apperror.Validation(apperror.CodeMissingFields, "Name, email, and password are required")
	}

	email := models.NormalizeEmail(req.Email)
	if err := s.validate.Var(email, "email"); err != nil {
		return models.AuthResponse{}, apperror.Validation(apperror.CodeInvalidEmail, "Invalid email format")
	}

	_, err := s.store.GetUserByEmail(ctx, email)
	if err == nil {
		return models.AuthResponse{}, apperror.ErrUserExists
	}
	if !errors.Is(err, db.ErrNotFound) {
		return models.AuthResponse{}, fmt.Errorf("check existing user: %w", err)
	}

	// Admin roles cannot be self-assigned.
	if req.Role != "" && models.UserRole(req.Role) != models.RoleUser {
		return models.AuthResponse{}, apperror.Validation(apperror.CodeInvalidRole, "Invalid role assignment")
	}

	if len(req.Password) > maxPasswordBytes {
		return models.AuthResponse{}, apperror.Validation(apperror.CodePasswordTooLong, "Password must be at most 72 bytes")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, db.ErrDuplicateEmail) {
			return models.AuthResponse{}, apperror.ErrUserExists
		}
		return models.AuthResponse{}, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("User registered successfully")
	return models.NewAuthResponse(user, token), nil
}

func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return models.AuthResponse{}, apperror.Validation(apperror.CodeMissingFields, "Email and password are required")
	}

	email := models.NormalizeEmail(req.Email)
	if err := s.validate.Var(email, "email"); err != nil {
		return models.AuthResponse{}, apperror.Validation(apperror.CodeInvalidEmail, "Invalid email format")
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return models.AuthResponse{}, fmt.Errorf("find user: %w", err)
	}

	hash := s.dummyHash
	if user != nil {
		hash = []byte(user.PasswordHash)
	}
	if cmpErr := bcrypt.CompareHashAndPassword(hash, []byte(req.Password)); cmpErr != nil || user == nil {
		s.logger.Warn().Str("email", email).Msg("Failed authentication attempt")
		return models.AuthResponse{}, apperror.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("User authenticated successfully")
	return models.NewAuthResponse(user, token), nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (models.PublicUser, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if errors.Is(err, db.ErrNotFound) {
		return models.PublicUser{}, apperror.NotFound(apperror.CodeUserNotFound, "User not found")
	}
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("get user: %w", err)
	}
	return user.Public(), nil
}

// Ping reports whether the user store is reachable.
func (s *UserService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

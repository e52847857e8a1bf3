package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/SAP-F-2025/notes-service/internal/events"
	"github.com/SAP-F-2025/notes-service/internal/models"
	"github.com/SAP-F-2025/notes-service/internal/repositories"
	"github.com/SAP-F-2025/notes-service/internal/sessions"
	"github.com/SAP-F-2025/notes-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	store     sessions.Store
	notifier  *NotificationEventService
	validator *validator.Validator
	logger    *slog.Logger
}

func NewAuthService(
	repo repositories.Repository,
	store sessions.Store,
	notifier *NotificationEventService,
	v *validator.Validator,
	logger *slog.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		store:     store,
		notifier:  notifier,
		validator: v,
		logger:    logger,
	}
}

// normalizeEmail canonicalizes an address for storage and lookup. Addresses
// are matched case-insensitively, so one mailbox maps to one account.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account in the pending state. Nobody can log in
// until their supervisor approves them.
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	req.Email = normalizeEmail(req.Email)

	if errs := s.validator.GetBusinessValidator().ValidateRegister(req); len(errs) > 0 {
		return nil, errs
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		FullName:     req.FullName,
		Role:         req.Role,
		PasswordHash: string(hash),
		Approved:     false,
	}

	event := events.NewEvent(events.TypeUserRegistered, map[string]interface{}{
		"userId":   user.ID,
		"email":    user.Email,
		"fullName": user.FullName,
		"role":     user.Role,
	})

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.User().Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return s.notifier.Record(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		"user_id", user.ID,
		"role", user.Role)

	s.notifier.Publish(event)

	return user, nil
}

// Login authenticates credentials and opens a session. An unknown email
// and a wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	email := normalizeEmail(req.Email)
	password := strings.TrimSpace(req.Password)

	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	// Approval is checked after the password so a correct login on a
	// pending account gets the pending message, not a credentials error.
	if !user.Approved {
		return nil, ErrPendingApproval
	}

	sessionUser := models.SessionUserFrom(user)
	token, err := s.store.Create(ctx, sessionUser)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("user logged in",
		"user_id", user.ID,
		"role", user.Role)

	return &LoginResult{User: sessionUser, Token: token}, nil
}

// Logout destroys the session. Unknown tokens succeed silently.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.Destroy(ctx, token)
}

// CurrentUser resolves a session token to its identity.
func (s *authService) CurrentUser(ctx context.Context, token string) (*models.SessionUser, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	return user, nil
}

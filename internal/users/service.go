package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Harshmohod/land-verification/internal/shared/auth"
	"github.com/Harshmohod/land-verification/internal/shared/metrics"
)

// Service contains account and session logic.
type Service struct {
	Repo   Repo
	Tokens *auth.TokenService
}

// NewService constructs a Service.
func NewService(repo Repo, tokens *auth.TokenService) *Service {
	return &Service{Repo: repo, Tokens: tokens}
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Role     string
	Name     string
	Username string
	Password string
	Region   string
	Email    string
	Phone    string
	Address  string
}

// Register creates a new account. The region is required for citizens and
// reviewers and ignored for admins.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	in.Role = strings.TrimSpace(in.Role)
	in.Name = strings.TrimSpace(in.Name)
	in.Username = strings.TrimSpace(in.Username)
	in.Region = strings.TrimSpace(in.Region)

	if !ValidRole(in.Role) {
		return User{}, fmt.Errorf("%w: unknown role", ErrInvalidInput)
	}
	if in.Username == "" || in.Name == "" || in.Password == "" {
		return User{}, fmt.Errorf("%w: name, username and password are required", ErrInvalidInput)
	}
	switch in.Role {
	case RoleAdmin:
		in.Region = ""
	default:
		if in.Region == "" {
			return User{}, fmt.Errorf("%w: region is required for %s accounts", ErrInvalidInput, in.Role)
		}
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		PasswordHash: hash,
		Role:         in.Role,
		Name:         in.Name,
		Region:       in.Region,
		Email:        strings.TrimSpace(in.Email),
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Login verifies credentials and issues a session token. Unknown users and
// wrong passwords are deliberately indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, role, username, password string) (User, string, error) {
	user, err := s.Repo.GetByUsernameAndRole(ctx, strings.TrimSpace(username), strings.TrimSpace(role))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			metrics.LoginFailures.Inc()
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}

	if err := auth.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			metrics.LoginFailures.Inc()
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}

	token, err := s.Tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// GetByID fetches a user by ID.
func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID)
}

// List returns every user, newest first.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.Repo.List(ctx)
}

// ListReviewers returns reviewer accounts ordered by display name.
func (s *Service) ListReviewers(ctx context.Context) ([]User, error) {
	return s.Repo.ListByRole(ctx, RoleReviewer)
}

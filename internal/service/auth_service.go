package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"todo_api/internal/models"
	"todo_api/internal/repository"
	"todo_api/internal/security"
)

// bcrypt rejects longer inputs.
const maxPasswordBytes = 72

// AuthService handles user auth logic
type AuthService struct {
	repos  *repository.Repository
	tokens *security.TokenManager
	now    func() time.Time
}

func NewAuthService(repos *repository.Repository, tokens *security.TokenManager) *AuthService {
	return &AuthService{repos: repos, tokens: tokens, now: time.Now}
}

// SignUp validates the input, hashes the password and creates a new user.
func (s *AuthService) SignUp(ctx context.Context, in models.RegisterInput) (models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateStruct(in); err != nil {
		return models.User{}, err
	}
	if len(in.Password) > maxPasswordBytes {
		return models.User{}, &ValidationError{Field: "password", Reason: "must be at most 72 bytes"}
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("sign up %q: %w", in.Username, err)
	}

	var created models.User
	err = s.repos.Transact(ctx, func(r *repository.Repository) error {
		usernameTaken, emailTaken, err := r.Users.Taken(ctx, in.Username, in.Email)
		if err != nil {
			return err
		}
		switch {
		case usernameTaken:
			return ErrUsernameTaken
		case emailTaken:
			return ErrEmailTaken
		}

		created, err = r.Users.Create(ctx, models.User{
			Username:     in.Username,
			Email:        in.Email,
			PasswordHash: hash,
			CreatedAt:    s.now().UTC().Truncate(time.Microsecond),
		})
		return err
	})
	if errors.Is(err, repository.ErrDuplicateKey) {
		// lost a race with a concurrent registration
		return models.User{}, ErrDuplicate
	}
	if err != nil {
		return models.User{}, err
	}
	return created, nil
}

// GenerateToken validates credentials and returns JWT
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, error) {
	var u models.User
	err := s.repos.Transact(ctx, func(r *repository.Repository) error {
		var err error
		u, err = r.Users.GetByUsername(ctx, strings.TrimSpace(username))
		return err
	})
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if !security.VerifyPassword(password, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(u.ID)
}

// ParseToken parses JWT and returns userID
func (s *AuthService) ParseToken(accessToken string) (int64, error) {
	id, err := s.tokens.Verify(accessToken)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return id, nil
}

// CurrentUser resolves a verified token subject to its account.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (models.User, error) {
	var u models.User
	err := s.repos.Transact(ctx, func(r *repository.Repository) error {
		var err error
		u, err = r.Users.GetByID(ctx, userID)
		return err
	})
	if errors.Is(err, repository.ErrNotFound) {
		return models.User{}, ErrNotFound
	}
	return u, err
}

// DeleteAccount removes the user together with all owned lists, items and activity.
func (s *AuthService) DeleteAccount(ctx context.Context, userID int64) error {
	err := s.repos.Transact(ctx, func(r *repository.Repository) error {
		return r.Users.Delete(ctx, userID)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

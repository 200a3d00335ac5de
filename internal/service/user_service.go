package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	dom "todolist/internal/domain"
	"todolist/internal/repo"
)

// PasswordHasher is the credential service used for signup and login.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(hash, plaintext string) bool
}

// UserService handles signup, login and identity loading.
type UserService struct {
	repo   repo.UserRepo
	hasher PasswordHasher
}

// NewUserService returns a new UserService.
func NewUserService(r repo.UserRepo, h PasswordHasher) *UserService {
	return &UserService{repo: r, hasher: h}
}

// Signup validates and creates a user. Checks run in a fixed order:
// empty password, then username, then email.
func (s *UserService) Signup(ctx context.Context, name, password, email string) (dom.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if password == "" {
		return dom.User{}, ErrEmptyPassword
	}
	if taken, err := s.exists(ctx, s.repo.GetByName, name); err != nil {
		return dom.User{}, err
	} else if taken {
		return dom.User{}, ErrUsernameTaken
	}
	if taken, err := s.exists(ctx, s.repo.GetByEmail, email); err != nil {
		return dom.User{}, err
	} else if taken {
		return dom.User{}, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, dom.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		// Lost a race with a concurrent signup.
		var dup *repo.DuplicateError
		if errors.As(err, &dup) {
			if dup.Field == "email" {
				return dom.User{}, ErrEmailTaken
			}
			return dom.User{}, ErrUsernameTaken
		}
		return dom.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate checks name and password; returns the user if valid.
func (s *UserService) Authenticate(ctx context.Context, name, password string) (dom.User, error) {
	u, err := s.repo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.User{}, ErrUnknownUser
		}
		return dom.User{}, fmt.Errorf("get user: %w", err)
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return dom.User{}, ErrWrongPassword
	}
	return u, nil
}

// Load resolves a session's user id. It matches auth.Loader.
func (s *UserService) Load(ctx context.Context, id int64) (dom.User, bool, error) {
	u, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return dom.User{}, false, nil
	}
	if err != nil {
		return dom.User{}, false, fmt.Errorf("load user %d: %w", id, err)
	}
	return u, true, nil
}

func (s *UserService) exists(ctx context.Context, get func(context.Context, string) (dom.User, error), key string) (bool, error) {
	_, err := get(ctx, key)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup user: %w", err)
	}
	return true, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/nurpe/fleetadmin/internal/auth"
	"github.com/nurpe/fleetadmin/internal/model"
	"github.com/nurpe/fleetadmin/internal/repository"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type AuthService struct {
	credentials       CredentialStore
	users             UserStore
	issuer            *auth.Issuer
	recentLoginWindow time.Duration
}

func NewAuthService(credentials CredentialStore, users UserStore, issuer *auth.Issuer, recentLoginWindow time.Duration) *AuthService {
	return &AuthService{
		credentials:       credentials,
		users:             users,
		issuer:            issuer,
		recentLoginWindow: recentLoginWindow,
	}
}

type LoginResult struct {
	Token string
	User  model.User
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	credential, err := s.credentials.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load credential: %w", err)
	}

	if err := auth.CheckPassword(credential.PasswordHash, password); err != nil {
		return nil, ErrWrongPassword
	}

	user, err := s.users.GetByID(ctx, credential.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Token: token, User: *user}, nil
}

// ChangeEmail updates both the credential and the profile. The caller must
// have authenticated within the recent-login window.
func (s *AuthService) ChangeEmail(ctx context.Context, principal model.Principal, newEmail string) error {
	if err := s.requireRecentLogin(principal); err != nil {
		return err
	}
	if !emailPattern.MatchString(newEmail) {
		return ErrInvalidEmail
	}

	if err := s.credentials.UpdateEmail(ctx, principal.UserID, newEmail); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return ErrEmailInUse
		}
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update credential email: %w", err)
	}

	email := newEmail
	if err := s.users.Update(ctx, principal.UserID, model.UserUpdate{Email: &email}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update profile email: %w", err)
	}
	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, principal model.Principal, newPassword string) error {
	if err := s.requireRecentLogin(principal); err != nil {
		return err
	}
	if len(newPassword) < auth.MinPasswordLength {
		return ErrWeakPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.credentials.UpdatePassword(ctx, principal.UserID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *AuthService) requireRecentLogin(principal model.Principal) error {
	issuedAt := time.Unix(principal.IssuedAt, 0)
	if time.Since(issuedAt) > s.recentLoginWindow {
		return ErrRecentLoginRequired
	}
	return nil
}

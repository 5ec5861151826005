package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	pkg_hash "github.com/Skotchmaster/car_export/pkg/hash"
	"github.com/Skotchmaster/car_export/pkg/logging"
	"github.com/Skotchmaster/car_export/pkg/tokens"

	"github.com/Skotchmaster/car_export/internal/models"
	"github.com/Skotchmaster/car_export/internal/repo"
)

const AccessTTL = 8 * time.Hour

// dummyHash keeps unknown-user logins as slow as wrong-password ones.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3r2Qn5RZl3Ww0H0GkbS8j6a"

type AuthService struct {
	Repo   *repo.GormRepo
	Issuer tokens.Issuer
	Now    func() time.Time
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.AdminUser
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	user, err := s.Repo.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			pkg_hash.CheckPassword(dummyHash, password)
			l.Warn("login_failed", "status", 401, "reason", "unknown user")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !pkg_hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "wrong password")
		return nil, ErrInvalidCredentials
	}
	if pkg_hash.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, l, user, password)
	}

	token, exp, err := s.Issuer.Issue(user.ID.String(), user.Username, user.Role, s.now())
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

// rehash upgrades a stored hash to the current cost. Failures only cost a slower login next time.
func (s *AuthService) rehash(ctx context.Context, l *slog.Logger, user *models.AdminUser, password string) {
	h, err := pkg_hash.HashPassword(password)
	if err == nil {
		err = s.Repo.UpdateAdminPassword(ctx, user.ID, h)
	}
	if err != nil {
		l.Warn("password_rehash_failed", "error", err)
		return
	}
	user.PasswordHash = h
}

// SeedAdmin creates the admin account when no user with that name exists yet.
func (s *AuthService) SeedAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}
	if _, err := s.Repo.GetAdminByUsername(ctx, username); err == nil {
		return false, nil
	} else if !errors.Is(err, repo.ErrNotFound) {
		return false, err
	}

	hash, err := pkg_hash.HashPassword(password)
	if err != nil {
		return false, err
	}
	user := models.AdminUser{Username: username, PasswordHash: hash, Role: tokens.RoleAdmin}
	if err := s.Repo.CreateAdmin(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.Repo.GetAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !pkg_hash.CheckPassword(user.PasswordHash, current) {
		return ErrInvalidCredentials
	}
	if current == next {
		return invalid("new password must differ from the current one")
	}

	hash, err := pkg_hash.HashPassword(next)
	if err != nil {
		return err
	}
	return s.Repo.UpdateAdminPassword(ctx, user.ID, hash)
}

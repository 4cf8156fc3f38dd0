package service

import (
	"context"
	"errors"

	"github.com/grampanchayat/tax_collection/internal/hash"
	"github.com/grampanchayat/tax_collection/internal/logging"
	"github.com/grampanchayat/tax_collection/internal/models"
	"github.com/grampanchayat/tax_collection/internal/repo"
	"github.com/grampanchayat/tax_collection/internal/tokens"
)

type AuthService struct {
	Users   repo.UserStore
	Revoked repo.RevocationStore
	Codec   *tokens.Codec
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *models.User
}

// AuthenticateUser verifies the password against the stored hash. Unknown
// user and wrong password are indistinguishable to the caller, so the API
// cannot be used to enumerate usernames.
func (s *AuthService) AuthenticateUser(username, password string) (*models.User, error) {
	user, err := s.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil || !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	user, err := s.AuthenticateUser(username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			l.Warn("login failed", "status", 401, "reason", "invalid username or password")
		} else {
			l.Error("login failed", "status", 500, "error", err)
		}
		return nil, err
	}

	accessToken, err := s.Codec.IssueAccess(user)
	if err != nil {
		l.Error("login failed", "status", 500, "error", err)
		return nil, err
	}

	refreshToken, err := s.Codec.IssueRefresh(user.Username)
	if err != nil {
		l.Error("login failed", "status", 500, "error", err)
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Refresh mints a new access token from the CURRENT user record, not from
// anything carried inside the refresh token, so role changes take effect on
// the next refresh.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	claims, err := s.Codec.ValidateRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, tokens.ErrTokenExpired) {
			return "", err
		}
		return "", ErrInvalidRefreshToken
	}

	user, err := s.Users.GetByUsername(claims.Subject)
	if err != nil {
		l.Error("refresh failed", "status", 500, "error", err)
		return "", err
	}
	if user == nil {
		l.Warn("refresh failed", "status", 401, "reason", "user no longer exists")
		return "", ErrUserNotFound
	}

	return s.Codec.IssueAccess(user)
}

// Logout revokes the access token's jti. Revoking an already-revoked token
// succeeds: the store insert is an upsert.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	l := logging.FromContext(ctx).With("svc", "auth.logout")

	claims, err := s.Codec.ValidateAccess(accessToken)
	if err != nil {
		return err
	}

	if err := s.Revoked.Record(claims.ID); err != nil {
		l.Error("logout failed", "status", 500, "error", err)
		return err
	}
	return nil
}

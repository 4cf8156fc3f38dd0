package service

import (
	"github.com/grampanchayat/tax_collection/internal/models"
	"github.com/grampanchayat/tax_collection/internal/tokens"
)

// CurrentUser resolves the principal behind an access token. The revocation
// list is consulted on every call, before the user lookup, so a logged-out
// token is dead on every route.
func (s *AuthService) CurrentUser(accessToken string) (*models.User, error) {
	claims, err := s.Codec.ValidateAccess(accessToken)
	if err != nil {
		return nil, err
	}

	revoked, err := s.Revoked.IsRevoked(claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, tokens.ErrInvalidCredentials
	}

	user, err := s.Users.GetByUsername(claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, tokens.ErrInvalidCredentials
	}
	return user, nil
}

func RequireRole(user *models.User, role string) error {
	if user == nil || !user.Roles.Has(role) {
		return ErrInsufficientPermissions
	}
	return nil
}

func RequireAdmin(user *models.User) error {
	return RequireRole(user, models.RoleAdmin)
}

package tokens

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/grampanchayat/tax_collection/internal/models"
)

// ContextUser is the principal summary embedded in an access token.
type ContextUser struct {
	Key   string `json:"key"`
	Phone int64  `json:"phone"`
}

type AuthContext struct {
	User  ContextUser    `json:"user"`
	Roles models.RoleSet `json:"roles"`
}

// AccessClaims carries the full authorization context plus a unique jti used
// as the revocation key.
type AccessClaims struct {
	Context AuthContext `json:"context"`
	jwt.RegisteredClaims
}

// RefreshClaims carries the subject only. Roles are re-derived from current
// user state at refresh time, so a refresh token can never resurrect stale
// role assignments.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

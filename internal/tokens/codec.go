package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/grampanchayat/tax_collection/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("Could not validate credentials")
	ErrTokenExpired       = errors.New("Token expired")
)

// Codec signs and verifies the two token classes. Each class has its own
// secret, so leaking one cannot be used to forge the other. Constructed once
// at startup; holds no mutable state.
type Codec struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func NewCodec(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) *Codec {
	return &Codec{
		AccessSecret:  accessSecret,
		RefreshSecret: refreshSecret,
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
	}
}

func (c *Codec) IssueAccess(user *models.User) (string, error) {
	now := time.Now().UTC()
	claims := AccessClaims{
		Context: AuthContext{
			User:  ContextUser{Key: user.Username, Phone: user.Phone},
			Roles: user.Roles,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(c.AccessTTL)),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.AccessSecret)
}

func (c *Codec) IssueRefresh(username string) (string, error) {
	now := time.Now().UTC()
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(c.RefreshTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.RefreshSecret)
}

// DecodeAccess checks signature and structure only. Expiry is left to
// ValidateAccess so that a caller can ask "is this authentic" without also
// asking "is this still fresh".
func (c *Codec) DecodeAccess(raw string) (*AccessClaims, error) {
	var claims AccessClaims
	if err := decode(raw, &claims, c.AccessSecret); err != nil {
		return nil, err
	}
	return &claims, nil
}

func (c *Codec) DecodeRefresh(raw string) (*RefreshClaims, error) {
	var claims RefreshClaims
	if err := decode(raw, &claims, c.RefreshSecret); err != nil {
		return nil, err
	}
	return &claims, nil
}

func decode(raw string, claims jwt.Claims, secret []byte) error {
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || !tkn.Valid {
		return ErrInvalidCredentials
	}
	return nil
}

// ValidateAccess is the entry point route guards use: signature, subject
// presence, then expiry. A token whose exp equals "now" is already expired.
func (c *Codec) ValidateAccess(raw string) (*AccessClaims, error) {
	claims, err := c.DecodeAccess(raw)
	if err != nil {
		return nil, err
	}
	if err := checkRegistered(&claims.RegisteredClaims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (c *Codec) ValidateRefresh(raw string) (*RefreshClaims, error) {
	claims, err := c.DecodeRefresh(raw)
	if err != nil {
		return nil, err
	}
	if err := checkRegistered(&claims.RegisteredClaims); err != nil {
		return nil, err
	}
	return claims, nil
}

func checkRegistered(rc *jwt.RegisteredClaims) error {
	if rc.Subject == "" {
		return ErrInvalidCredentials
	}
	if rc.ExpiresAt != nil && !time.Now().UTC().Before(rc.ExpiresAt.Time) {
		return ErrTokenExpired
	}
	return nil
}

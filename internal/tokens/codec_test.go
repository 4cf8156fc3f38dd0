package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/grampanchayat/tax_collection/internal/models"
)

func newTestCodec() *Codec {
	return NewCodec([]byte("access_secret"), []byte("refresh_secret"), 30*time.Minute, 7*24*time.Hour)
}

func testUser() *models.User {
	return &models.User{
		Username: "collector",
		Name:     "Collector",
		Phone:    1234567890,
		Roles:    models.ParseRoleSet("COLLECTOR"),
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	codec := newTestCodec()

	raw, err := codec.IssueAccess(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := codec.ValidateAccess(raw)
	require.NoError(t, err)
	require.Equal(t, "collector", claims.Subject)
	require.Equal(t, "collector", claims.Context.User.Key)
	require.Equal(t, int64(1234567890), claims.Context.User.Phone)
	require.True(t, claims.Context.Roles.Has(models.RoleCollector))
	require.NotEmpty(t, claims.ID, "access tokens must carry a jti")
	require.WithinDuration(t, time.Now().UTC().Add(30*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	codec := newTestCodec()

	raw, err := codec.IssueRefresh("collector")
	require.NoError(t, err)

	claims, err := codec.ValidateRefresh(raw)
	require.NoError(t, err)
	require.Equal(t, "collector", claims.Subject)
	require.Empty(t, claims.ID, "refresh tokens carry no jti")
	require.WithinDuration(t, time.Now().UTC().Add(7*24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestAccessTokensGetDistinctIDs(t *testing.T) {
	codec := newTestCodec()

	first, err := codec.IssueAccess(testUser())
	require.NoError(t, err)
	second, err := codec.IssueAccess(testUser())
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	firstClaims, err := codec.ValidateAccess(first)
	require.NoError(t, err)
	secondClaims, err := codec.ValidateAccess(second)
	require.NoError(t, err)
	require.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestTokenClassesUseDistinctSecrets(t *testing.T) {
	codec := newTestCodec()

	access, err := codec.IssueAccess(testUser())
	require.NoError(t, err)
	refresh, err := codec.IssueRefresh("collector")
	require.NoError(t, err)

	_, err = codec.ValidateRefresh(access)
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = codec.ValidateAccess(refresh)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestWrongSecretRejected(t *testing.T) {
	codec := newTestCodec()
	other := NewCodec([]byte("other_secret"), []byte("other_refresh"), 30*time.Minute, 7*24*time.Hour)

	raw, err := codec.IssueAccess(testUser())
	require.NoError(t, err)

	_, err = other.ValidateAccess(raw)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMalformedToken(t *testing.T) {
	codec := newTestCodec()

	_, err := codec.ValidateAccess("invalid_token")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = codec.DecodeAccess("not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestExpiredTokenRejected(t *testing.T) {
	codec := newTestCodec()
	codec.AccessTTL = -time.Minute

	raw, err := codec.IssueAccess(testUser())
	require.NoError(t, err)

	_, err = codec.ValidateAccess(raw)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestExpiryBoundaryIsStrict(t *testing.T) {
	codec := newTestCodec()

	// exp exactly equal to the comparison instant counts as expired.
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "collector",
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC()),
			ID:        "boundary",
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(codec.AccessSecret)
	require.NoError(t, err)

	_, err = codec.ValidateAccess(raw)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestDecodeSkipsExpiryCheck(t *testing.T) {
	codec := newTestCodec()
	codec.AccessTTL = -time.Minute

	raw, err := codec.IssueAccess(testUser())
	require.NoError(t, err)

	claims, err := codec.DecodeAccess(raw)
	require.NoError(t, err, "decode answers authenticity, not freshness")
	require.Equal(t, "collector", claims.Subject)
}

func TestMissingSubjectRejected(t *testing.T) {
	codec := newTestCodec()

	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(time.Hour)),
			ID:        "no-subject",
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(codec.AccessSecret)
	require.NoError(t, err)

	_, err = codec.ValidateAccess(raw)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUnexpectedAlgorithmRejected(t *testing.T) {
	codec := newTestCodec()

	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "collector",
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(codec.AccessSecret)
	require.NoError(t, err)

	_, err = codec.ValidateAccess(raw)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

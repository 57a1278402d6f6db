package auth

import (
	"testing"
	"time"

	"profilehub/config"
	"profilehub/internal/domain/entity"
	"profilehub/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAccessSecret = "test_access_secret_key_very_long_for_testing"

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = testAccessSecret

	return cfg
}

// signAccessToken mints a token the way the identity provider does.
func signAccessToken(t *testing.T, secret string, accountID uuid.UUID, role string, issuedAt time.Time) string {
	t.Helper()

	claims := service.Claims{
		Role: role,
		Type: accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return token
}

func TestJWTService_Validate(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	accountID := uuid.New()
	token := signAccessToken(t, testAccessSecret, accountID, entity.RoleCompanySponsor.String(), time.Now())

	claims, err := tokenService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, accountID, claims.AccountID)
	assert.Equal(t, "chefe_empresa", claims.Role)
	assert.Equal(t, "access", claims.Type)
	assert.Equal(t, accountID.String(), claims.Subject)
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	tokenService, err := NewJWTService(&config.Config{})

	assert.ErrorIs(t, err, errMissingSecret)
	assert.Nil(t, tokenService)
}

func TestJWTService_InvalidToken(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	claims, err := tokenService.ValidateToken("clearly-not-a-jwt-token-format")

	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_WrongSecret(t *testing.T) {
	verifier, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	token := signAccessToken(t, "another_secret_that_does_not_match", uuid.New(), entity.RoleTeachingInstitution.String(), time.Now())

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	impl := tokenService.(*jwtService)
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	token := signAccessToken(t, testAccessSecret, uuid.New(), entity.RoleTeachingInstitution.String(), issued)

	impl.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = impl.ValidateToken(token)

	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_RejectsNonAccessToken(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	claims := service.Claims{
		Type: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testAccessSecret))
	require.NoError(t, err)

	_, err = tokenService.ValidateToken(token)
	assert.ErrorIs(t, err, errWrongTokenType)
}

func TestJWTService_RejectsMalformedSubject(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	claims := service.Claims{
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testAccessSecret))
	require.NoError(t, err)

	_, err = tokenService.ValidateToken(token)
	assert.ErrorIs(t, err, errInvalidSubject)
}

func TestJWTService_RejectsNoneAlgorithm(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	claims := service.Claims{
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tokenService.ValidateToken(token)
	assert.Error(t, err)
}

package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"profilehub/config"
	"profilehub/internal/domain/service"
	"profilehub/internal/errors"
)

const accessTokenType = "access"

var (
	errMissingSecret  = errors.New("jwt access secret must be provided")
	errWrongTokenType = errors.New("token is not an access token")
	errInvalidSubject = errors.New("token subject is not an account id")
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret []byte // Shared HS256 secret of the identity provider.
	now          func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errMissingSecret
	}

	return &jwtService{
		accessSecret: []byte(cfg.SecretKey.Access),
		now:          time.Now,
	}, nil
}

// ValidateToken checks signature, expiry and token type, then resolves the account id.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.accessSecret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}

	if claims.Type != accessTokenType {
		return nil, errWrongTokenType
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(errInvalidSubject, err.Error())
	}
	claims.AccountID = accountID

	return claims, nil
}

package middleware

import (
	"strings"

	"profilehub/internal/delivery/api/response"
	deliverycontext "profilehub/internal/delivery/context"
	"profilehub/internal/domain/entity"
	"profilehub/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware verifies access tokens issued by the identity service.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate resolves the caller's {id, role} from a Bearer token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Token de acesso não informado")
		}

		tokenString, found := strings.CutPrefix(authHeader, bearerPrefix)
		if !found || strings.TrimSpace(tokenString) == "" {
			return response.Unauthorized(c, "INVALID_TOKEN_FORMAT", "Formato de token inválido")
		}

		claims, err := m.tokenSvc.ValidateToken(strings.TrimSpace(tokenString))
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Token inválido ou expirado")
		}
		if !entity.Role(claims.Role).IsValid() {
			return response.Unauthorized(c, "INVALID_TOKEN", "Token inválido ou expirado")
		}

		deliverycontext.SetIdentity(c, claims.AccountID, claims.Role)

		return next(c)
	}
}

// GetAccountID returns the authenticated account id set by Authenticate.
func GetAccountID(c echo.Context) (uuid.UUID, bool) {
	return deliverycontext.GetAccountID(c)
}

// GetRole returns the role claim set by Authenticate.
func GetRole(c echo.Context) (string, bool) {
	return deliverycontext.GetRole(c)
}

package stubserver

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/inventoryhub/admin-console/internal/core/domain"
)

const accountContextKey = "account"

// requireAuth validates the bearer token and injects the matching account
// into the request context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if header == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return []byte(s.jwtSecret), nil
		})
		if err != nil || !token.Valid {
			return echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
		}

		username, _ := claims["sub"].(string)
		acct, ok := s.store.findAccount(username)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
		}
		if !acct.IsActive {
			return echo.NewHTTPError(http.StatusBadRequest, "Inactive user")
		}

		c.Set(accountContextKey, acct)
		return next(c)
	}
}

// currentAccount extracts the account injected by requireAuth.
func currentAccount(c echo.Context) (*account, error) {
	acct, ok := c.Get(accountContextKey).(*account)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return acct, nil
}

// requireRole rejects requests whose account role is not in the allowlist.
func requireRole(msg string, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			acct, err := currentAccount(c)
			if err != nil {
				return err
			}
			if _, ok := allowed[acct.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, msg)
			}
			return next(c)
		}
	}
}

package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/parsab/complaint-desk/internal/token"
)

// Context keys under which the auth gate stores the verified identity.
// Handlers read them back via c.Get.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// JWTAuth returns the auth gate applied to every protected route. It
// extracts the Bearer token from the Authorization header, verifies it
// through the token service and attaches the identity to the request
// context. The status split is deliberate: when no credential could be
// extracted at all the response is 401, while a credential that was
// offered but rejected (expired, forged, revoked) yields 403. No role
// check happens here; RequireRole handles that per route group.
func JWTAuth(svc *token.Service, revoked *token.RevocationList) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
			}
			raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
			}

			claims, err := svc.Verify(raw)
			if err != nil {
				if err == token.ErrExpired {
					return c.JSON(http.StatusForbidden, echo.Map{"message": "Token expired"})
				}
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Invalid token"})
			}
			if revoked.IsRevoked(c.Request().Context(), claims.UserID, claims.IssuedAt) {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Token revoked"})
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}

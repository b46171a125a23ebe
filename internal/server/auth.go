package server

import (
	"strings"

	"devconnect/internal/cache"
	"devconnect/internal/middleware"
	"devconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	localUserID      = "userID"
	localTokenID     = "tokenID"
	localTokenExpiry = "tokenExpiry"
)

// AuthRequired returns the authentication middleware. The token is read from
// "Authorization: Bearer <token>" or the legacy x-auth-token header, and its
// subject must still be an existing user.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c.Get(fiber.HeaderAuthorization))
		if tokenString == "" {
			tokenString = strings.TrimSpace(c.Get("x-auth-token"))
		}
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("No token, authorization denied"))
		}

		claims, err := s.tokens.Parse(tokenString)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}

		if claims.ID != "" {
			revoked, err := cache.IsTokenBlacklisted(c.UserContext(), claims.ID)
			if err != nil {
				middleware.Logger.WarnContext(c.UserContext(), "token blacklist lookup failed")
			}
			if revoked {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("Token has been revoked"))
			}
		}

		userID, err := claims.UserID()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Token is not valid"))
		}

		// The account may have been deleted while the token is still unexpired.
		if _, err := s.authService.CurrentUser(c.UserContext(), userID); err != nil {
			if models.IsCode(err, models.CodeNotFound) {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("Token is not valid"))
			}
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}

		c.Locals(localUserID, userID)
		c.Locals(localTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Locals(localTokenExpiry, claims.ExpiresAt.Time)
		}
		c.SetUserContext(middleware.WithUserID(c.UserContext(), userID))

		return c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

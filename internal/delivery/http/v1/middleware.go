package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/adanyl0v/taskboard/internal/services"
)

const (
	userIDCtxKey    = "user_id"
	sessionIDCtxKey = "session_id"
)

// HandleAuthMiddleware authenticates the request by its bearer access
// token. An expired access token is renewed with the refresh token
// cookie, and the new token pair is set on the response.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Error().Msg("authorization header required")
		abort(c, newUnauthorizedError("authorization header required"))
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Error().Msg("invalid authorization header")
		abort(c, newUnauthorizedError("invalid authorization header"))
		return
	}

	claims, err := h.auth.ParseJWTToken(parts[1])
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			h.logger.Error().
				Err(err).
				Msg("failed to parse token")
			abort(c, newUnauthorizedError("invalid access token"))
			return
		}

		result, ok := h.refreshSession(c)
		if !ok {
			return
		}

		claims, err = h.auth.ParseJWTToken(result.AccessToken)
		if err != nil {
			h.logger.Error().
				Err(err).
				Msg("failed to parse fresh token")
			abort(c, newUnauthorizedError("invalid access token"))
			return
		}
	}

	session, err := h.sessions.GetSessionByID(c, claims.Subject)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			h.logger.Warn().Msg("session not found")
			abort(c, newUnauthorizedError(services.ErrSessionNotFound.Error()))
			return
		}
		if errors.Is(err, services.ErrSessionExpired) {
			h.logger.Warn().Msg("session expired")
			abort(c, newUnauthorizedError(services.ErrSessionExpired.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to fetch session")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	browserFingerprint, err := generateFingerprint(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to generate fingerprint")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	if browserFingerprint != session.Fingerprint {
		h.logger.Error().
			Str("session_id", session.ID).
			Msg("fingerprint mismatch")
		abort(c, newUnauthorizedError("fingerprint mismatch"))
		return
	}

	c.Set(userIDCtxKey, session.UserID)
	c.Set(sessionIDCtxKey, session.ID)
	c.Next()
}

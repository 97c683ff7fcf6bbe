package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	ctxUserID = "userId"

	errMissingToken = "missing bearer token"
	errBadToken     = "invalid or expired token"
)

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

// requestToken reads the bearer header. Browsers cannot set headers on a
// WebSocket handshake, so upgrade requests may pass ?access_token= instead.
func requestToken(c *gin.Context) (string, bool) {
	if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
		return token, true
	}
	if websocket.IsWebSocketUpgrade(c.Request) {
		token := strings.TrimSpace(c.Query("access_token"))
		return token, token != ""
	}
	return "", false
}

// userIdMiddleware guards /api and /ws when auth is enabled and stores the
// operator id under ctxUserID.
func (h *Handler) userIdMiddleware(c *gin.Context) {
	token, ok := requestToken(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMissingToken})
		return
	}

	userID, err := h.services.Authorization.ParseToken(token)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_token_rejected", "err", err, "path", c.FullPath())
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errBadToken})
		return
	}

	c.Set(ctxUserID, userID)
	c.Next()
}

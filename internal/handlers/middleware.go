package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"todo_api/internal/models"
	"todo_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	userCtxKey      = "user"
	requestIDCtxKey = "request_id"
	requestIDHeader = "X-Request-ID"

	// accessTokenQuery carries the token on routes where clients cannot set headers.
	accessTokenQuery = "access_token"
)

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// requireUser authenticates the request and stores the resolved user on the
// context. With allowQuery the token may also come from ?access_token=.
func (h *Handler) requireUser(allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok && allowQuery {
			token = c.Query(accessTokenQuery)
			ok = token != ""
		}
		if !ok {
			abortUnauthorized(c, detailUnauthorized)
			return
		}

		userID, err := h.services.ParseToken(token)
		if err != nil {
			h.log.Debugw("auth_token_rejected", "err", err)
			abortUnauthorized(c, detailUnauthorized)
			return
		}

		user, err := h.services.CurrentUser(c.Request.Context(), userID)
		switch {
		case errors.Is(err, service.ErrNotFound):
			abortUnauthorized(c, detailUnauthorized)
			return
		case err != nil:
			h.log.Errorw("auth_user_lookup_failed", "user_id", userID, "err", err)
			abortDetail(c, http.StatusInternalServerError, detailInternal)
			return
		}

		c.Set(userCtxKey, user)
		c.Next()
	}
}

// currentUser returns the user stored by requireUser.
func currentUser(c *gin.Context) models.User {
	u, _ := c.Get(userCtxKey)
	user, _ := u.(models.User)
	return user
}

// requestLogger tags the request with an id and writes one access-log line per request.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()

	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(requestIDCtxKey, id)
	c.Header(requestIDHeader, id)

	c.Next()

	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"request_id", id,
	)
}

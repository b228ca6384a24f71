package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"todo_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	detailUnauthorized       = "Could not validate credentials"
	detailBadCredentials     = "Incorrect username or password"
	detailUsernameTaken      = "Username already registered"
	detailEmailTaken         = "Email already registered"
	detailDuplicate          = "Username or email already registered"
	detailListNotFound       = "List not found"
	detailItemNotFound       = "Item not found"
	detailUserNotFound       = "User not found"
	detailInvalidID          = "id must be a positive integer"
	detailInternal           = "internal server error"
	detailMalformedBody      = "request body must be valid JSON"
	authenticateHeaderBearer = "Bearer"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Detail string `json:"detail"`
}

func abortDetail(c *gin.Context, code int, detail string) {
	c.AbortWithStatusJSON(code, errorResponse{Detail: detail})
}

func abortUnauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", authenticateHeaderBearer)
	abortDetail(c, http.StatusUnauthorized, detail)
}

// respondError maps service errors onto status codes. notFound is the detail
// used for service.ErrNotFound. Unmapped errors are logged under event.
func (h *Handler) respondError(c *gin.Context, err error, notFound, event string, kv ...any) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		abortDetail(c, http.StatusBadRequest, verr.Error())
	case errors.Is(err, service.ErrUsernameTaken):
		abortDetail(c, http.StatusBadRequest, detailUsernameTaken)
	case errors.Is(err, service.ErrEmailTaken):
		abortDetail(c, http.StatusBadRequest, detailEmailTaken)
	case errors.Is(err, service.ErrDuplicate):
		abortDetail(c, http.StatusBadRequest, detailDuplicate)
	case errors.Is(err, service.ErrInvalidTimeRange):
		abortDetail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		abortUnauthorized(c, detailBadCredentials)
	case errors.Is(err, service.ErrInvalidToken):
		abortUnauthorized(c, detailUnauthorized)
	case errors.Is(err, service.ErrNotFound):
		abortDetail(c, http.StatusNotFound, notFound)
	default:
		h.log.Errorw(event, append(kv, "err", err)...)
		abortDetail(c, http.StatusInternalServerError, detailInternal)
	}
}

// bindJSON decodes the request body into dst and writes a 400 on failure.
// Returns false if the request was already handled.
func (h *Handler) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		abortDetail(c, http.StatusBadRequest, bindingDetail(err))
		return false
	}
	return true
}

func bindingDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return detailMalformedBody
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	default:
		return fmt.Sprintf("%s failed %q validation", field, fe.Tag())
	}
}

package handlers

import (
	"net/http"

	"todo_api/internal/models"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// @Summary      Register
// @Description  Creates an account. Username and email must be unique.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      registerRequest  true  "account"
// @Success      201    {object}  models.User
// @Failure      400    {object}  errorResponse
// @Router       /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input registerRequest
	if ok := h.bindJSON(c, &input); !ok {
		return
	}

	user, err := h.services.SignUp(c.Request.Context(), models.RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		h.log.Infow("auth_sign_up_failed", "username", input.Username, "err", err)
		h.respondError(c, err, detailUserNotFound, "auth_sign_up_error", "username", input.Username)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      loginRequest  true  "credentials"
// @Success      200    {object}  tokenResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Router       /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSON(c, &input); !ok {
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.log.Infow("auth_sign_in_failed", "username", input.Username, "err", err)
		h.respondError(c, err, detailUserNotFound, "auth_sign_in_error", "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// @Summary      Delete account
// @Description  Removes the caller together with every owned list, item and activity entry.
// @Tags         auth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [delete]
// @Security     BearerAuth
func (h *Handler) deleteMe(c *gin.Context) {
	user := currentUser(c)
	if err := h.services.DeleteAccount(c.Request.Context(), user.ID); err != nil {
		h.respondError(c, err, detailUserNotFound, "auth_delete_account_failed", "user_id", user.ID)
		return
	}
	c.Status(http.StatusNoContent)
}

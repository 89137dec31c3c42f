package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type resetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Responded regardless of whether the email exists, to avoid account
// enumeration.
const forgotPasswordMessage = "If that email is registered, a password reset link has been sent"

// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  registerRequest  true  "Credentials"
// @Success      201  {object}  map[string]interface{}  "token, user"
// @Failure      400  {object}  map[string]string
// @Router       /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input registerRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, user, err := h.services.Register(c.Request.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		h.respondError(c, err, "auth_register_failed", "email", input.Email)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  loginRequest  true  "Credentials"
// @Success      200  {object}  map[string]interface{}  "token, user"
// @Failure      401  {object}  map[string]string
// @Router       /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, user, err := h.services.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_login_failed", "email", input.Email, "err", err)
		}
		h.respondError(c, err, "auth_login_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// @Summary      Verify bearer token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /auth/verify [get]
// @Security     BearerAuth
func (h *Handler) verifyToken(c *gin.Context) {
	uid, ok := ownerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK, "user_id": uid})
}

// @Summary      Request a password reset link
// @Description  Always answers with the same generic message, whether or not the email exists.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  forgotPasswordRequest  true  "Account email"
// @Success      200  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /auth/forgot-password [post]
func (h *Handler) forgotPassword(c *gin.Context) {
	var input forgotPasswordRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	if err := h.services.RequestPasswordReset(c.Request.Context(), input.Email); err != nil {
		h.respondError(c, err, "auth_forgot_password_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": forgotPasswordMessage})
}

// @Summary      Complete a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  resetPasswordRequest  true  "Reset token and new password"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /auth/reset-password [post]
func (h *Handler) resetPassword(c *gin.Context) {
	var input resetPasswordRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	if err := h.services.ResetPassword(c.Request.Context(), input.Token, input.Password); err != nil {
		h.respondError(c, err, "auth_reset_password_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset, you can now log in"})
}

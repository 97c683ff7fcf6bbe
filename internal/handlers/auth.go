package handlers

import (
	"errors"
	"net/http"

	"solar_cleaner/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errSignUp = "failed to register operator"
	errSignIn = "failed to sign in"
)

// credentials is the sign-up and sign-in body.
type credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type signUpResponse struct {
	ID int `json:"id"`
}

type signInResponse struct {
	Token string `json:"token"`
}

// @Summary      Register an operator
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentials  true  "Credentials"
// @Success      201   {object}  signUpResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var in credentials
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	id, err := h.services.Authorization.SignUp(c.Request.Context(), in.Username, in.Password)
	switch {
	case errors.Is(err, service.ErrEmptyUsername), errors.Is(err, service.ErrEmptyPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, errSignUp, "auth_sign_up_failed", err, "username", in.Username)
	default:
		c.JSON(http.StatusCreated, signUpResponse{ID: id})
	}
}

// @Summary      Issue a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentials  true  "Credentials"
// @Success      200   {object}  signInResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var in credentials
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	token, err := h.services.Authorization.GenerateToken(c.Request.Context(), in.Username, in.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		if h.log != nil {
			h.log.Infow("auth_sign_in_rejected", "username", in.Username)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, errSignIn, "auth_sign_in_failed", err, "username", in.Username)
	default:
		c.JSON(http.StatusOK, signInResponse{Token: token})
	}
}

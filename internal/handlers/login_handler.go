package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
}

func (h *Handler) Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	principal, err := h.shop.Login(c.Request.Context(), input.Username, input.Password, input.Remember)
	if err != nil {
		h.respondError(c, "Login", err)
		return
	}

	token, err := h.tokens.GenerateToken(principal)
	if err != nil {
		h.respondError(c, "Login", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"role":     principal.Role,
		"username": principal.Username,
	})
}

// RememberedUser feeds the login screen the username saved by "remember me".
func (h *Handler) RememberedUser(c *gin.Context) {
	username, err := h.shop.RememberedUser(c.Request.Context())
	if err != nil {
		h.respondError(c, "RememberedUser", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username})
}

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-pos-inventory/internal/ai"
	"go-pos-inventory/internal/auth"
	"go-pos-inventory/internal/config"
	"go-pos-inventory/internal/models"
	"go-pos-inventory/internal/service"
)

// Handler serves the HTTP API on top of a Shop.
type Handler struct {
	shop      *service.Shop
	tokens    *auth.TokenIssuer
	assistant *ai.Agent
	log       logrus.FieldLogger
	status    SystemInfo
}

// SystemInfo is the static part of the system status report.
type SystemInfo struct {
	StorageDriver  string `json:"storage_driver"`
	BackupDir      string `json:"backup_dir,omitempty"`
	BackupInterval string `json:"backup_interval,omitempty"`
}

func New(shop *service.Shop, tokens *auth.TokenIssuer, assistant *ai.Agent, info SystemInfo, log logrus.FieldLogger) *Handler {
	return &Handler{
		shop:      shop,
		tokens:    tokens,
		assistant: assistant,
		status:    info,
		log:       log,
	}
}

// respondError maps domain errors onto HTTP statuses.
func (h *Handler) respondError(c *gin.Context, funcName string, err error) {
	var (
		invalid  *auth.InvalidCredentialsError
		locked   *auth.AccountLockedError
		lockedAt *auth.AccountLockedNowError
	)

	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":              "Invalid credentials",
			"attempts_remaining": invalid.AttemptsRemaining,
		})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.As(err, &locked):
		c.JSON(http.StatusLocked, gin.H{
			"error":             "Account is locked",
			"remaining_seconds": locked.RemainingSeconds(),
		})
	case errors.As(err, &lockedAt):
		c.JSON(http.StatusLocked, gin.H{
			"error":           "Too many failed attempts, account locked",
			"lockout_seconds": int(lockedAt.Duration.Seconds()),
		})
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrParse):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusRequestTimeout, gin.H{"error": "Request cancelled"})
	default:
		config.LogError(h.log, "handlers", funcName, "request failed", c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

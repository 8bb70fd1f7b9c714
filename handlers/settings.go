package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xwby268/BIO-LINK-2/models"
	"github.com/xwby268/BIO-LINK-2/utils"
)

type updateConfigRequest struct {
	Password string          `json:"password"`
	Settings models.Document `json:"settings"`
}

// GetConfig returns the general settings document, or {} before any admin
// has written one.
func (h *Handler) GetConfig(c *gin.Context) {
	ctx, cancel := opContext(c)
	defer cancel()

	settings, err := h.store.Settings(ctx)
	if err != nil {
		utils.Sugar.Errorf("fetch settings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if settings == nil {
		settings = models.Document{}
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateConfig upserts the settings singleton. Admin only.
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req updateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	if !h.gate.Authorize(req.Password) {
		c.String(http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := opContext(c)
	defer cancel()

	if err := h.store.UpdateSettings(ctx, req.Settings); err != nil {
		utils.Sugar.Errorf("update settings: %v", err)
		c.String(http.StatusInternalServerError, "Database error")
		return
	}
	c.String(http.StatusOK, "Updated")
}

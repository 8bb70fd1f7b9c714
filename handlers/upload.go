package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xwby268/BIO-LINK-2/uploader"
	"github.com/xwby268/BIO-LINK-2/utils"
)

const (
	maxUploadBytes = 10 << 20
	uploadTimeout  = 30 * time.Second
)

// Upload forwards a multipart file to the external file host and returns the
// public URL the host assigned.
func (h *Handler) Upload(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	// Read one byte past the cap so an oversize file is detectable instead
	// of being forwarded truncated.
	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	if len(data) > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		return
	}

	// The outbound call gets more headroom than a storage operation.
	ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancel()

	url, err := h.uploads.Upload(ctx, data)
	if errors.Is(err, uploader.ErrUnknownFileType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File type not recognized"})
		return
	}
	if err != nil {
		utils.Sugar.Errorf("upload: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

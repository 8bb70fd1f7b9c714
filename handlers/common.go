package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xwby268/BIO-LINK-2/auth"
	"github.com/xwby268/BIO-LINK-2/database"
	"github.com/xwby268/BIO-LINK-2/uploader"
)

const dbTimeout = 10 * time.Second

// Handler carries the dependencies every endpoint needs: the store, the
// admin gate and the upload client. All are constructed once in main and
// injected here.
type Handler struct {
	store   *database.Store
	gate    auth.Gate
	uploads *uploader.Client
}

func New(store *database.Store, gate auth.Gate, uploads *uploader.Client) *Handler {
	return &Handler{store: store, gate: gate, uploads: uploads}
}

// opContext bounds one storage operation, derived from the request context
// so client disconnects cancel it.
func opContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), dbTimeout)
}

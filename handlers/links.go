package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xwby268/BIO-LINK-2/models"
	"github.com/xwby268/BIO-LINK-2/utils"
)

type addLinkRequest struct {
	Password string          `json:"password"`
	Link     models.Document `json:"link"`
}

func (h *Handler) ListLinks(c *gin.Context) {
	ctx, cancel := opContext(c)
	defer cancel()

	links, err := h.store.ListLinks(ctx)
	if err != nil {
		utils.Sugar.Errorf("fetch links: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, links)
}

func (h *Handler) AddLink(c *gin.Context) {
	var req addLinkRequest
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

	if err := h.store.AddLink(ctx, req.Link); err != nil {
		utils.Sugar.Errorf("add link: %v", err)
		c.String(http.StatusInternalServerError, "Database error")
		return
	}
	c.String(http.StatusOK, "Added")
}

func (h *Handler) DeleteLink(c *gin.Context) {
	if !h.gate.Authorize(c.Query("password")) {
		c.String(http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid ID")
		return
	}

	ctx, cancel := opContext(c)
	defer cancel()

	if err := h.store.DeleteLink(ctx, id); err != nil {
		utils.Sugar.Errorf("delete link %s: %v", id.Hex(), err)
		c.String(http.StatusInternalServerError, "Database error")
		return
	}
	c.String(http.StatusOK, "Deleted")
}

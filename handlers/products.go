package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xwby268/BIO-LINK-2/models"
	"github.com/xwby268/BIO-LINK-2/utils"
)

type addProductRequest struct {
	Password string          `json:"password"`
	Product  models.Document `json:"product"`
}

func (h *Handler) ListProducts(c *gin.Context) {
	ctx, cancel := opContext(c)
	defer cancel()

	products, err := h.store.ListProducts(ctx)
	if err != nil {
		utils.Sugar.Errorf("fetch products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// AddProduct stores the caller-supplied product document verbatim. Admin
// only; no schema is enforced.
func (h *Handler) AddProduct(c *gin.Context) {
	var req addProductRequest
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

	if err := h.store.AddProduct(ctx, req.Product); err != nil {
		utils.Sugar.Errorf("add product: %v", err)
		c.String(http.StatusInternalServerError, "Database error")
		return
	}
	c.String(http.StatusOK, "Added")
}

// DeleteProduct removes a product; deleting an id that never existed still
// reports success.
func (h *Handler) DeleteProduct(c *gin.Context) {
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

	if err := h.store.DeleteProduct(ctx, id); err != nil {
		utils.Sugar.Errorf("delete product %s: %v", id.Hex(), err)
		c.String(http.StatusInternalServerError, "Database error")
		return
	}
	c.String(http.StatusOK, "Deleted")
}

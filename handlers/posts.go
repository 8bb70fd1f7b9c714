package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xwby268/BIO-LINK-2/database"
	"github.com/xwby268/BIO-LINK-2/models"
	"github.com/xwby268/BIO-LINK-2/utils"
)

type createPostRequest struct {
	Content string `json:"content"`
	Image   string `json:"image"`
	Avatar  string `json:"avatar"`
}

type likeRequest struct {
	UserID string `json:"userId"`
}

type commentRequest struct {
	Text string `json:"text"`
	User string `json:"user"`
}

// ListPosts returns the feed, newest first. A storage fault degrades to an
// empty feed instead of failing the page.
func (h *Handler) ListPosts(c *gin.Context) {
	ctx, cancel := opContext(c)
	defer cancel()

	posts, err := h.store.ListPosts(ctx)
	if err != nil {
		utils.Sugar.Errorf("fetch posts: %v", err)
		c.JSON(http.StatusOK, []models.Post{})
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	c.JSON(http.StatusOK, posts)
}

func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Content is required")
		return
	}

	ctx, cancel := opContext(c)
	defer cancel()

	post, err := h.store.CreatePost(ctx, models.Post{
		Content: req.Content,
		Image:   req.Image,
		Avatar:  req.Avatar,
	})
	if errors.Is(err, database.ErrContentRequired) {
		c.String(http.StatusBadRequest, "Content is required")
		return
	}
	if err != nil {
		utils.Sugar.Errorf("create post: %v", err)
		c.String(http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, post)
}

// ToggleLike flips the caller's membership in the post's like set and
// returns the updated set.
func (h *Handler) ToggleLike(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "Post not found")
		return
	}

	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := opContext(c)
	defer cancel()

	likes, err := h.store.ToggleLike(ctx, id, req.UserID)
	if errors.Is(err, database.ErrPostNotFound) {
		c.String(http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		utils.Sugar.Errorf("toggle like on %s: %v", id.Hex(), err)
		c.String(http.StatusInternalServerError, "Error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

func (h *Handler) AddComment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid ID")
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := opContext(c)
	defer cancel()

	comment, err := h.store.AddComment(ctx, id, req.Text, req.User)
	if err != nil {
		utils.Sugar.Errorf("add comment to %s: %v", id.Hex(), err)
		c.String(http.StatusInternalServerError, "Error")
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeletePost removes a post. Admin only; the password travels as a query
// parameter on deletes.
func (h *Handler) DeletePost(c *gin.Context) {
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

	if err := h.store.DeletePost(ctx, id); err != nil {
		utils.Sugar.Errorf("delete post %s: %v", id.Hex(), err)
		c.String(http.StatusInternalServerError, "Database error")
		return
	}
	c.String(http.StatusOK, "Deleted")
}

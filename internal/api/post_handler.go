package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RaevaDesai/CommunityFund/internal/core"
	"github.com/RaevaDesai/CommunityFund/internal/models"
)

// PostHandler exposes fundraiser update posts.
type PostHandler struct {
	posts  core.PostService
	logger *zap.Logger
}

func NewPostHandler(posts core.PostService, logger *zap.Logger) *PostHandler {
	return &PostHandler{posts: posts, logger: logger}
}

// Create appends an update post to a fundraiser. Only the fundraiser's
// creator may post.
func (h *PostHandler) Create(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	post, err := h.posts.Append(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// List returns a fundraiser's posts, newest first.
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.posts.ListByFundraiser(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Stream streams a fundraiser's posts as server-sent events.
func (h *PostHandler) Stream(c *gin.Context) {
	v := h.posts.WatchByFundraiser(c.Request.Context(), c.Param("id"))
	streamValue(c, v, "posts")
}

package handlers

import (
	"context"
	"net/http"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// CommentStore is the comment store as seen by CommentHandler
type CommentStore interface {
	Create(ctx context.Context, userID uint, req models.CreateCommentRequest) (*models.CommentResponse, error)
	ByPost(ctx context.Context, postID uint) ([]models.CommentResponse, error)
	Delete(ctx context.Context, id, userID uint) error
}

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	comments CommentStore
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments CommentStore) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// RegisterCommentRoutes registers comment routes on the /comments group
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("", h.CreateComment)
	g.GET("/post/:postId", h.GetCommentsForPost)
	g.DELETE("/:id", h.DeleteComment)
}

func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, err := queryID(c, "userId")
	if err != nil {
		return err
	}
	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	comment, err := h.comments.Create(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsForPost returns the comments of a post, oldest first
func (h *CommentHandler) GetCommentsForPost(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return err
	}
	comments, err := h.comments.ByPost(c.Request().Context(), postID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	userID, err := queryID(c, "userId")
	if err != nil {
		return err
	}
	if err := h.comments.Delete(c.Request().Context(), id, userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

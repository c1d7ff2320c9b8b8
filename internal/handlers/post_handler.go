package handlers

import (
	"context"
	"net/http"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// ContentStore is the post store as seen by PostHandler
type ContentStore interface {
	Create(ctx context.Context, userID uint, content string) (*models.PostResponse, error)
	List(ctx context.Context) ([]models.PostResponse, error)
	Get(ctx context.Context, id uint) (*models.PostResponse, error)
	ByAuthor(ctx context.Context, userID uint) ([]models.PostResponse, error)
	Update(ctx context.Context, id, userID uint, content string) (*models.PostResponse, error)
	Delete(ctx context.Context, id, userID uint) error
}

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	posts ContentStore
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts ContentStore) *PostHandler {
	return &PostHandler{posts: posts}
}

// RegisterPostRoutes registers post routes on the /posts group.
// Mutations name the acting user with ?userId=.
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("", h.CreatePost)
	g.GET("", h.GetPosts)
	g.GET("/:id", h.GetPost)
	g.GET("/user/:userId", h.GetPostsByUser)
	g.PUT("/:id", h.UpdatePost)
	g.DELETE("/:id", h.DeletePost)
}

func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := queryID(c, "userId")
	if err != nil {
		return err
	}
	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	post, err := h.posts.Create(c.Request().Context(), userID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPosts returns every post, newest first
func (h *PostHandler) GetPosts(c echo.Context) error {
	posts, err := h.posts.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	post, err := h.posts.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

func (h *PostHandler) GetPostsByUser(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	posts, err := h.posts.ByAuthor(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) UpdatePost(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	userID, err := queryID(c, "userId")
	if err != nil {
		return err
	}
	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	post, err := h.posts.Update(c.Request().Context(), id, userID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	userID, err := queryID(c, "userId")
	if err != nil {
		return err
	}
	if err := h.posts.Delete(c.Request().Context(), id, userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

package handlers

import (
	"context"
	"net/http"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// EngagementLedger is the like store as seen by LikeHandler
type EngagementLedger interface {
	Like(ctx context.Context, userID, postID uint) (*models.Like, error)
	Unlike(ctx context.Context, userID, postID uint) error
	CountLikes(ctx context.Context, postID uint) (int64, error)
	HasLiked(ctx context.Context, userID, postID uint) (bool, error)
}

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	ledger EngagementLedger
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(ledger EngagementLedger) *LikeHandler {
	return &LikeHandler{ledger: ledger}
}

// RegisterLikeRoutes registers like-related routes on the /likes group
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("", h.LikePost)
	g.DELETE("", h.UnlikePost)
	g.GET("/count/:postId", h.GetLikesCountForPost)
	g.GET("/status", h.GetUserLikeStatusForPost)
}

// LikePost handles liking a post
func (h *LikeHandler) LikePost(c echo.Context) error {
	var req models.LikeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if _, err := h.ledger.Like(c.Request().Context(), req.UserID, req.PostID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UnlikePost handles removing a like
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	var req models.LikeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.ledger.Unlike(c.Request().Context(), req.UserID, req.PostID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LikeHandler) GetLikesCountForPost(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return err
	}
	count, err := h.ledger.CountLikes(c.Request().Context(), postID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, count)
}

// GetUserLikeStatusForPost answers /likes/status?userId=&postId=
func (h *LikeHandler) GetUserLikeStatusForPost(c echo.Context) error {
	userID, err := queryID(c, "userId")
	if err != nil {
		return err
	}
	postID, err := queryID(c, "postId")
	if err != nil {
		return err
	}
	liked, err := h.ledger.HasLiked(c.Request().Context(), userID, postID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.LikeStatus{UserID: userID, PostID: postID, Liked: liked})
}

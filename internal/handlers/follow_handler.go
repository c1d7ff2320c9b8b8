package handlers

import (
	"context"
	"net/http"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// FollowGraph is the follow graph as seen by FollowHandler
type FollowGraph interface {
	Follow(ctx context.Context, followerID, followedID uint) (*models.Follow, error)
	Unfollow(ctx context.Context, followerID, followedID uint) error
	Followers(ctx context.Context, userID uint) ([]models.User, error)
	Following(ctx context.Context, userID uint) ([]models.User, error)
	CountFollowers(ctx context.Context, userID uint) (int64, error)
	CountFollowing(ctx context.Context, userID uint) (int64, error)
	IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error)
}

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	graph FollowGraph
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(graph FollowGraph) *FollowHandler {
	return &FollowHandler{graph: graph}
}

// RegisterFollowRoutes registers follow-related routes on the /follows group
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("", h.Follow)
	g.DELETE("", h.Unfollow)
	g.GET("/followers/:userId", h.GetFollowers)
	g.GET("/following/:userId", h.GetFollowing)
	g.GET("/followers/count/:userId", h.CountFollowers)
	g.GET("/following/count/:userId", h.CountFollowing)
	g.GET("/status", h.GetFollowStatus)
}

// Follow creates a follow edge
func (h *FollowHandler) Follow(c echo.Context) error {
	var req models.FollowRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if _, err := h.graph.Follow(c.Request().Context(), req.FollowerID, req.FollowedID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Unfollow removes a follow edge
func (h *FollowHandler) Unfollow(c echo.Context) error {
	var req models.FollowRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.graph.Unfollow(c.Request().Context(), req.FollowerID, req.FollowedID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FollowHandler) GetFollowers(c echo.Context) error {
	return h.listUsers(c, h.graph.Followers)
}

func (h *FollowHandler) GetFollowing(c echo.Context) error {
	return h.listUsers(c, h.graph.Following)
}

func (h *FollowHandler) CountFollowers(c echo.Context) error {
	return h.count(c, h.graph.CountFollowers)
}

func (h *FollowHandler) CountFollowing(c echo.Context) error {
	return h.count(c, h.graph.CountFollowing)
}

// GetFollowStatus answers /follows/status?followerId=&followedId=
func (h *FollowHandler) GetFollowStatus(c echo.Context) error {
	followerID, err := queryID(c, "followerId")
	if err != nil {
		return err
	}
	followedID, err := queryID(c, "followedId")
	if err != nil {
		return err
	}
	following, err := h.graph.IsFollowing(c.Request().Context(), followerID, followedID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.FollowStatus{FollowerID: followerID, FollowedID: followedID, Following: following})
}

func (h *FollowHandler) listUsers(c echo.Context, list func(context.Context, uint) ([]models.User, error)) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	users, err := list(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.ToUserResponses(users))
}

func (h *FollowHandler) count(c echo.Context, count func(context.Context, uint) (int64, error)) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	n, err := count(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}

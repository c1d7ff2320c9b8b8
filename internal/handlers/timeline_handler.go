package handlers

import (
	"context"
	"net/http"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// TimelineAssembler builds a user's feed
type TimelineAssembler interface {
	GetTimeline(ctx context.Context, userID uint) ([]models.PostResponse, error)
}

// TimelineHandler serves personalized feeds
type TimelineHandler struct {
	timeline TimelineAssembler
}

// NewTimelineHandler creates a new TimelineHandler
func NewTimelineHandler(timeline TimelineAssembler) *TimelineHandler {
	return &TimelineHandler{timeline: timeline}
}

// RegisterTimelineRoutes registers the timeline route
func (h *TimelineHandler) RegisterTimelineRoutes(e *echo.Echo) {
	e.GET("/timeline/:userId", h.GetTimeline)
}

// GetTimeline returns the user's posts and those of everyone they follow, newest first
func (h *TimelineHandler) GetTimeline(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	posts, err := h.timeline.GetTimeline(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

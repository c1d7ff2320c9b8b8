package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// NotificationInbox is the notification store as seen by NotificationHandler
type NotificationInbox interface {
	List(ctx context.Context, userID uint, limit int) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
}

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	inbox NotificationInbox
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(inbox NotificationInbox) *NotificationHandler {
	return &NotificationHandler{inbox: inbox}
}

// RegisterNotificationRoutes registers notification routes on the /notifications group
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/:userId", h.GetNotifications)
	g.PUT("/:userId/read", h.MarkAllAsRead)
}

// GetNotifications returns the newest notifications, ?limit= caps the count
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
	}
	notifications, err := h.inbox.List(c.Request().Context(), userID, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	updated, err := h.inbox.MarkAllRead(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": updated})
}

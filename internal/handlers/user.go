package handlers

import (
	"context"
	"net/http"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// UserDirectory is the identity store as seen by UserHandler
type UserDirectory interface {
	Register(ctx context.Context, req models.RegisterUserRequest) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	GetProfile(ctx context.Context, id uint) (*models.UserProfile, error)
	UpdateEmail(ctx context.Context, id uint, email string) (*models.User, error)
	Delete(ctx context.Context, id uint) error
}

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	users UserDirectory
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users UserDirectory) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterUserRoutes registers user routes on the /users group
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.GET("", h.ListUsers)
	g.GET("/:id", h.GetUser)
	g.PUT("/:id/email", h.UpdateEmail)
	g.DELETE("/:id", h.DeleteUser)
}

func (h *UserHandler) Register(c echo.Context) error {
	var req models.RegisterUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.users.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user.ToResponse())
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.ToUserResponses(users))
}

// GetUser returns the profile with follower and following counts
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	profile, err := h.users.GetProfile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UpdateEmail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdateEmailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.users.UpdateEmail(c.Request().Context(), id, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user.ToResponse())
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const serviceName = "socialgraph"

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
	})
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/anonto42/socialgraph/backend/pkg/apperrors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
}

const internalErrorMessage = "an unexpected error occurred"

// NewHTTPErrorHandler maps service errors to status codes and writes an
// ErrorResponse. Unexpected failures are logged with their cause and
// answered with a generic message.
func NewHTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err)
		body.Path = c.Request().URL.Path

		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", body.Path),
				zap.Error(err),
			)
		} else {
			log.Debug("request rejected",
				zap.String("method", c.Request().Method),
				zap.String("path", body.Path),
				zap.Int("status", status),
				zap.String("reason", body.Message),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			log.Warn("write error response", zap.Error(writeErr))
		}
	}
}

func errorResponse(err error) (int, ErrorResponse) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		body := ErrorResponse{Message: appErr.Message, Timestamp: appErr.Timestamp}
		switch appErr.Kind {
		case apperrors.KindNotFound:
			return http.StatusNotFound, body
		case apperrors.KindInvalidOperation, apperrors.KindConflict:
			return http.StatusBadRequest, body
		case apperrors.KindForbidden:
			return http.StatusForbidden, body
		}
		body.Message = internalErrorMessage
		return http.StatusInternalServerError, body
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg := fmt.Sprint(httpErr.Message)
		if httpErr.Code >= http.StatusInternalServerError {
			msg = internalErrorMessage
		}
		return httpErr.Code, ErrorResponse{Message: msg, Timestamp: time.Now()}
	}

	return http.StatusInternalServerError, ErrorResponse{Message: internalErrorMessage, Timestamp: time.Now()}
}

// pathID parses a numeric path parameter
func pathID(c echo.Context, name string) (uint, error) {
	return parseID(c.Param(name), name)
}

// queryID parses a required numeric query parameter
func queryID(c echo.Context, name string) (uint, error) {
	return parseID(c.QueryParam(name), name)
}

func parseID(raw, name string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
	}
	return uint(id), nil
}

// normalizer is implemented by request bodies that clean their fields up
// before validation
type normalizer interface {
	Normalize()
}

// bindAndValidate decodes the request body into req, normalizes it and runs c.Validate on it
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if n, ok := req.(normalizer); ok {
		n.Normalize()
	}
	return c.Validate(req)
}

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationEndpoints(t *testing.T) {
	s := newTestServer(t)
	alice := s.mustUser(t, "alice")
	bob := s.mustUser(t, "bob")

	rec := s.do(t, http.MethodPost, "/follows", followBody(alice, bob))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/notifications/%d", bob), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var notifications []models.Notification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notifications))
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeFollow, notifications[0].Type)
	assert.False(t, notifications[0].IsRead)

	rec = s.do(t, http.MethodPut, fmt.Sprintf("/notifications/%d/read", bob), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"updated":1}`, rec.Body.String())

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/notifications/%d?limit=abc", bob), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/notifications/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineEndpoint(t *testing.T) {
	s := newTestServer(t)
	a := s.mustUser(t, "alice")
	b := s.mustUser(t, "bob")

	t1 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.mustPostAt(t, a, "hello", t1)
	s.mustPostAt(t, b, "world", t1.Add(time.Second))

	rec := s.do(t, http.MethodPost, "/follows", followBody(a, b))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/timeline/%d", a), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var timeline []models.PostResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &timeline))
	require.Len(t, timeline, 2)
	assert.Equal(t, "world", timeline[0].Content)
	assert.Equal(t, "bob", timeline[0].Username)
	assert.Equal(t, b, timeline[0].AuthorID)
	assert.Equal(t, "hello", timeline[1].Content)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.ElementsMatch(t, []string{"id", "authorId", "username", "content", "createdAt"}, keys(raw[0]))

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/timeline/%d", b), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &timeline))
	require.Len(t, timeline, 1)
	assert.Equal(t, "world", timeline[0].Content)

	rec = s.do(t, http.MethodGet, "/timeline/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "/timeline/999", decodeError(t, rec).Path)
}

func TestTimelineEmpty(t *testing.T) {
	s := newTestServer(t)
	a := s.mustUser(t, "alice")

	rec := s.do(t, http.MethodGet, fmt.Sprintf("/timeline/%d", a), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

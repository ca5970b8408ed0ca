package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpetter01/bioinformatics-hub/schema"
	"github.com/rpetter01/bioinformatics-hub/store"
)

// newTestServer wires a server over the file backend in a temp
// directory, with the JWKS test kit as identity provider. Job routes
// are not exercised here; they are covered by the store suites.
func newTestServer(t *testing.T) (*Server, *authTestKit) {
	t.Helper()

	fileStore, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	kit := newAuthTestKit(t)
	s := NewServer(kit.verifier, fileStore, nil, fileStore, fileStore, fileStore, "http://localhost:3000")
	return s, kit
}

func (s *Server) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	s, _ := newTestServer(t)

	w := s.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func TestAuthProfile(t *testing.T) {
	s, kit := newTestServer(t)

	w := s.do(http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// a valid token without admin permission is enough for the profile
	token := kit.signToken(t, tokenOptions{permissions: []string{"read:stats"}})
	w = s.do(http.MethodGet, "/api/auth/profile", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var profile struct {
		Subject     string   `json:"subject"`
		Permissions []string `json:"permissions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "auth0|tester", profile.Subject)
	assert.Equal(t, []string{"read:stats"}, profile.Permissions)
}

func TestResourceLifecycle(t *testing.T) {
	s, kit := newTestServer(t)
	admin := kit.signToken(t, tokenOptions{permissions: []string{AdminPermission}})

	// unauthenticated create is rejected before reaching the store
	w := s.do(http.MethodPost, "/api/resources", "", map[string]interface{}{"name": "X"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/resources", admin, map[string]interface{}{
		"name":        "BLAST",
		"description": "Sequence alignment search",
		"category":    "tool",
		"url":         "https://blast.ncbi.nlm.nih.gov",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created schema.Resource
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Featured)
	assert.Equal(t, 0, created.Popularity)
	assert.Equal(t, []string{}, created.Tags)
	assert.Equal(t, time.Now().Format("2006-01-02"), created.LastUpdated)

	w = s.do(http.MethodGet, "/api/resources/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched schema.Resource
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created, fetched)

	// partial update keeps everything the request does not mention
	w = s.do(http.MethodPut, "/api/resources/"+created.ID, admin, map[string]interface{}{
		"name": "BLAST+",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated schema.Resource
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "BLAST+", updated.Name)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.URL, updated.URL)

	w = s.do(http.MethodDelete, "/api/resources/"+created.ID, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/resources/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResourceValidationErrors(t *testing.T) {
	s, kit := newTestServer(t)
	admin := kit.signToken(t, tokenOptions{permissions: []string{AdminPermission}})

	w := s.do(http.MethodPost, "/api/resources", admin, map[string]interface{}{
		"name": "BLAST",
		"url":  "https://blast.ncbi.nlm.nih.gov",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/resources", admin, map[string]interface{}{
		"name":        "BLAST",
		"description": "Sequence alignment search",
		"category":    "miscellaneous",
		"url":         "https://blast.ncbi.nlm.nih.gov",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/resources/no-such-id", admin, map[string]interface{}{"name": "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodDelete, "/api/resources/no-such-id", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStoreButtonConfig(t *testing.T) {
	s, kit := newTestServer(t)
	admin := kit.signToken(t, tokenOptions{permissions: []string{AdminPermission}})

	w := s.do(http.MethodGet, "/api/config/store-button", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// replace is whole-object: leaving out enabled is an error even if
	// the intent was "keep it as is"
	w = s.do(http.MethodPut, "/api/config/store-button", admin, map[string]interface{}{
		"text": "Buy lab merch",
		"url":  "https://shop.example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/config/store-button", admin, map[string]interface{}{
		"text":    "Buy lab merch",
		"url":     "https://shop.example.com",
		"enabled": false,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var button schema.StoreButton
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &button))
	assert.False(t, button.Enabled)
	assert.Equal(t, "Buy lab merch", button.Text)

	w = s.do(http.MethodPut, "/api/config/store-button", "", map[string]interface{}{
		"text": "t", "url": "u", "enabled": true,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTagRoutes(t *testing.T) {
	s, kit := newTestServer(t)
	admin := kit.signToken(t, tokenOptions{permissions: []string{AdminPermission}})

	w := s.do(http.MethodGet, "/api/tags", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	// write routes are admin-gated no-ops
	w = s.do(http.MethodPost, "/api/tags", "", map[string]interface{}{"name": "genomics"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/tags", admin, map[string]interface{}{"name": "genomics"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/tags", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestAnalyticsRoutes(t *testing.T) {
	s, kit := newTestServer(t)
	admin := kit.signToken(t, tokenOptions{permissions: []string{AdminPermission}})

	// the record endpoints are public
	for i := 0; i < 2; i++ {
		w := s.do(http.MethodPost, "/api/analytics/page-view", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := s.do(http.MethodPost, "/api/analytics/search", "", map[string]interface{}{"term": "BLAST"})
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodPost, "/api/analytics/search", "", map[string]interface{}{"term": "blast"})
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodPost, "/api/analytics/resource-click", "", map[string]interface{}{
		"resourceId": "id-1", "resourceName": "BLAST",
	})
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodPost, "/api/analytics/store-button-click", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// validation failures
	w = s.do(http.MethodPost, "/api/analytics/search", "", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(http.MethodPost, "/api/analytics/resource-click", "", map[string]interface{}{
		"resourceId": "id-1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// the aggregate itself is admin-only
	w = s.do(http.MethodGet, "/api/analytics", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	viewer := kit.signToken(t, tokenOptions{permissions: []string{"read:stats"}})
	w = s.do(http.MethodGet, "/api/analytics", viewer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/analytics", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var analytics schema.Analytics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &analytics))
	require.Len(t, analytics.PageViews, 1)
	assert.Equal(t, 2, analytics.PageViews[0].Count)
	require.Len(t, analytics.PopularSearches, 1)
	assert.Equal(t, 2, analytics.PopularSearches[0].Count)
	require.Len(t, analytics.ResourceClicks, 1)
	assert.Equal(t, 1, analytics.ResourceClicks[0].Clicks)
	assert.Equal(t, 1, analytics.StoreButtonClicks)
}

func TestListResourcesPublic(t *testing.T) {
	s, kit := newTestServer(t)
	admin := kit.signToken(t, tokenOptions{permissions: []string{AdminPermission}})

	for i := 0; i < 3; i++ {
		w := s.do(http.MethodPost, "/api/resources", admin, map[string]interface{}{
			"name":        fmt.Sprintf("resource-%d", i),
			"description": "d",
			"category":    "database",
			"url":         fmt.Sprintf("https://example.com/%d", i),
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := s.do(http.MethodGet, "/api/resources", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resources []schema.Resource
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resources))
	assert.Len(t, resources, 3)
}

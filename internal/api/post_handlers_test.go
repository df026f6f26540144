package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-backend/internal/auth"
	"inkwell-backend/internal/database"
	"inkwell-backend/internal/models"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.Open(database.Config{Path: dbPath}))
	t.Cleanup(func() { database.Close() })

	// Fresh limiter so attempts don't accumulate across tests
	auth.LoginRateLimiter = auth.DefaultRateLimiter()

	e := echo.New()
	RegisterRoutes(e.Group("/api"), auth.NewService(time.Hour))
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, e *echo.Echo, username, password string) string {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, e, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func listPosts(t *testing.T, e *echo.Echo) []models.Post {
	t.Helper()
	rec := doJSON(t, e, http.MethodGet, "/api/posts", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	return posts
}

func TestPostLifecycle(t *testing.T) {
	e := newTestServer(t)
	token := registerAndLogin(t, e, "alice", "pw123")

	// Create
	rec := doJSON(t, e, http.MethodPost, "/api/posts", token, map[string]string{
		"title": "Hello", "description": "", "body": "World",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// Listing contains exactly one post by alice
	posts := listPosts(t, e)
	require.Len(t, posts, 1)
	assert.Equal(t, "Hello", posts[0].Title)
	assert.Equal(t, "alice", posts[0].Author)

	// Update
	rec = doJSON(t, e, http.MethodPut, "/api/posts/"+created.ID, token, map[string]string{
		"title": "Hello2", "description": "", "body": "World",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	posts = listPosts(t, e)
	require.Len(t, posts, 1)
	assert.Equal(t, "Hello2", posts[0].Title)

	// Delete
	rec = doJSON(t, e, http.MethodDelete, "/api/posts/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Empty(t, listPosts(t, e))
}

func TestMutationsRequireOwnership(t *testing.T) {
	e := newTestServer(t)
	aliceToken := registerAndLogin(t, e, "alice", "pw123")

	rec := doJSON(t, e, http.MethodPost, "/api/posts", aliceToken, map[string]string{
		"title": "Hello2", "body": "World",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var post models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))

	bobToken := registerAndLogin(t, e, "bob", "hunter2")

	rec = doJSON(t, e, http.MethodPut, "/api/posts/"+post.ID, bobToken, map[string]string{
		"title": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, e, http.MethodDelete, "/api/posts/"+post.ID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The post is unchanged
	posts := listPosts(t, e)
	require.Len(t, posts, 1)
	assert.Equal(t, "Hello2", posts[0].Title)
	assert.Equal(t, "alice", posts[0].Author)
}

func TestMutationsRequireAuth(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/posts", "", map[string]string{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, e, http.MethodPut, "/api/posts/some-id", "", map[string]string{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, e, http.MethodDelete, "/api/posts/some-id", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReadsArePublic(t *testing.T) {
	e := newTestServer(t)
	token := registerAndLogin(t, e, "alice", "pw123")

	rec := doJSON(t, e, http.MethodPost, "/api/posts", token, map[string]string{"title": "Open"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var post models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))

	// No token on either read
	rec = doJSON(t, e, http.MethodGet, "/api/posts/"+post.ID, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Len(t, listPosts(t, e), 1)
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	e := newTestServer(t)
	token := registerAndLogin(t, e, "alice", "pw123")

	rec := doJSON(t, e, http.MethodPost, "/api/posts", token, map[string]string{
		"title": "", "description": "d", "body": "b",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Nothing persisted
	assert.Empty(t, listPosts(t, e))
}

func TestUpdateRejectsBlankTitle(t *testing.T) {
	e := newTestServer(t)
	token := registerAndLogin(t, e, "alice", "pw123")

	rec := doJSON(t, e, http.MethodPost, "/api/posts", token, map[string]string{"title": "Keep"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var post models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))

	rec = doJSON(t, e, http.MethodPut, "/api/posts/"+post.ID, token, map[string]string{"title": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	posts := listPosts(t, e)
	require.Len(t, posts, 1)
	assert.Equal(t, "Keep", posts[0].Title)
}

func TestMissingPostIs404(t *testing.T) {
	e := newTestServer(t)
	token := registerAndLogin(t, e, "alice", "pw123")

	rec := doJSON(t, e, http.MethodGet, "/api/posts/no-such-id", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, e, http.MethodPut, "/api/posts/no-such-id", token, map[string]string{"title": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, e, http.MethodDelete, "/api/posts/no-such-id", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"jobboard/database"
	"jobboard/logger"
	"jobboard/web/middleware"

	"github.com/gin-gonic/gin"
	logging "github.com/op/go-logging"
	"github.com/stretchr/testify/require"
)

var loggerOnce sync.Once

// setup boots a fresh database and an API router matching the
// production route layout, minus the rate limiter.
func setup(t *testing.T) *gin.Engine {
	t.Helper()
	loggerOnce.Do(func() {
		logger.InitLogger(logging.DEBUG)
	})
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.InitDB(dbPath))
	t.Cleanup(func() {
		_ = database.CloseDB()
	})

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.Auth())
	api := engine.Group("/api")
	NewUserController(api.Group("/users"), nil)
	NewCategoryController(api.Group("/categories"))
	NewJobController(api.Group("/jobs"))
	NewApplicationController(api.Group("/applications"))
	NewServerController(api.Group("/server"))
	return engine
}

func request(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerUser registers through the API and returns the token.
func registerUser(t *testing.T, router *gin.Engine, username, role string) string {
	t.Helper()
	body := map[string]any{
		"username":         username,
		"email":            username + "@example.com",
		"password":         "password123",
		"password_confirm": "password123",
		"role":             role,
	}
	if role == "EMPLOYER" {
		body["company_name"] = username + " GmbH"
	}
	w := request(t, router, http.MethodPost, "/api/users/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	token, ok := decode(t, w)["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

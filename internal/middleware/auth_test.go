package middleware

import (
	"codequest_backend/internal/config"
	"codequest_backend/internal/model"
	"codequest_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(cfg *config.Config, sessions *util.SessionManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/login", func(c *gin.Context) {
		sessions.Login(c.Writer, c.Request, "session-user", "s@example.com")
		c.Status(http.StatusNoContent)
	})

	protected := router.Group("/api")
	protected.Use(AuthMiddleware(cfg, sessions))
	protected.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, util.GetUserFromContext(c).UserID)
	})
	return router
}

func testConfig() *config.Config {
	return &config.Config{
		JWT:     config.JWTConfig{Secret: "test-secret"},
		Session: config.SessionConfig{Name: "test_session", Secret: "session-secret-for-tests-0123456789", Path: "/", MaxAge: 3600, HttpOnly: true},
	}
}

func TestAuthMiddlewareRejectsAnonymous(t *testing.T) {
	cfg := testConfig()
	router := newAuthRouter(cfg, util.NewSessionManager(cfg.Session))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareBearerToken(t *testing.T) {
	cfg := testConfig()
	router := newAuthRouter(cfg, util.NewSessionManager(cfg.Session))

	user := &model.User{Email: "b@example.com"}
	user.ID = "bearer-user"
	token, err := util.GenerateJWT(user, cfg.JWT.Secret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bearer-user", w.Body.String())

	// 错误签名的令牌不回落到会话
	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareSessionCookie(t *testing.T) {
	cfg := testConfig()
	router := newAuthRouter(cfg, util.NewSessionManager(cfg.Session))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "session-user", w.Body.String())
}

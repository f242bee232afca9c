package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tastehub/pkg/models"
)

type fakeAuthService struct {
	user *models.User
}

func (f *fakeAuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	return nil, models.ErrInvalidInput
}

func (f *fakeAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	return nil, models.ErrInvalidCredentials
}

func (f *fakeAuthService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	if f.user != nil && token == "valid-token" {
		return f.user, nil
	}
	return nil, models.ErrInvalidToken
}

func testRouter(authSvc *fakeAuthService, middleware gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/probe", middleware, func(c *gin.Context) {
		id, _ := GetUserID(c)
		c.JSON(200, gin.H{"user_id": id})
	})
	return router
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	router := testRouter(&fakeAuthService{}, AuthMiddleware(&fakeAuthService{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	router := testRouter(&fakeAuthService{}, AuthMiddleware(&fakeAuthService{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	authSvc := &fakeAuthService{user: &models.User{ID: 7, Username: "alex", Role: models.UserRoleUser}}
	router := testRouter(authSvc, AuthMiddleware(authSvc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	router.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	authSvc := &fakeAuthService{}
	router := testRouter(authSvc, OptionalAuth(authSvc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":0`)
}

func TestOptionalAuthToleratesBadToken(t *testing.T) {
	authSvc := &fakeAuthService{}
	router := testRouter(authSvc, OptionalAuth(authSvc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	router.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":0`)
}

func TestOptionalAuthResolvesViewer(t *testing.T) {
	authSvc := &fakeAuthService{user: &models.User{ID: 9, Username: "casey", Role: models.UserRoleUser}}
	router := testRouter(authSvc, OptionalAuth(authSvc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	router.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":9`)
}

func TestAdminMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	authSvc := &fakeAuthService{user: &models.User{ID: 7, Username: "alex", Role: models.UserRoleUser}}
	router := gin.New()
	router.GET("/admin", AuthMiddleware(authSvc), AdminMiddleware(), func(c *gin.Context) {
		c.Status(200)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	router.ServeHTTP(w, req)
	assert.Equal(t, 403, w.Code)

	authSvc.user.Role = models.UserRoleAdmin
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/limited", rateLimitMiddleware(1, 2), func(c *gin.Context) {
		c.Status(200)
	})

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, 200, codes[0])
	assert.Equal(t, 200, codes[1])
	assert.Equal(t, 429, codes[2])
	assert.Equal(t, 429, codes[3])
}

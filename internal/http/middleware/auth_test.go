package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	userRepos "github.com/Haider077/CallingJournal/internal/data/repos/user"
	"github.com/Haider077/CallingJournal/internal/platform/ctxutil"
	"github.com/Haider077/CallingJournal/internal/services"
	"github.com/Haider077/CallingJournal/internal/testutil"
)

func newTestAuth(t *testing.T) (*AuthMiddleware, services.AuthService) {
	t.Helper()
	gdb := testutil.OpenDB(t)
	log := testutil.NewLogger(t)
	authService := services.NewAuthService(
		gdb,
		log,
		userRepos.NewUserRepo(gdb, log),
		services.NewPasswordService(log),
		services.NewTokenService(log, "unit-test-secret", services.DefaultAccessTTL),
	)
	return NewAuthMiddleware(log, authService), authService
}

func authedRouter(am *AuthMiddleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(am.RequireAuth())
	r.GET("/whoami", func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"email": rd.Email})
	})
	return r
}

func TestRequireAuth_ValidToken(t *testing.T) {
	am, authService := newTestAuth(t)
	ctx := context.Background()
	if _, err := authService.RegisterUser(ctx, "alice@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	token, err := authService.LoginUser(ctx, "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	r := authedRouter(am)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with a valid token, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireAuth_RejectsMissingAndBadTokens(t *testing.T) {
	am, _ := newTestAuth(t)
	r := authedRouter(am)

	for _, header := range []string{"", "Bearer garbage", "Basic dXNlcjpwYXNz"} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}

func TestExtractBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc.def.ghi", "abc.def.ghi"},
		{"Bearer   spaced-token  ", "spaced-token"},
		{"Basic dXNlcjpwYXNz", ""},
		{"Bearer", ""},
		{"", ""},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/entries/", nil)
		if tc.header != "" {
			c.Request.Header.Set("Authorization", tc.header)
		}
		if got := extractBearerToken(c); got != tc.want {
			t.Fatalf("header %q: expected %q, got %q", tc.header, tc.want, got)
		}
	}
}

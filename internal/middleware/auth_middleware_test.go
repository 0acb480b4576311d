package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"storecrm_backend/internal/middleware"
	"storecrm_backend/internal/models"
	"storecrm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthTestRouter(t *testing.T, roles ...string) *gin.Engine {
	t.Helper()
	engine := gin.New()
	group := engine.Group("/protected")
	group.Use(middleware.AuthMiddleware())
	if len(roles) > 0 {
		group.Use(middleware.RoleAuthMiddleware(roles...))
	}
	group.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64("userID")})
	})
	return engine
}

func doRequest(engine *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddlewareRequiresHeader(t *testing.T) {
	engine := newAuthTestRouter(t)
	if rec := doRequest(engine, ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("status without header = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	engine := newAuthTestRouter(t)
	if rec := doRequest(engine, "not-a-token"); rec.Code != http.StatusUnauthorized {
		t.Errorf("status with garbage token = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareAcceptsAccessToken(t *testing.T) {
	token, err := utils.GenerateAccessToken(42, "budi", models.LevelOperator)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	engine := newAuthTestRouter(t)
	if rec := doRequest(engine, token); rec.Code != http.StatusOK {
		t.Errorf("status with access token = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
}

func TestAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	token, err := utils.GenerateRefreshToken(42)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	engine := newAuthTestRouter(t)
	if rec := doRequest(engine, token); rec.Code != http.StatusUnauthorized {
		t.Errorf("status with refresh token = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRoleAuthMiddleware(t *testing.T) {
	cases := []struct {
		name    string
		role    string
		allowed []string
		want    int
	}{
		{"admin allowed", models.LevelAdmin, []string{models.LevelAdmin}, http.StatusOK},
		{"operator allowed among several", models.LevelOperator, []string{models.LevelAdmin, models.LevelOperator, models.LevelContributor}, http.StatusOK},
		{"guest denied write access", models.LevelGuest, []string{models.LevelAdmin, models.LevelOperator, models.LevelContributor}, http.StatusForbidden},
		{"contributor denied delete", models.LevelContributor, []string{models.LevelAdmin, models.LevelOperator}, http.StatusForbidden},
		{"role match is case insensitive", "admin", []string{models.LevelAdmin}, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := utils.GenerateAccessToken(7, "tester", tc.role)
			if err != nil {
				t.Fatalf("GenerateAccessToken: %v", err)
			}
			engine := newAuthTestRouter(t, tc.allowed...)
			if rec := doRequest(engine, token); rec.Code != tc.want {
				t.Errorf("status = %d, want %d, body %s", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

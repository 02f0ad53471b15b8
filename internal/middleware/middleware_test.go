package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"office-hours-server/internal/config"
	"office-hours-server/internal/models"
	"office-hours-server/internal/scheduling"
	"office-hours-server/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimit(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	r := gin.New()
	r.POST("/login", RateLimit(rl), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "buckets are per client")
}

func TestRateLimiterSweep(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	rl.get("a")
	now = now.Add(2 * time.Minute)
	rl.get("b")
	now = now.Add(2 * time.Minute)

	assert.Equal(t, 1, rl.Sweep(3*time.Minute))
	assert.Len(t, rl.clients, 1)
	assert.Contains(t, rl.clients, "b")
}

func TestAuthAndOperationGate(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s", JWTRefreshSecret: "r", JWTExpirationMinutes: 5, JWTRefreshExpirationHours: 1}

	r := gin.New()
	r.POST("/availability", AuthMiddleware(cfg), OperationGate(scheduling.OpPublishAvailability), func(c *gin.Context) {
		p, ok := PrincipalFromContext(c)
		require.True(t, ok)
		c.String(http.StatusOK, p.ID)
	})

	token := func(role models.Role) string {
		u := &models.User{Email: "x@uni.edu", Role: role}
		u.ID = "user-" + string(role)
		access, _, err := utils.GenerateTokens(u, cfg)
		require.NoError(t, err)
		return access
	}

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"student", "Bearer " + token(models.RoleStudent), http.StatusForbidden},
		{"professor", "Bearer " + token(models.RoleProfessor), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/availability", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

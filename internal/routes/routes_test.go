package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"office-hours-server/internal/config"
	"office-hours-server/internal/middleware"
	"office-hours-server/internal/models"
	"office-hours-server/internal/scheduling"
	"office-hours-server/internal/store"
	"office-hours-server/internal/utils"
)

type envelope struct {
	Status  int                     `json:"status"`
	Message string                  `json:"message"`
	Data    json.RawMessage         `json:"data"`
	Error   string                  `json:"error"`
	Errors  []scheduling.FieldError `json:"errors"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, utils.RegisterValidators())

	cfg := &config.Config{
		Environment:               "development",
		JWTSecret:                 "test-secret",
		JWTRefreshSecret:          "test-refresh-secret",
		JWTExpirationMinutes:      60,
		JWTRefreshExpirationHours: 1,
	}
	now := func() time.Time { return time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC) }
	engine := scheduling.NewEngine(store.NewMemoryLedger(), zap.NewNop(),
		scheduling.WithClock(now),
		scheduling.WithLocation(time.UTC),
	)

	router := gin.New()
	SetupRoutes(router, cfg, Dependencies{
		Engine:   engine,
		Accounts: store.NewMemoryAccounts(),
		Limiter:  middleware.NewRateLimiter(1000, 1000),
		Logger:   zap.NewNop(),
	})
	return &testServer{t: t, router: router}
}

func (s *testServer) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

type session struct {
	ID           string
	Token        string
	RefreshToken string
}

func (s *testServer) register(role, name, email string) session {
	s.t.Helper()
	code, _ := s.do(http.MethodPost, "/"+role+"s/signup", "", gin.H{"name": name, "email": email, "password": "password123"})
	require.Equal(s.t, http.StatusCreated, code)

	code, env := s.do(http.MethodPost, "/"+role+"s/login", "", gin.H{"email": email, "password": "password123"})
	require.Equal(s.t, http.StatusOK, code)
	resp := decode[struct {
		Token        string               `json:"token"`
		RefreshToken string               `json:"refreshToken"`
		User         models.UserSanitized `json:"user"`
	}](s.t, env)
	return session{ID: resp.User.ID, Token: resp.Token, RefreshToken: resp.RefreshToken}
}

func TestBookingFlow(t *testing.T) {
	s := newTestServer(t)
	prof := s.register("professor", "Prof P", "p@uni.edu")
	alice := s.register("student", "Alice", "a@uni.edu")
	bob := s.register("student", "Bob", "b@uni.edu")

	code, env := s.do(http.MethodGet, "/professors", alice.Token, nil)
	require.Equal(t, http.StatusOK, code)
	professors := decode[[]models.UserSanitized](t, env)
	require.Len(t, professors, 1)
	assert.Equal(t, prof.ID, professors[0].ID)

	code, _ = s.do(http.MethodPost, "/professors/availability", prof.Token,
		gin.H{"date": "2025-05-01", "startTime": "09:00", "endTime": "11:00"})
	require.Equal(t, http.StatusCreated, code)

	code, env = s.do(http.MethodGet, "/students/availability?professorId="+prof.ID, alice.Token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]models.AvailabilityWindow](t, env), 1)

	slot := func(start, end string) gin.H {
		return gin.H{"professorId": prof.ID, "date": "2025-05-01", "startTime": start, "endTime": end}
	}

	code, env = s.do(http.MethodPost, "/students/appointments", alice.Token, slot("09:00", "10:00"))
	require.Equal(t, http.StatusCreated, code)
	aliceAppt := decode[models.Appointment](t, env)
	assert.Equal(t, models.StatusActive, aliceAppt.Status)

	code, _ = s.do(http.MethodPost, "/students/appointments", bob.Token, slot("09:30", "10:30"))
	assert.Equal(t, http.StatusConflict, code)

	code, _ = s.do(http.MethodPost, "/students/appointments", bob.Token, slot("10:00", "11:00"))
	assert.Equal(t, http.StatusCreated, code)

	code, _ = s.do(http.MethodPost, "/students/appointments", bob.Token, slot("11:00", "12:00"))
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, env = s.do(http.MethodGet, "/students/availability?openOnly=true&date=2025-05-01", bob.Token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[[]scheduling.OpenSlot](t, env))

	code, env = s.do(http.MethodDelete, "/professors/availability/"+aliceAppt.ID, prof.Token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.StatusCancelled, decode[models.Appointment](t, env).Status)

	code, _ = s.do(http.MethodPost, "/students/appointments", bob.Token, slot("09:00", "10:00"))
	assert.Equal(t, http.StatusCreated, code)

	code, env = s.do(http.MethodGet, "/students/appointments", alice.Token, nil)
	require.Equal(t, http.StatusOK, code)
	mine := decode[[]models.Appointment](t, env)
	require.Len(t, mine, 1)
	assert.Equal(t, models.StatusCancelled, mine[0].Status)

	code, env = s.do(http.MethodGet, "/students/appointments?status=active", bob.Token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]models.Appointment](t, env), 2)

	code, env = s.do(http.MethodGet, "/professors/appointments", prof.Token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]models.Appointment](t, env), 3)
}

func TestErrorResponses(t *testing.T) {
	s := newTestServer(t)
	prof := s.register("professor", "Prof P", "p@uni.edu")
	other := s.register("professor", "Prof Q", "q@uni.edu")
	alice := s.register("student", "Alice", "a@uni.edu")

	code, env := s.do(http.MethodPost, "/professors/availability", prof.Token,
		gin.H{"date": "2025-02-30", "startTime": "9:00", "endTime": "11:00"})
	assert.Equal(t, http.StatusBadRequest, code)
	var paths []string
	for _, f := range env.Errors {
		paths = append(paths, f.Path...)
	}
	assert.ElementsMatch(t, []string{"date", "startTime"}, paths)

	code, env = s.do(http.MethodPost, "/professors/availability", prof.Token,
		gin.H{"date": "2025-05-01", "startTime": "11:00", "endTime": "09:00"})
	assert.Equal(t, http.StatusBadRequest, code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, []string{"endTime"}, env.Errors[0].Path)

	code, _ = s.do(http.MethodPost, "/professors/availability", alice.Token,
		gin.H{"date": "2025-05-01", "startTime": "09:00", "endTime": "11:00"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodGet, "/students/appointments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodPost, "/professors/availability", prof.Token,
		gin.H{"date": "2025-05-01", "startTime": "09:00", "endTime": "11:00"})
	require.Equal(t, http.StatusCreated, code)
	code, env = s.do(http.MethodPost, "/students/appointments", alice.Token,
		gin.H{"professorId": prof.ID, "date": "2025-05-01", "startTime": "09:00", "endTime": "10:00"})
	require.Equal(t, http.StatusCreated, code)
	appt := decode[models.Appointment](t, env)

	code, _ = s.do(http.MethodDelete, "/professors/availability/"+appt.ID, other.Token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodDelete, "/professors/availability/"+appt.ID, alice.Token, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodPost, "/students/appointments", alice.Token,
		gin.H{"professorId": "nope", "date": "2025-05-01", "startTime": "09:00", "endTime": "10:00"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodGet, "/students/appointments?status=pending", alice.Token, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("student", "Alice", "a@uni.edu")

	code, _ := s.do(http.MethodPost, "/students/signup", "", gin.H{"name": "Alice", "email": "A@uni.edu", "password": "password123"})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = s.do(http.MethodPost, "/professors/signup", "", gin.H{"name": "Alice", "email": "a@uni.edu", "password": "password123"})
	assert.Equal(t, http.StatusCreated, code, "the same email may hold both roles")

	code, _ = s.do(http.MethodPost, "/students/signup", "", gin.H{"name": "Eve", "email": "not-an-email", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/students/login", "", gin.H{"email": "a@uni.edu", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodPost, "/professors/login", "", gin.H{"email": "nobody@uni.edu", "password": "password123"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env := s.do(http.MethodGet, "/auth/profile", alice.Token, nil)
	require.Equal(t, http.StatusOK, code)
	profile := decode[models.UserSanitized](t, env)
	assert.Equal(t, "a@uni.edu", profile.Email)
	assert.Equal(t, models.RoleStudent, profile.Role)

	code, env = s.do(http.MethodPost, "/auth/refresh", "", gin.H{"refreshToken": alice.RefreshToken})
	require.Equal(t, http.StatusOK, code)
	rotated := decode[struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refreshToken"`
	}](t, env)
	assert.NotEmpty(t, rotated.Token)

	code, _ = s.do(http.MethodPost, "/auth/refresh", "", gin.H{"refreshToken": alice.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, code, "refresh tokens are single use")

	code, _ = s.do(http.MethodPost, "/auth/logout", rotated.Token, gin.H{"refreshToken": rotated.RefreshToken})
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodPost, "/auth/refresh", "", gin.H{"refreshToken": rotated.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"UP"}`, w.Body.String())
}

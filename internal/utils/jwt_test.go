package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"office-hours-server/internal/config"
	"office-hours-server/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:                 "access-secret",
		JWTRefreshSecret:          "refresh-secret",
		JWTExpirationMinutes:      60,
		JWTRefreshExpirationHours: 168,
	}
}

func TestGenerateAndValidateTokens(t *testing.T) {
	cfg := testConfig()
	user := &models.User{Email: "p@uni.edu", Role: models.RoleProfessor}
	user.ID = "0b7e2c1a-4d4f-4b7e-9f0e-6a1d2c3b4a51"

	access, refresh, err := GenerateTokens(user, cfg)
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)

	claims, err := ValidateToken(access, cfg.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, models.RoleProfessor, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)

	_, err = ValidateToken(access, cfg.JWTRefreshSecret)
	assert.Error(t, err, "access tokens are not refresh tokens")

	_, err = ValidateToken(refresh, cfg.JWTRefreshSecret)
	assert.NoError(t, err)

	_, again, err := GenerateTokens(user, cfg)
	require.NoError(t, err)
	assert.NotEqual(t, refresh, again, "refresh tokens are unique")
}

func TestValidateTokenRejects(t *testing.T) {
	secret := "access-secret"
	sign := func(method jwt.SigningMethod, key any, claims Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	valid := Claims{
		UserID:           "u1",
		Role:             models.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}

	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	noExpiry := valid
	noExpiry.ExpiresAt = nil

	badRole := valid
	badRole.Role = "admin"

	tests := map[string]string{
		"expired":      sign(jwt.SigningMethodHS256, []byte(secret), expired),
		"no expiry":    sign(jwt.SigningMethodHS256, []byte(secret), noExpiry),
		"wrong secret": sign(jwt.SigningMethodHS256, []byte("other"), valid),
		"HS512":        sign(jwt.SigningMethodHS512, []byte(secret), valid),
		"alg none":     sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, valid),
		"unknown role": sign(jwt.SigningMethodHS256, []byte(secret), badRole),
		"not a jwt":    "abc.def.ghi",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ValidateToken(token, secret)
			assert.Error(t, err)
		})
	}

	_, err := ValidateToken(sign(jwt.SigningMethodHS256, []byte(secret), valid), secret)
	assert.NoError(t, err)
}

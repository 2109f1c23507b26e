package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("secret", "client-1", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "client-1", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestValidateTokenRejects(t *testing.T) {
	expired, err := GenerateToken("secret", "client-1", -time.Minute)
	require.NoError(t, err)

	otherSecret, err := GenerateToken("other", "client-1", time.Hour)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "x"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":      expired,
		"other secret": otherSecret,
		"alg none":     unsigned,
		"garbage":      "not-a-jwt",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ValidateToken("secret", token)
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	_, err := GenerateToken("", "client-1", time.Hour)
	require.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	var subject string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject = GetSubjectFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	valid, err := GenerateToken("secret", "client-42", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name        string
		secret      string
		header      string
		wantStatus  int
		wantSubject string
	}{
		{name: "disabled without secret", secret: "", header: "", wantStatus: http.StatusOK},
		{name: "missing header", secret: "secret", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", secret: "secret", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", secret: "secret", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "valid token", secret: "secret", header: "Bearer " + valid, wantStatus: http.StatusOK, wantSubject: "client-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject = ""
			req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.secret)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantSubject, subject)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), `"success":false`)
			}
		})
	}
}

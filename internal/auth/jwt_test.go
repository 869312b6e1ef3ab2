package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rentora/rentora-be/internal/models"
)

type stubLoader struct {
	user models.User
	err  error
}

func (s stubLoader) GetUserByID(_ context.Context, _ string) (models.User, error) {
	return s.user, s.err
}

func TestGenerateAndValidate(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)
	user := models.User{ID: "u1", Email: "a@b.com"}

	tokenStr, err := tokens.Generate(user)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := tokens.Validate(tokenStr)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.ID != "u1" || claims.Email != "a@b.com" {
		t.Errorf("claims = {%s %s}, want {u1 a@b.com}", claims.ID, claims.Email)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	tokens := NewTokenService("test-secret", -time.Minute)
	tokenStr, err := tokens.Generate(models.User{ID: "u1", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := tokens.Validate(tokenStr); err == nil {
		t.Error("Validate accepted an expired token")
	}
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	tokenStr, err := issuer.Generate(models.User{ID: "u1"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := verifier.Validate(tokenStr); err == nil {
		t.Error("Validate accepted a token signed with a different secret")
	}
}

func TestMiddleware(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)
	user := models.User{ID: "u1", Email: "a@b.com"}
	validToken, err := tokens.Generate(user)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	expiredToken, err := NewTokenService("test-secret", -time.Minute).Generate(user)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	tests := []struct {
		name        string
		header      string
		loader      UserLoader
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "missing header",
			header:      "",
			loader:      stubLoader{user: user},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "No token provided",
		},
		{
			name:        "malformed header",
			header:      validToken,
			loader:      stubLoader{user: user},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "No token provided",
		},
		{
			name:        "garbage token",
			header:      "Bearer not-a-token",
			loader:      stubLoader{user: user},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid token",
		},
		{
			name:        "expired token",
			header:      "Bearer " + expiredToken,
			loader:      stubLoader{user: user},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid token",
		},
		{
			name:        "user gone",
			header:      "Bearer " + validToken,
			loader:      stubLoader{err: errors.New("not found")},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "User not found",
		},
		{
			name:       "valid",
			header:     "Bearer " + validToken,
			loader:     stubLoader{user: user},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser models.User
			var gotClaims *Claims
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = UserFromContext(r.Context())
				gotClaims, _ = ClaimsFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			tokens.Middleware(tt.loader)(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				var body map[string]string
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("error body is not JSON: %v", err)
				}
				if body["message"] != tt.wantMessage {
					t.Errorf("message = %q, want %q", body["message"], tt.wantMessage)
				}
				return
			}
			if gotUser.ID != user.ID {
				t.Errorf("context user = %+v, want %+v", gotUser, user)
			}
			if gotClaims == nil || gotClaims.ID != user.ID {
				t.Errorf("context claims = %+v, want id %s", gotClaims, user.ID)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "empty", header: "", want: ""},
		{name: "bare token", header: "abc", want: ""},
		{name: "wrong scheme", header: "Basic abc", want: ""},
		{name: "bearer", header: "Bearer abc", want: "abc"},
		{name: "case insensitive scheme", header: "bearer abc", want: "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := BearerToken(req); got != tt.want {
				t.Errorf("BearerToken(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

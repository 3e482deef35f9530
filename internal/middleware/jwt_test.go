package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret())
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}
	return signed
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("role"),
		})
	})
	r.GET("/brand", AuthRequired(), RequireRole("brand"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAuthRequired_MissingToken(t *testing.T) {
	r := authRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)

	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthRequired_BadFormat(t *testing.T) {
	r := authRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc")

	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-bearer header, got %d", w.Code)
	}
}

func TestAuthRequired_ValidToken(t *testing.T) {
	r := authRouter()
	token := signToken(t, jwt.MapClaims{
		"user_id": "64f0c2a1b3d4e5f601234567",
		"email":   "amna@example.com",
		"role":    "customer",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestAuthRequired_ExpiredToken(t *testing.T) {
	r := authRouter()
	token := signToken(t, jwt.MapClaims{
		"user_id": "64f0c2a1b3d4e5f601234567",
		"role":    "customer",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", w.Code)
	}
}

func TestAuthRequired_SecretSetAfterStartup(t *testing.T) {
	// The secret must be read when the request arrives, not frozen at package
	// init, since godotenv populates the environment during config.Load().
	t.Setenv("JWT_SECRET", "sway-dev-secret")

	r := authRouter()
	token := signToken(t, jwt.MapClaims{
		"user_id": "64f0c2a1b3d4e5f601234567",
		"role":    "customer",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with late-set secret, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestAuthRequired_WrongKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "sway-dev-secret")

	r := authRouter()
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "64f0c2a1b3d4e5f601234567",
		"role":    "customer",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("some-other-key"))
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+forged)

	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a token signed with the wrong key, got %d", w.Code)
	}
}

func TestRequireRole_WrongRole(t *testing.T) {
	r := authRouter()
	token := signToken(t, jwt.MapClaims{
		"user_id": "64f0c2a1b3d4e5f601234567",
		"role":    "customer",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/brand", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestRequireRole_MatchingRole(t *testing.T) {
	r := authRouter()
	token := signToken(t, jwt.MapClaims{
		"user_id":    "64f0c2a1b3d4e5f601234567",
		"role":       "brand",
		"brand_name": "Nomi Ansari",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/brand", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
}

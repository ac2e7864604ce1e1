package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"freshcart-backend/models"
	"freshcart-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("TOKEN_SECRET", "test-secret-key-for-unit-tests")

	var err error
	testDB, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}
	sqlDB, _ := testDB.DB()
	sqlDB.SetMaxOpenConns(1)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS "users" (
			"id" TEXT PRIMARY KEY,
			"username" TEXT NOT NULL UNIQUE,
			"email" TEXT NOT NULL UNIQUE,
			"password" TEXT NOT NULL,
			"first_name" TEXT,
			"last_name" TEXT,
			"role" TEXT DEFAULT 'customer',
			"created_at" DATETIME,
			"updated_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "auth_tokens" (
			"id" TEXT PRIMARY KEY,
			"key" TEXT NOT NULL UNIQUE,
			"user_id" TEXT NOT NULL,
			"created_at" DATETIME,
			CONSTRAINT fk_auth_tokens_user FOREIGN KEY ("user_id") REFERENCES "users"("id") ON DELETE CASCADE
		)`,
	}
	for _, stmt := range ddl {
		if err := testDB.Exec(stmt).Error; err != nil {
			panic("failed to migrate test database: " + err.Error())
		}
	}

	os.Exit(m.Run())
}

func setupTestRouter() *gin.Engine {
	r := gin.New()

	// Protected endpoint for testing AuthMiddleware
	protected := r.Group("/api")
	protected.Use(AuthMiddleware(testDB))
	protected.GET("/test", func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		role, _ := c.Get("user_role")
		c.JSON(http.StatusOK, gin.H{
			"user_id": userID,
			"role":    role,
		})
	})

	// Admin endpoint for testing AdminMiddleware
	admin := r.Group("/api/admin")
	admin.Use(AuthMiddleware(testDB))
	admin.Use(AdminMiddleware())
	admin.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "admin access granted"})
	})

	return r
}

// storedToken issues a key for a fresh user and records it in auth_tokens,
// the state a successful login leaves behind.
func storedToken(t *testing.T, role string) string {
	t.Helper()

	user := models.User{
		ID:       uuid.New(),
		Username: "u-" + uuid.New().String()[:8],
		Email:    "u-" + uuid.New().String()[:8] + "@test.com",
		Password: "irrelevant",
		Role:     role,
	}
	if err := testDB.Create(&user).Error; err != nil {
		t.Fatal(err)
	}

	key, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		t.Fatal(err)
	}
	if err := testDB.Create(&models.AuthToken{ID: uuid.New(), Key: key, UserID: user.ID}).Error; err != nil {
		t.Fatal(err)
	}
	return key
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	router := setupTestRouter()
	key := storedToken(t, "customer")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/test", nil)
	req.Header.Set("Authorization", "Token "+key)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := setupTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/test", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareMalformedToken(t *testing.T) {
	router := setupTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/test", nil)
	req.Header.Set("Authorization", "Token not-a-valid-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareWrongScheme(t *testing.T) {
	router := setupTestRouter()
	key := storedToken(t, "customer")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/test", nil)
	// "Bearer" is not the accepted scheme
	req.Header.Set("Authorization", "Bearer "+key)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	router := setupTestRouter()

	// Create an expired token manually
	secret := os.Getenv("TOKEN_SECRET")
	claims := utils.Claims{
		UserID: uuid.New(),
		Email:  "expired@test.com",
		Role:   "customer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			Issuer:    "freshcart-backend",
		},
	}
	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	expiredKey, _ := tokenObj.SignedString([]byte(secret))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/test", nil)
	req.Header.Set("Authorization", "Token "+expiredKey)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareRevokedToken(t *testing.T) {
	router := setupTestRouter()
	key := storedToken(t, "customer")

	// Revoke: delete the stored row, as logout does
	testDB.Where("key = ?", key).Delete(&models.AuthToken{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/test", nil)
	req.Header.Set("Authorization", "Token "+key)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for revoked token, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareUnstoredToken(t *testing.T) {
	router := setupTestRouter()

	// Validly signed but never stored server-side
	key, err := utils.GenerateToken(uuid.New(), "floating@test.com", "customer")
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/test", nil)
	req.Header.Set("Authorization", "Token "+key)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for unstored token, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminMiddlewareAllowsAdmin(t *testing.T) {
	router := setupTestRouter()
	key := storedToken(t, "admin")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/admin/test", nil)
	req.Header.Set("Authorization", "Token "+key)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminMiddlewareBlocksCustomer(t *testing.T) {
	router := setupTestRouter()
	key := storedToken(t, "customer")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/admin/test", nil)
	req.Header.Set("Authorization", "Token "+key)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareInvalidFormatNoScheme(t *testing.T) {
	router := setupTestRouter()
	key := storedToken(t, "customer")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/test", nil)
	// Missing "Token " prefix
	req.Header.Set("Authorization", key)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d: %s", w.Code, w.Body.String())
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/caixa-api/internal/config"
	"github.com/sangkips/caixa-api/internal/domain/enum"
	domainRepo "github.com/sangkips/caixa-api/internal/domain/repository"
	"github.com/sangkips/caixa-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/caixa-api/internal/infrastructure/repository"
	"github.com/sangkips/caixa-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJWT() *utils.JWTManager {
	return utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := newJWT()
	userID := uuid.New()
	token, err := jwtManager.GenerateAccessToken(userID, "123", enum.RoleOperador)
	require.NoError(t, err)

	router := gin.New()
	router.Use(AuthMiddleware(jwtManager))
	handler := func(c *gin.Context) {
		owner, _ := domainRepo.GetOwnerID(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"matricula": c.GetString(ContextMatricula),
			"owner":     owner.String(),
		})
	}
	router.GET("/me", handler)
	router.POST("/me", handler)

	tests := []struct {
		name   string
		method string
		target string
		header string
		want   int
	}{
		{"bearer header", http.MethodGet, "/me", "Bearer " + token, http.StatusOK},
		{"lowercase scheme", http.MethodGet, "/me", "bearer " + token, http.StatusOK},
		{"missing header", http.MethodGet, "/me", "", http.StatusUnauthorized},
		{"wrong scheme", http.MethodGet, "/me", "Basic " + token, http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/me", "Bearer nope", http.StatusUnauthorized},
		{"query token on GET", http.MethodGet, "/me?access_token=" + token, "", http.StatusOK},
		{"query token on POST", http.MethodPost, "/me?access_token=" + token, "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"matricula":"123"`)
				assert.Contains(t, w.Body.String(), userID.String())
			}
		})
	}
}

func TestAuthMiddleware_AdminSkipsOwnerScope(t *testing.T) {
	jwtManager := newJWT()
	token, err := jwtManager.GenerateAccessToken(uuid.New(), "0001", enum.RoleAdmin)
	require.NoError(t, err)

	var skipped bool
	router := gin.New()
	router.Use(AuthMiddleware(jwtManager))
	router.GET("/admin", RequireRole(enum.RoleAdmin), func(c *gin.Context) {
		skipped = domainRepo.SkipsOwnerScope(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, skipped)
}

func TestRequireRole_Forbidden(t *testing.T) {
	router := gin.New()
	router.GET("/admin", func(c *gin.Context) {
		c.Set(ContextRole, enum.RoleOperador)
		c.Next()
	}, RequireRole(enum.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOperatorRateLimiter(t *testing.T) {
	rl := NewOperatorRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2}, nil)

	userA, userB := uuid.New(), uuid.New()
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if c.GetHeader("X-User") == "b" {
			c.Set(ContextUserID, userB)
		} else {
			c.Set(ContextUserID, userA)
		}
		c.Next()
	})
	router.Use(rl.Middleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(user string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User", user)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, do("a").Code)
	assert.Equal(t, http.StatusOK, do("a").Code)

	w := do("a")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	// limits are per operator
	assert.Equal(t, http.StatusOK, do("b").Code)
}

func TestRateLimiterConfigFrom(t *testing.T) {
	cfg := RateLimiterConfigFrom(120, 60)
	assert.Equal(t, 2.0, cfg.RequestsPerSecond)
	assert.Equal(t, 120, cfg.BurstSize)

	cfg = RateLimiterConfigFrom(0, 0)
	assert.Equal(t, 100, cfg.BurstSize)
	assert.InDelta(t, 100.0/60.0, cfg.RequestsPerSecond, 1e-9)
}

func TestIdempotency(t *testing.T) {
	db, err := database.NewSQLiteDB(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	var calls atomic.Int32
	userID := uuid.New()

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextUserID, userID)
		c.Next()
	})
	router.POST("/items", Idempotency(IdempotencyConfig{Repo: infraRepo.NewIdempotencyRepository(db)}), func(c *gin.Context) {
		n := calls.Add(1)
		if c.Query("fail") != "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"call": n})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"call": n})
	})

	post := func(target, key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, target, nil)
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := post("/items", "abc")
	require.Equal(t, http.StatusCreated, first.Code)
	assert.JSONEq(t, `{"call":1}`, first.Body.String())

	replay := post("/items", "abc")
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.JSONEq(t, `{"call":1}`, replay.Body.String())
	assert.Equal(t, "true", replay.Header().Get("X-Idempotency-Replayed"))
	assert.EqualValues(t, 1, calls.Load())

	// without a key every request runs
	post("/items", "")
	assert.EqualValues(t, 2, calls.Load())

	// failed responses are not stored
	assert.Equal(t, http.StatusUnprocessableEntity, post("/items?fail=1", "xyz").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, post("/items?fail=1", "xyz").Code)
	assert.EqualValues(t, 4, calls.Load())
}

func TestIdempotency_KeyBoundToEndpoint(t *testing.T) {
	db, err := database.NewSQLiteDB(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	var calls atomic.Int32
	idem := Idempotency(IdempotencyConfig{Repo: infraRepo.NewIdempotencyRepository(db)})
	handler := func(c *gin.Context) {
		calls.Add(1)
		c.JSON(http.StatusCreated, gin.H{"path": c.FullPath()})
	}

	userID := uuid.New()
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextUserID, userID)
		c.Next()
	})
	router.POST("/lancamentos", idem, handler)
	router.POST("/sangrias", idem, handler)

	post := func(target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, target, nil)
		req.Header.Set(IdempotencyKeyHeader, "shared")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusCreated, post("/lancamentos").Code)

	w := post("/sangrias")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "another endpoint")
	assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
	assert.EqualValues(t, 1, calls.Load())

	replay := post("/lancamentos")
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get("X-Idempotency-Replayed"))
	assert.EqualValues(t, 1, calls.Load())
}

func TestCORSMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(CORSMiddleware(&config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Idempotency-Key")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

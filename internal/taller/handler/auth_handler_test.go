package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/SantiagoMGS/mipc-api/internal/config"
	"github.com/SantiagoMGS/mipc-api/internal/taller/entity"
	"github.com/SantiagoMGS/mipc-api/internal/taller/repository"
	"github.com/SantiagoMGS/mipc-api/internal/taller/service"
	"github.com/SantiagoMGS/mipc-api/internal/taller/testutil"
	"github.com/redis/go-redis/v9"
)

func setupAuthTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:             testutil.JWTSecret,
			AccessTokenExpire:  time.Hour,
			RefreshTokenExpire: 24 * time.Hour,
			Issuer:             "mipc-api",
		},
	}
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:6379"})

	repos := repository.NewRepositories(db)
	svc := service.NewAuthService(repos.User, rdb, cfg)
	h := NewAuthHandler(svc, cfg)

	router := testutil.SetupRouter()
	router.POST("/api/v1/auth/login", h.Login)
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/auth/me", h.GetCurrentUser)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestLoginSuccess(t *testing.T) {
	env := setupAuthTest(t)
	testutil.SeedUser(t, env.DB, "user-001", "Santiago Gómez", "santiago@taller.test", entity.RoleAdmin, "clave-super-secreta")

	body := map[string]interface{}{
		"email":    "santiago@taller.test",
		"password": "clave-super-secreta",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/auth/login", body, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["access_token"] == "" || data["refresh_token"] == "" {
		t.Fatal("expected token pair in response")
	}
	user := data["user"].(map[string]interface{})
	if user["role"] != entity.RoleAdmin {
		t.Fatalf("expected role ADMIN, got %v", user["role"])
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := setupAuthTest(t)
	testutil.SeedUser(t, env.DB, "user-002", "Laura Díaz", "laura@taller.test", entity.RoleTecnico, "correcta")

	body := map[string]interface{}{
		"email":    "laura@taller.test",
		"password": "incorrecta",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/auth/login", body, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginInactiveUserRejected(t *testing.T) {
	env := setupAuthTest(t)
	user := testutil.SeedUser(t, env.DB, "user-003", "Inactivo", "inactivo@taller.test", entity.RoleAuxiliar, "clave1234")
	env.DB.Model(user).Update("is_active", false)

	body := map[string]interface{}{
		"email":    "inactivo@taller.test",
		"password": "clave1234",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/auth/login", body, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for inactive user, got %d", w.Code)
	}
}

func TestGetCurrentUser(t *testing.T) {
	env := setupAuthTest(t)
	user := testutil.SeedUser(t, env.DB, "user-004", "Ana Torres", "ana@taller.test", entity.RoleTecnico, "clave1234")

	token := testutil.GenerateTestToken(user.ID, user.Name, user.Email, user.Role)
	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/auth/me", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["email"] != user.Email {
		t.Fatalf("expected email %s, got %v", user.Email, data["email"])
	}
	if _, exposed := data["password_hash"]; exposed {
		t.Fatal("password hash must never appear in responses")
	}
}

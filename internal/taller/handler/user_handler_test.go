package handler

import (
	"net/http"
	"testing"

	"github.com/SantiagoMGS/mipc-api/internal/middleware"
	"github.com/SantiagoMGS/mipc-api/internal/taller/entity"
	"github.com/SantiagoMGS/mipc-api/internal/taller/repository"
	"github.com/SantiagoMGS/mipc-api/internal/taller/service"
	"github.com/SantiagoMGS/mipc-api/internal/taller/testutil"
)

func setupUserTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svc := service.NewUserService(repos.User)
	h := NewUserHandler(svc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/users/technicians", h.Technicians)

	admin := api.Group("/users", middleware.RequireRole(entity.RoleAdmin))
	admin.GET("", h.List)
	admin.POST("", h.Create)
	admin.DELETE("/:id", h.Delete)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestUserCreateRequiresAdmin(t *testing.T) {
	env := setupUserTest(t)

	body := map[string]interface{}{
		"email":    "nuevo@taller.test",
		"name":     "Nuevo Técnico",
		"role":     entity.RoleTecnico,
		"password": "clave-segura-123",
	}

	// AUXILIAR no puede administrar usuarios
	auxToken := testutil.GenerateTestToken("aux-001", "Auxiliar", "aux@taller.test", entity.RoleAuxiliar)
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/users", body, auxToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for AUXILIAR, got %d: %s", w.Code, w.Body.String())
	}

	// ADMIN sí
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/users", body, testutil.DefaultTestToken())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for ADMIN, got %d: %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if _, exposed := data["password_hash"]; exposed {
		t.Fatal("password hash must never appear in responses")
	}
}

func TestUserDuplicateEmailRejected(t *testing.T) {
	env := setupUserTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedUser(t, env.DB, "user-dup", "Ya Existe", "repetido@taller.test", entity.RoleAuxiliar, "clave1234")

	body := map[string]interface{}{
		"email":    "repetido@taller.test",
		"name":     "Otro",
		"role":     entity.RoleAuxiliar,
		"password": "clave-segura-123",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/users", body, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d: %s", w.Code, w.Body.String())
	}
}

func TestTechniciansListsOnlyActiveTecnicos(t *testing.T) {
	env := setupUserTest(t)

	testutil.SeedUser(t, env.DB, "tech-a", "Técnico A", "ta@taller.test", entity.RoleTecnico, "clave1234")
	testutil.SeedUser(t, env.DB, "aux-b", "Auxiliar B", "ab@taller.test", entity.RoleAuxiliar, "clave1234")
	inactive := testutil.SeedUser(t, env.DB, "tech-c", "Técnico C", "tc@taller.test", entity.RoleTecnico, "clave1234")
	env.DB.Model(inactive).Update("is_active", false)

	// cualquier usuario autenticado puede consultar técnicos
	token := testutil.GenerateTestToken("aux-001", "Auxiliar", "aux@taller.test", entity.RoleAuxiliar)
	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/users/technicians", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	technicians := testutil.ParseResponse(w)["data"].([]interface{})
	if len(technicians) != 1 {
		t.Fatalf("expected 1 active technician, got %d", len(technicians))
	}
	first := technicians[0].(map[string]interface{})
	if first["id"] != "tech-a" {
		t.Fatalf("expected tech-a, got %v", first["id"])
	}
}

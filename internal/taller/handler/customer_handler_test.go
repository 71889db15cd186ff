package handler

import (
	"net/http"
	"testing"

	"github.com/SantiagoMGS/mipc-api/internal/taller/repository"
	"github.com/SantiagoMGS/mipc-api/internal/taller/service"
	"github.com/SantiagoMGS/mipc-api/internal/taller/testutil"
)

func setupCustomerTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svc := service.NewCustomerService(repos.Customer, repos.Device)
	h := NewCustomerHandler(svc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/customers", h.List)
	api.POST("/customers", h.Create)
	api.GET("/customers/:id", h.Get)
	api.PATCH("/customers/:id", h.Update)
	api.DELETE("/customers/:id", h.Deactivate)
	api.POST("/customers/:id/reactivate", h.Reactivate)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestCustomerCreateAndGet(t *testing.T) {
	env := setupCustomerTest(t)
	token := testutil.DefaultTestToken()

	body := map[string]interface{}{
		"customer_type":   "NATURAL",
		"first_name":      "María",
		"last_name":       "Pérez",
		"document_type":   "CC",
		"document_number": "52000111",
		"phone":           "3001234567",
		"email":           "maria@example.com",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/customers", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	customerID := data["id"].(string)

	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/customers/"+customerID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	data = testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["first_name"] != "María" {
		t.Fatalf("expected first_name María, got %v", data["first_name"])
	}
}

func TestCustomerDuplicateDocumentRejected(t *testing.T) {
	env := setupCustomerTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedCustomer(t, env.DB, "cust-dup", "Pedro", "López", "80111222")

	body := map[string]interface{}{
		"customer_type":   "NATURAL",
		"first_name":      "Otro",
		"last_name":       "Pedro",
		"document_type":   "CC",
		"document_number": "80111222",
		"phone":           "3000000001",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/customers", body, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate document, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCustomerJuridicaRequiresBusinessName(t *testing.T) {
	env := setupCustomerTest(t)
	token := testutil.DefaultTestToken()

	body := map[string]interface{}{
		"customer_type":   "JURIDICA",
		"document_type":   "NIT",
		"document_number": "900123456",
		"phone":           "6015550000",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/customers", body, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 without business_name, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCustomerSearchCaseInsensitive(t *testing.T) {
	env := setupCustomerTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedCustomer(t, env.DB, "cust-s1", "Laura", "Martinez", "1000000001")
	testutil.SeedCustomer(t, env.DB, "cust-s2", "Andrés", "Gómez", "1000000002")

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/customers?search=MARTINEZ", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 match for MARTINEZ, got %d", len(items))
	}

	// búsqueda por documento
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/customers?search=1000000002", nil, token)
	data = testutil.ParseResponse(w)["data"].(map[string]interface{})
	items = data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 match by document, got %d", len(items))
	}
}

func TestCustomerDeactivateAndReactivate(t *testing.T) {
	env := setupCustomerTest(t)
	token := testutil.DefaultTestToken()

	customer := testutil.SeedCustomer(t, env.DB, "cust-act", "Sofía", "Ramírez", "1000000099")

	w := testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/customers/"+customer.ID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// sigue consultable con su historial
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/customers/"+customer.ID, nil, token)
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["is_active"] != false {
		t.Fatalf("expected is_active false, got %v", data["is_active"])
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/customers/"+customer.ID+"/reactivate", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/customers/"+customer.ID, nil, token)
	data = testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["is_active"] != true {
		t.Fatalf("expected is_active true after reactivate, got %v", data["is_active"])
	}
}

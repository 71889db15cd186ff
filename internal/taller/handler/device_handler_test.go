package handler

import (
	"net/http"
	"testing"

	"github.com/SantiagoMGS/mipc-api/internal/taller/repository"
	"github.com/SantiagoMGS/mipc-api/internal/taller/service"
	"github.com/SantiagoMGS/mipc-api/internal/taller/testutil"
)

func setupDeviceTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svc := service.NewDeviceService(repos.Device, repos.DeviceType, repos.Customer)
	h := NewDeviceHandler(svc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/devices", h.List)
	api.GET("/devices/:id", h.Get)
	api.DELETE("/devices/:id", h.Deactivate)
	api.POST("/devices/:id/reactivate", h.Reactivate)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestDeviceDeactivateAndReactivate(t *testing.T) {
	env := setupDeviceTest(t)
	token := testutil.DefaultTestToken()

	customer := testutil.SeedCustomer(t, env.DB, "cust-dev", "Jorge", "Castro", "1000000201")
	device := testutil.SeedDevice(t, env.DB, "dev-act", customer.ID)

	w := testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/devices/"+device.ID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// sigue consultable con su historial
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/devices/"+device.ID, nil, token)
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["is_active"] != false {
		t.Fatalf("expected is_active false, got %v", data["is_active"])
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/devices/"+device.ID+"/reactivate", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/devices/"+device.ID, nil, token)
	data = testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["is_active"] != true {
		t.Fatalf("expected is_active true after reactivate, got %v", data["is_active"])
	}
}

func TestDeviceReactivateUnknownIsNotFound(t *testing.T) {
	env := setupDeviceTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/devices/no-existe/reactivate", nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

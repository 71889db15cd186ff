package handler

import (
	"net/http"
	"testing"

	"github.com/SantiagoMGS/mipc-api/internal/taller/entity"
	"github.com/SantiagoMGS/mipc-api/internal/taller/repository"
	"github.com/SantiagoMGS/mipc-api/internal/taller/service"
	"github.com/SantiagoMGS/mipc-api/internal/taller/testutil"
)

func setupItemTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svc := service.NewItemService(repos.Item)
	h := NewItemHandler(svc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/items", h.List)
	api.POST("/items", h.Create)
	api.GET("/items/:id", h.Get)
	api.PATCH("/items/:id", h.Update)
	api.DELETE("/items/:id", h.Delete)
	api.POST("/items/:id/reactivate", h.Reactivate)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestItemCodesSequentialPerType(t *testing.T) {
	env := setupItemTest(t)
	token := testutil.DefaultTestToken()

	cases := []struct {
		itemType string
		name     string
		want     string
	}{
		{entity.ItemTypeProducto, "Memoria RAM 8GB", "PRD-0001"},
		{entity.ItemTypeProducto, "Disco SSD 480GB", "PRD-0002"},
		{entity.ItemTypeServicio, "Formateo e instalación", "SRV-0001"},
		{entity.ItemTypeProducto, "Pasta térmica", "PRD-0003"},
		{entity.ItemTypeServicio, "Limpieza interna", "SRV-0002"},
	}

	for _, tc := range cases {
		body := map[string]interface{}{
			"item_type": tc.itemType,
			"name":      tc.name,
			"price":     "50000",
		}
		w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/items", body, token)
		if w.Code != http.StatusCreated {
			t.Fatalf("create %s: expected 201, got %d: %s", tc.name, w.Code, w.Body.String())
		}
		data := testutil.ParseResponse(w)["data"].(map[string]interface{})
		if data["code"] != tc.want {
			t.Fatalf("expected code %s for %s, got %v", tc.want, tc.name, data["code"])
		}
	}
}

func TestItemSoftDeleteHiddenFromList(t *testing.T) {
	env := setupItemTest(t)
	token := testutil.DefaultTestToken()

	item := testutil.SeedItem(t, env.DB, "item-del", "PRD-0009", entity.ItemTypeProducto, "Cargador genérico", 45000)

	w := testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/items/"+item.ID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// el listado normal lo oculta
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/items", nil, token)
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if len(data["items"].([]interface{})) != 0 {
		t.Fatalf("expected deleted item hidden from list")
	}

	// con include_deleted aparece
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/items?include_deleted=true", nil, token)
	data = testutil.ParseResponse(w)["data"].(map[string]interface{})
	if len(data["items"].([]interface{})) != 1 {
		t.Fatalf("expected deleted item visible with include_deleted")
	}

	// reactivar lo devuelve al catálogo
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/items/"+item.ID+"/reactivate", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	itemData := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if itemData["is_active"] != true || itemData["deleted_at"] != nil {
		t.Fatalf("expected reactivated item active, got %v", itemData)
	}
}

package handler

import (
	"net/http"
	"testing"

	"github.com/SantiagoMGS/mipc-api/internal/taller/entity"
	"github.com/SantiagoMGS/mipc-api/internal/taller/repository"
	"github.com/SantiagoMGS/mipc-api/internal/taller/service"
	"github.com/SantiagoMGS/mipc-api/internal/taller/testutil"
	"github.com/shopspring/decimal"
)

func setupOrderTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svc := service.NewOrderService(repos.Order, repos.Payment, repos.Item, repos.Customer, repos.Device, repos.User)
	h := NewOrderHandler(svc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.POST("/service-orders", h.Create)
	api.GET("/service-orders/:id", h.Get)
	api.PATCH("/service-orders/:id", h.Update)
	api.POST("/service-orders/:id/status", h.ChangeStatus)
	api.GET("/service-orders/:id/status-options", h.StatusOptions)
	api.GET("/service-orders/:id/history", h.History)
	api.POST("/service-orders/:id/items", h.AddItem)
	api.DELETE("/service-orders/:id/items/:itemId", h.RemoveItem)
	api.GET("/service-orders/:id/payments", h.ListPayments)
	api.POST("/service-orders/:id/payments", h.AddPayment)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func seedOrderFixtures(t *testing.T, env *testutil.TestEnv) (customerID, deviceID, technicianID string) {
	t.Helper()
	tech := testutil.SeedUser(t, env.DB, "tech-001", "Carlos Rojas", "carlos@taller.test", entity.RoleTecnico, "clave-secreta")
	customer := testutil.SeedCustomer(t, env.DB, "cust-001", "Ana", "García", "1020304050")
	device := testutil.SeedDevice(t, env.DB, "dev-001", customer.ID)
	return customer.ID, device.ID, tech.ID
}

func createTestOrder(t *testing.T, env *testutil.TestEnv, token string) string {
	t.Helper()
	customerID, deviceID, technicianID := seedOrderFixtures(t, env)

	body := map[string]interface{}{
		"customer_id":         customerID,
		"device_id":           deviceID,
		"technician_id":       technicianID,
		"problem_description": "No enciende después de una subida de tensión",
		"labor_cost":          "80000",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/service-orders", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	return data["id"].(string)
}

func TestOrderCreateStartsReceived(t *testing.T) {
	env := setupOrderTest(t)
	token := testutil.DefaultTestToken()

	orderID := createTestOrder(t, env, token)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/service-orders/"+orderID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["status"] != entity.OrderStatusRecibido {
		t.Fatalf("expected status RECIBIDO, got %v", data["status"])
	}
	if data["payment_status"] != entity.PaymentStatusPendiente {
		t.Fatalf("expected payment_status PENDIENTE, got %v", data["payment_status"])
	}
	if data["order_number"] == "" {
		t.Fatal("expected generated order number")
	}
}

func TestOrderCreateRejectsInvalidTechnician(t *testing.T) {
	env := setupOrderTest(t)
	token := testutil.DefaultTestToken()

	customerID, deviceID, _ := seedOrderFixtures(t, env)
	aux := testutil.SeedUser(t, env.DB, "aux-001", "Lucía Peña", "lucia@taller.test", entity.RoleAuxiliar, "clave-secreta")

	body := map[string]interface{}{
		"customer_id":         customerID,
		"device_id":           deviceID,
		"technician_id":       "tech-inexistente",
		"problem_description": "Pantalla rota tras una caída",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/service-orders", body, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for unknown technician, got %d: %s", w.Code, w.Body.String())
	}

	// un auxiliar no puede quedar asignado como técnico
	body["technician_id"] = aux.ID
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/service-orders", body, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for non-technician assignee, got %d: %s", w.Code, w.Body.String())
	}
}

func TestOrderInvalidTransitionRejected(t *testing.T) {
	env := setupOrderTest(t)
	token := testutil.DefaultTestToken()

	orderID := createTestOrder(t, env, token)

	// RECIBIDO no puede saltar directo a REPARADO
	body := map[string]interface{}{"status": entity.OrderStatusReparado}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/service-orders/"+orderID+"/status", body, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestOrderFullLifecycle(t *testing.T) {
	env := setupOrderTest(t)
	token := testutil.DefaultTestToken()

	orderID := createTestOrder(t, env, token)

	steps := []string{
		entity.OrderStatusEnDiagnostico,
		entity.OrderStatusEnReparacion,
		entity.OrderStatusReparado,
		entity.OrderStatusCompleto,
		entity.OrderStatusFacturado,
	}
	for _, status := range steps {
		body := map[string]interface{}{"status": status}
		w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/service-orders/"+orderID+"/status", body, token)
		if w.Code != http.StatusOK {
			t.Fatalf("transition to %s: expected 200, got %d: %s", status, w.Code, w.Body.String())
		}
	}

	// el historial registra cada transición
	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/service-orders/"+orderID+"/history", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	logs := testutil.ParseResponse(w)["data"].([]interface{})
	if len(logs) != len(steps) {
		t.Fatalf("expected %d history entries, got %d", len(steps), len(logs))
	}

	// FACTURADO es terminal
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/service-orders/"+orderID+"/status-options", nil, token)
	options := testutil.ParseResponse(w)["data"].(map[string]interface{})["options"].([]interface{})
	if len(options) != 0 {
		t.Fatalf("expected no options from FACTURADO, got %v", options)
	}
}

func TestOrderItemsLockedAfterComplete(t *testing.T) {
	env := setupOrderTest(t)
	token := testutil.DefaultTestToken()

	orderID := createTestOrder(t, env, token)
	item := testutil.SeedItem(t, env.DB, "item-001", "PRD-0001", entity.ItemTypeProducto, "Disco SSD 480GB", 250000)

	// agregar ítem mientras está editable
	body := map[string]interface{}{"item_id": item.ID, "quantity": 1}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/service-orders/"+orderID+"/items", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["total_cost"] != "330000" {
		t.Fatalf("expected total_cost 330000 (80000 labor + 250000 parts), got %v", data["total_cost"])
	}

	// llevar la orden hasta COMPLETO
	for _, status := range []string{
		entity.OrderStatusEnDiagnostico,
		entity.OrderStatusEnReparacion,
		entity.OrderStatusReparado,
		entity.OrderStatusCompleto,
	} {
		sb := map[string]interface{}{"status": status}
		w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/service-orders/"+orderID+"/status", sb, token)
		if w.Code != http.StatusOK {
			t.Fatalf("transition to %s failed: %s", status, w.Body.String())
		}
	}

	// COMPLETO bloquea la edición de ítems
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/service-orders/"+orderID+"/items", body, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 adding item to COMPLETO order, got %d: %s", w.Code, w.Body.String())
	}
}

func TestOrderPaymentLedger(t *testing.T) {
	env := setupOrderTest(t)
	token := testutil.DefaultTestToken()

	orderID := createTestOrder(t, env, token)

	// primer abono parcial
	body := map[string]interface{}{"amount": "50000", "payment_method": entity.PaymentMethodEfectivo}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/service-orders/"+orderID+"/payments", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/service-orders/"+orderID+"/payments", nil, token)
	summary := testutil.ParseResponse(w)["data"].(map[string]interface{})["summary"].(map[string]interface{})
	if summary["payment_status"] != entity.PaymentStatusAbono {
		t.Fatalf("expected ABONO after partial payment, got %v", summary["payment_status"])
	}
	if summary["balance"] != "30000" {
		t.Fatalf("expected balance 30000, got %v", summary["balance"])
	}

	// abono que cubre el saldo
	body = map[string]interface{}{"amount": "30000", "payment_method": entity.PaymentMethodTransferencia}
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/service-orders/"+orderID+"/payments", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// saldo en cero: no se aceptan más abonos
	body = map[string]interface{}{"amount": "1000", "payment_method": entity.PaymentMethodEfectivo}
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/service-orders/"+orderID+"/payments", body, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 paying settled order, got %d: %s", w.Code, w.Body.String())
	}
}

func TestOrderPaymentRejectedWhenCancelled(t *testing.T) {
	env := setupOrderTest(t)
	token := testutil.DefaultTestToken()

	orderID := createTestOrder(t, env, token)

	body := map[string]interface{}{"status": entity.OrderStatusCancelado}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/service-orders/"+orderID+"/status", body, token)
	if w.Code != http.StatusOK {
		t.Fatalf("cancel failed: %s", w.Body.String())
	}

	payBody := map[string]interface{}{"amount": "10000", "payment_method": entity.PaymentMethodEfectivo}
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/service-orders/"+orderID+"/payments", payBody, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 paying cancelled order, got %d: %s", w.Code, w.Body.String())
	}
}

func TestOrderItemWithIvaAndDiscount(t *testing.T) {
	env := setupOrderTest(t)
	token := testutil.DefaultTestToken()

	orderID := createTestOrder(t, env, token)
	item := testutil.SeedItem(t, env.DB, "item-iva", "SRV-0001", entity.ItemTypeServicio, "Mantenimiento preventivo", 100000)

	body := map[string]interface{}{
		"item_id":  item.ID,
		"quantity": 2,
		"discount": "30000",
		"has_iva":  true,
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/service-orders/"+orderID+"/items", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// (2×100000 − 30000) × 1.19 = 202300
	var orderItem entity.ServiceOrderItem
	if err := env.DB.Where("order_id = ?", orderID).First(&orderItem).Error; err != nil {
		t.Fatalf("failed to load order item: %v", err)
	}
	if !orderItem.Subtotal.Equal(decimal.NewFromInt(202300)) {
		t.Fatalf("expected subtotal 202300, got %s", orderItem.Subtotal)
	}
}

func TestOrderRequiresAuth(t *testing.T) {
	env := setupOrderTest(t)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/service-orders/any-id", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

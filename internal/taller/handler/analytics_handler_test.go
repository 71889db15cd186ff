package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/SantiagoMGS/mipc-api/internal/taller/entity"
	"github.com/SantiagoMGS/mipc-api/internal/taller/service"
	"github.com/SantiagoMGS/mipc-api/internal/taller/testutil"
	"github.com/shopspring/decimal"
)

func setupAnalyticsTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	svc := service.NewAnalyticsService(db)
	h := NewAnalyticsHandler(svc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1/analytics")
	api.GET("/summary", h.Summary)
	api.GET("/orders-by-status", h.OrdersByStatus)
	api.GET("/revenue", h.Revenue)
	api.GET("/payment-methods", h.PaymentMethods)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func seedAnalyticsData(t *testing.T, env *testutil.TestEnv) {
	t.Helper()
	customer := testutil.SeedCustomer(t, env.DB, "cust-an", "Diana", "Castro", "1000000010")
	device := testutil.SeedDevice(t, env.DB, "dev-an", customer.ID)

	now := time.Now()
	orders := []entity.ServiceOrder{
		{
			ID: "ord-an-1", OrderNumber: "OS-2026-00001",
			CustomerID: customer.ID, DeviceID: device.ID, CreatedByID: "test-user-001",
			Status: entity.OrderStatusEnReparacion, Priority: entity.PriorityNormal,
			LaborCost: decimal.NewFromInt(80000), TotalCost: decimal.NewFromInt(80000),
			Balance: decimal.NewFromInt(30000), TotalPaid: decimal.NewFromInt(50000),
			PaymentStatus: entity.PaymentStatusAbono, ProblemDescription: "Pantalla rota",
			CreatedAt: now.AddDate(0, 0, -2), UpdatedAt: now,
		},
		{
			ID: "ord-an-2", OrderNumber: "OS-2026-00002",
			CustomerID: customer.ID, DeviceID: device.ID, CreatedByID: "test-user-001",
			Status: entity.OrderStatusRecibido, Priority: entity.PriorityAlta,
			LaborCost: decimal.NewFromInt(60000), TotalCost: decimal.NewFromInt(60000),
			Balance: decimal.NewFromInt(60000), TotalPaid: decimal.Zero,
			PaymentStatus: entity.PaymentStatusPendiente, ProblemDescription: "No enciende",
			CreatedAt: now.AddDate(0, 0, -1), UpdatedAt: now,
		},
	}
	for i := range orders {
		if err := env.DB.Create(&orders[i]).Error; err != nil {
			t.Fatalf("failed to seed order: %v", err)
		}
	}

	payments := []entity.Payment{
		{ID: "pay-an-1", OrderID: "ord-an-1", Amount: decimal.NewFromInt(50000),
			PaymentMethod: entity.PaymentMethodEfectivo, PaymentDate: now.AddDate(0, 0, -1)},
	}
	for i := range payments {
		if err := env.DB.Create(&payments[i]).Error; err != nil {
			t.Fatalf("failed to seed payment: %v", err)
		}
	}
}

func TestAnalyticsSummary(t *testing.T) {
	env := setupAnalyticsTest(t)
	token := testutil.DefaultTestToken()
	seedAnalyticsData(t, env)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/analytics/summary", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["order_count"].(float64) != 2 {
		t.Fatalf("expected 2 orders, got %v", data["order_count"])
	}
	if data["revenue"] != "50000" {
		t.Fatalf("expected revenue 50000, got %v", data["revenue"])
	}
	if data["active_customers"].(float64) != 1 {
		t.Fatalf("expected 1 active customer, got %v", data["active_customers"])
	}
}

func TestAnalyticsOrdersByStatus(t *testing.T) {
	env := setupAnalyticsTest(t)
	token := testutil.DefaultTestToken()
	seedAnalyticsData(t, env)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/analytics/orders-by-status", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	counts := testutil.ParseResponse(w)["data"].([]interface{})
	if len(counts) != 2 {
		t.Fatalf("expected 2 status buckets, got %d", len(counts))
	}
}

func TestAnalyticsRevenueWithCompare(t *testing.T) {
	env := setupAnalyticsTest(t)
	token := testutil.DefaultTestToken()
	seedAnalyticsData(t, env)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/analytics/revenue?group_by=day&compare=true", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["group_by"] != "day" {
		t.Fatalf("expected group_by day, got %v", data["group_by"])
	}
	points := data["points"].([]interface{})
	if len(points) != 1 {
		t.Fatalf("expected 1 revenue point, got %d", len(points))
	}
}

func TestAnalyticsRevenueRejectsBadGroupBy(t *testing.T) {
	env := setupAnalyticsTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/analytics/revenue?group_by=hour", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for group_by=hour, got %d", w.Code)
	}
}

func TestAnalyticsPaymentMethods(t *testing.T) {
	env := setupAnalyticsTest(t)
	token := testutil.DefaultTestToken()
	seedAnalyticsData(t, env)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/analytics/payment-methods", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	methods := testutil.ParseResponse(w)["data"].([]interface{})
	if len(methods) != 1 {
		t.Fatalf("expected 1 method bucket, got %d", len(methods))
	}
	first := methods[0].(map[string]interface{})
	if first["payment_method"] != entity.PaymentMethodEfectivo {
		t.Fatalf("expected EFECTIVO, got %v", first["payment_method"])
	}
}

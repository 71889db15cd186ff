package handler

import (
	"strconv"
	"time"

	"github.com/SantiagoMGS/mipc-api/internal/taller/service"
	"github.com/gin-gonic/gin"
)

// AnalyticsHandler handler de los reportes agregados
type AnalyticsHandler struct {
	svc *service.AnalyticsService
}

// NewAnalyticsHandler crea el handler de analítica
func NewAnalyticsHandler(svc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// parseRange lee from/to del query. Por defecto cubre los últimos 30 días;
// to es exclusivo y se corre un día cuando viene como fecha simple.
func parseRange(c *gin.Context) (service.DateRange, error) {
	now := time.Now()
	r := service.DateRange{
		From: now.AddDate(0, 0, -30).Truncate(24 * time.Hour),
		To:   now,
	}

	if from := c.Query("from"); from != "" {
		t, err := parseDate(from)
		if err != nil {
			return r, err
		}
		r.From = t
	}
	if to := c.Query("to"); to != "" {
		t, dateOnly, err := parseDateWithPrecision(to)
		if err != nil {
			return r, err
		}
		if dateOnly {
			t = t.AddDate(0, 0, 1)
		}
		r.To = t
	}
	return r, nil
}

func parseDate(s string) (time.Time, error) {
	t, _, err := parseDateWithPrecision(s)
	return t, err
}

func parseDateWithPrecision(s string) (time.Time, bool, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	return t, false, err
}

func compareFlag(c *gin.Context) bool {
	return c.Query("compare") == "true"
}

func limitParam(c *gin.Context) int {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return limit
}

// Summary resumen del periodo
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	r, err := parseRange(c)
	if err != nil {
		BadRequest(c, "Rango de fechas inválido: "+err.Error())
		return
	}

	summary, err := h.svc.GetSummary(c.Request.Context(), r)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, summary)
}

// OrdersByStatus conteo por estado
func (h *AnalyticsHandler) OrdersByStatus(c *gin.Context) {
	r, err := parseRange(c)
	if err != nil {
		BadRequest(c, "Rango de fechas inválido: "+err.Error())
		return
	}

	results, err := h.svc.GetOrdersByStatus(c.Request.Context(), r)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, results)
}

// OrdersByPriority conteo por prioridad
func (h *AnalyticsHandler) OrdersByPriority(c *gin.Context) {
	r, err := parseRange(c)
	if err != nil {
		BadRequest(c, "Rango de fechas inválido: "+err.Error())
		return
	}

	results, err := h.svc.GetOrdersByPriority(c.Request.Context(), r)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, results)
}

// Revenue recaudo en el tiempo
func (h *AnalyticsHandler) Revenue(c *gin.Context) {
	r, err := parseRange(c)
	if err != nil {
		BadRequest(c, "Rango de fechas inválido: "+err.Error())
		return
	}

	series, err := h.svc.GetRevenue(c.Request.Context(), r, c.Query("group_by"), compareFlag(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, series)
}

// PaymentMethods totales por método de pago
func (h *AnalyticsHandler) PaymentMethods(c *gin.Context) {
	r, err := parseRange(c)
	if err != nil {
		BadRequest(c, "Rango de fechas inválido: "+err.Error())
		return
	}

	results, err := h.svc.GetPaymentMethods(c.Request.Context(), r)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, results)
}

// TopItems ítems más vendidos
func (h *AnalyticsHandler) TopItems(c *gin.Context) {
	r, err := parseRange(c)
	if err != nil {
		BadRequest(c, "Rango de fechas inválido: "+err.Error())
		return
	}

	results, err := h.svc.GetTopItems(c.Request.Context(), r, limitParam(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, results)
}

// TopCustomers clientes por facturación
func (h *AnalyticsHandler) TopCustomers(c *gin.Context) {
	r, err := parseRange(c)
	if err != nil {
		BadRequest(c, "Rango de fechas inválido: "+err.Error())
		return
	}

	results, err := h.svc.GetTopCustomers(c.Request.Context(), r, limitParam(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, results)
}

// TechnicianPerformance rendimiento por técnico
func (h *AnalyticsHandler) TechnicianPerformance(c *gin.Context) {
	r, err := parseRange(c)
	if err != nil {
		BadRequest(c, "Rango de fechas inválido: "+err.Error())
		return
	}

	results, err := h.svc.GetTechnicianPerformance(c.Request.Context(), r)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, results)
}

// NewCustomers clientes nuevos en el tiempo
func (h *AnalyticsHandler) NewCustomers(c *gin.Context) {
	r, err := parseRange(c)
	if err != nil {
		BadRequest(c, "Rango de fechas inválido: "+err.Error())
		return
	}

	series, err := h.svc.GetNewCustomers(c.Request.Context(), r, c.Query("group_by"), compareFlag(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, series)
}

// RepairTimes tiempos promedio de reparación
func (h *AnalyticsHandler) RepairTimes(c *gin.Context) {
	r, err := parseRange(c)
	if err != nil {
		BadRequest(c, "Rango de fechas inválido: "+err.Error())
		return
	}

	times, err := h.svc.GetRepairTimes(c.Request.Context(), r)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, times)
}

// DeviceTypes órdenes por tipo de equipo
func (h *AnalyticsHandler) DeviceTypes(c *gin.Context) {
	r, err := parseRange(c)
	if err != nil {
		BadRequest(c, "Rango de fechas inválido: "+err.Error())
		return
	}

	results, err := h.svc.GetDeviceTypes(c.Request.Context(), r)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, results)
}

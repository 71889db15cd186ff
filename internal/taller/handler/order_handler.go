package handler

import (
	"github.com/SantiagoMGS/mipc-api/internal/taller/service"
	"github.com/gin-gonic/gin"
)

// OrderHandler handler de órdenes de servicio
type OrderHandler struct {
	svc *service.OrderService
}

// NewOrderHandler crea el handler de órdenes
func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// List listado de órdenes con filtros
func (h *OrderHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := CollectFilters(c, "search", "status", "payment_status", "priority", "customer_id", "technician_id")

	orders, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, NewListResponse(orders, page, pageSize, total))
}

// Get detalle de la orden con cliente, equipo, ítems y abonos
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		NotFound(c, "Orden no encontrada")
		return
	}
	Success(c, order)
}

// Create crea una orden en estado RECIBIDO
func (h *OrderHandler) Create(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Cuerpo de la petición inválido: "+err.Error())
		return
	}

	order, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		Fail(c, err, "Orden no encontrada")
		return
	}
	Created(c, order)
}

// Update actualización parcial de la orden
func (h *OrderHandler) Update(c *gin.Context) {
	var req service.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Cuerpo de la petición inválido: "+err.Error())
		return
	}

	order, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err, "Orden no encontrada")
		return
	}
	Success(c, order)
}

// ChangeStatus transiciona el estado de la orden
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	var req service.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Cuerpo de la petición inválido: "+err.Error())
		return
	}

	order, err := h.svc.ChangeStatus(c.Request.Context(), c.Param("id"), &req, GetUserID(c))
	if err != nil {
		Fail(c, err, "Orden no encontrada")
		return
	}
	Success(c, order)
}

// StatusOptions estados destino permitidos desde el estado actual
func (h *OrderHandler) StatusOptions(c *gin.Context) {
	options, err := h.svc.StatusOptions(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err, "Orden no encontrada")
		return
	}
	Success(c, gin.H{"options": options})
}

// History historial de cambios de estado
func (h *OrderHandler) History(c *gin.Context) {
	logs, err := h.svc.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err, "Orden no encontrada")
		return
	}
	Success(c, logs)
}

// AddItem agrega un ítem de catálogo a la orden
func (h *OrderHandler) AddItem(c *gin.Context) {
	var req service.AddOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Cuerpo de la petición inválido: "+err.Error())
		return
	}

	order, err := h.svc.AddItem(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err, "Orden no encontrada")
		return
	}
	Created(c, order)
}

// UpdateItem edita un ítem de la orden
func (h *OrderHandler) UpdateItem(c *gin.Context) {
	var req service.UpdateOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Cuerpo de la petición inválido: "+err.Error())
		return
	}

	order, err := h.svc.UpdateItem(c.Request.Context(), c.Param("id"), c.Param("itemId"), &req)
	if err != nil {
		Fail(c, err, "Ítem de la orden no encontrado")
		return
	}
	Success(c, order)
}

// RemoveItem quita un ítem de la orden
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	order, err := h.svc.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("itemId"))
	if err != nil {
		Fail(c, err, "Ítem de la orden no encontrado")
		return
	}
	Success(c, order)
}

// ListPayments abonos de la orden con el resumen del ledger
func (h *OrderHandler) ListPayments(c *gin.Context) {
	payments, summary, err := h.svc.ListPayments(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err, "Orden no encontrada")
		return
	}
	Success(c, gin.H{
		"payments": payments,
		"summary":  summary,
	})
}

// AddPayment registra un abono
func (h *OrderHandler) AddPayment(c *gin.Context) {
	var req service.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Cuerpo de la petición inválido: "+err.Error())
		return
	}

	payment, err := h.svc.AddPayment(c.Request.Context(), c.Param("id"), &req, GetUserID(c))
	if err != nil {
		Fail(c, err, "Orden no encontrada")
		return
	}
	Created(c, payment)
}

// RemovePayment elimina un abono registrado por error
func (h *OrderHandler) RemovePayment(c *gin.Context) {
	if err := h.svc.RemovePayment(c.Request.Context(), c.Param("id"), c.Param("paymentId")); err != nil {
		Fail(c, err, "Abono no encontrado")
		return
	}
	Success(c, nil)
}

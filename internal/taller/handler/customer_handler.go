package handler

import (
	"github.com/SantiagoMGS/mipc-api/internal/taller/service"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handler de clientes
type CustomerHandler struct {
	svc *service.CustomerService
}

// NewCustomerHandler crea el handler de clientes
func NewCustomerHandler(svc *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

// List listado de clientes con búsqueda y filtros
func (h *CustomerHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := CollectFilters(c, "search", "customer_type", "is_active")

	customers, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, NewListResponse(customers, page, pageSize, total))
}

// Get detalle de cliente con sus equipos
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		NotFound(c, "Cliente no encontrado")
		return
	}
	Success(c, customer)
}

// Create crea un cliente
func (h *CustomerHandler) Create(c *gin.Context) {
	var req service.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Cuerpo de la petición inválido: "+err.Error())
		return
	}

	customer, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err, "Cliente no encontrado")
		return
	}
	Created(c, customer)
}

// Update actualización parcial de cliente
func (h *CustomerHandler) Update(c *gin.Context) {
	var req service.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Cuerpo de la petición inválido: "+err.Error())
		return
	}

	customer, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err, "Cliente no encontrado")
		return
	}
	Success(c, customer)
}

// Deactivate desactiva el cliente conservando su historial
func (h *CustomerHandler) Deactivate(c *gin.Context) {
	if err := h.svc.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err, "Cliente no encontrado")
		return
	}
	Success(c, nil)
}

// Reactivate reactiva un cliente desactivado
func (h *CustomerHandler) Reactivate(c *gin.Context) {
	if err := h.svc.Reactivate(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err, "Cliente no encontrado")
		return
	}
	Success(c, nil)
}

// Devices equipos del cliente
func (h *CustomerHandler) Devices(c *gin.Context) {
	devices, err := h.svc.Devices(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err, "Cliente no encontrado")
		return
	}
	Success(c, devices)
}

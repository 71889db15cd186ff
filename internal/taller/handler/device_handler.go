package handler

import (
	"github.com/SantiagoMGS/mipc-api/internal/taller/service"
	"github.com/gin-gonic/gin"
)

// DeviceHandler handler de equipos y tipos de equipo
type DeviceHandler struct {
	svc *service.DeviceService
}

// NewDeviceHandler crea el handler de equipos
func NewDeviceHandler(svc *service.DeviceService) *DeviceHandler {
	return &DeviceHandler{svc: svc}
}

// List listado de equipos
func (h *DeviceHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := CollectFilters(c, "search", "customer_id", "device_type_id", "is_active")

	devices, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, NewListResponse(devices, page, pageSize, total))
}

// Get detalle de equipo
func (h *DeviceHandler) Get(c *gin.Context) {
	device, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		NotFound(c, "Equipo no encontrado")
		return
	}
	Success(c, device)
}

// Create registra un equipo
func (h *DeviceHandler) Create(c *gin.Context) {
	var req service.CreateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Cuerpo de la petición inválido: "+err.Error())
		return
	}

	device, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err, "Equipo no encontrado")
		return
	}
	Created(c, device)
}

// Update actualización parcial de equipo
func (h *DeviceHandler) Update(c *gin.Context) {
	var req service.UpdateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Cuerpo de la petición inválido: "+err.Error())
		return
	}

	device, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err, "Equipo no encontrado")
		return
	}
	Success(c, device)
}

// Deactivate baja lógica del equipo
func (h *DeviceHandler) Deactivate(c *gin.Context) {
	if err := h.svc.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err, "Equipo no encontrado")
		return
	}
	Success(c, nil)
}

// Reactivate reactiva un equipo dado de baja
func (h *DeviceHandler) Reactivate(c *gin.Context) {
	if err := h.svc.Reactivate(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err, "Equipo no encontrado")
		return
	}
	Success(c, nil)
}

// === Tipos de equipo ===

// ListTypes tipos de equipo
func (h *DeviceHandler) ListTypes(c *gin.Context) {
	types, err := h.svc.ListTypes(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, types)
}

// CreateType crea un tipo de equipo
func (h *DeviceHandler) CreateType(c *gin.Context) {
	var req service.DeviceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Cuerpo de la petición inválido: "+err.Error())
		return
	}

	deviceType, err := h.svc.CreateType(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err, "Tipo de equipo no encontrado")
		return
	}
	Created(c, deviceType)
}

// UpdateType edita un tipo de equipo
func (h *DeviceHandler) UpdateType(c *gin.Context) {
	var req service.DeviceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Cuerpo de la petición inválido: "+err.Error())
		return
	}

	deviceType, err := h.svc.UpdateType(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err, "Tipo de equipo no encontrado")
		return
	}
	Success(c, deviceType)
}

// DeleteType elimina un tipo de equipo sin equipos asociados
func (h *DeviceHandler) DeleteType(c *gin.Context) {
	if err := h.svc.DeleteType(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err, "Tipo de equipo no encontrado")
		return
	}
	Success(c, nil)
}

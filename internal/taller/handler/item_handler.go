package handler

import (
	"github.com/SantiagoMGS/mipc-api/internal/taller/service"
	"github.com/gin-gonic/gin"
)

// ItemHandler handler del catálogo
type ItemHandler struct {
	svc *service.ItemService
}

// NewItemHandler crea el handler del catálogo
func NewItemHandler(svc *service.ItemService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

// List listado de ítems
func (h *ItemHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := CollectFilters(c, "search", "item_type", "is_active", "include_deleted")

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, NewListResponse(items, page, pageSize, total))
}

// Get detalle de ítem
func (h *ItemHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		NotFound(c, "Ítem no encontrado")
		return
	}
	Success(c, item)
}

// Create crea un ítem con código autogenerado
func (h *ItemHandler) Create(c *gin.Context) {
	var req service.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Cuerpo de la petición inválido: "+err.Error())
		return
	}

	item, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err, "Ítem no encontrado")
		return
	}
	Created(c, item)
}

// Update actualización parcial de ítem
func (h *ItemHandler) Update(c *gin.Context) {
	var req service.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Cuerpo de la petición inválido: "+err.Error())
		return
	}

	item, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err, "Ítem no encontrado")
		return
	}
	Success(c, item)
}

// Delete borrado lógico del ítem
func (h *ItemHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err, "Ítem no encontrado")
		return
	}
	Success(c, nil)
}

// Reactivate revierte el borrado lógico
func (h *ItemHandler) Reactivate(c *gin.Context) {
	item, err := h.svc.Reactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err, "Ítem no encontrado")
		return
	}
	Success(c, item)
}

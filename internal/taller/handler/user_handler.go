package handler

import (
	"github.com/SantiagoMGS/mipc-api/internal/taller/service"
	"github.com/gin-gonic/gin"
)

// UserHandler handler de usuarios. Las rutas de escritura van detrás de
// RequireRole(ADMIN).
type UserHandler struct {
	svc *service.UserService
}

// NewUserHandler crea el handler de usuarios
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// List listado de usuarios
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := CollectFilters(c, "search", "role", "is_active")

	users, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, NewListResponse(users, page, pageSize, total))
}

// Technicians técnicos activos para asignar órdenes
func (h *UserHandler) Technicians(c *gin.Context) {
	technicians, err := h.svc.Technicians(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, technicians)
}

// Get detalle de usuario
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		NotFound(c, "Usuario no encontrado")
		return
	}
	Success(c, user)
}

// Create crea un usuario
func (h *UserHandler) Create(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Cuerpo de la petición inválido: "+err.Error())
		return
	}

	user, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err, "Usuario no encontrado")
		return
	}
	Created(c, user)
}

// Update actualización parcial de usuario
func (h *UserHandler) Update(c *gin.Context) {
	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Cuerpo de la petición inválido: "+err.Error())
		return
	}

	user, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err, "Usuario no encontrado")
		return
	}
	Success(c, user)
}

// Delete borrado lógico del usuario
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err, "Usuario no encontrado")
		return
	}
	Success(c, nil)
}

// Reactivate revierte el borrado lógico
func (h *UserHandler) Reactivate(c *gin.Context) {
	user, err := h.svc.Reactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err, "Usuario no encontrado")
		return
	}
	Success(c, user)
}

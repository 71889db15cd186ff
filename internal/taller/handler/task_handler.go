package handler

import (
	"github.com/SantiagoMGS/mipc-api/internal/taller/service"
	"github.com/gin-gonic/gin"
)

// TaskHandler handler de tareas rápidas
type TaskHandler struct {
	svc *service.TaskService
}

// NewTaskHandler crea el handler de tareas
func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// List listado de tareas
func (h *TaskHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := CollectFilters(c, "search", "status")

	tasks, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	Success(c, NewListResponse(tasks, page, pageSize, total))
}

// Get detalle de tarea
func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		NotFound(c, "Tarea no encontrada")
		return
	}
	Success(c, task)
}

// Create crea una tarea
func (h *TaskHandler) Create(c *gin.Context) {
	var req service.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Cuerpo de la petición inválido: "+err.Error())
		return
	}

	task, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err, "Tarea no encontrada")
		return
	}
	Created(c, task)
}

// Update edita la tarea, incluido el reemplazo de renglones
func (h *TaskHandler) Update(c *gin.Context) {
	var req service.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Cuerpo de la petición inválido: "+err.Error())
		return
	}

	task, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		Fail(c, err, "Tarea no encontrada")
		return
	}
	Success(c, task)
}

// Delete elimina la tarea con sus renglones
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err, "Tarea no encontrada")
		return
	}
	Success(c, nil)
}

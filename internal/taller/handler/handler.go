package handler

import (
	"errors"
	"strconv"

	"github.com/SantiagoMGS/mipc-api/internal/config"
	"github.com/SantiagoMGS/mipc-api/internal/taller/repository"
	"github.com/SantiagoMGS/mipc-api/internal/taller/service"
	"github.com/gin-gonic/gin"
)

// Handlers colección de handlers HTTP
type Handlers struct {
	Auth      *AuthHandler
	Customer  *CustomerHandler
	Device    *DeviceHandler
	Item      *ItemHandler
	Order     *OrderHandler
	User      *UserHandler
	Task      *TaskHandler
	Analytics *AnalyticsHandler
}

// NewHandlers crea la colección de handlers
func NewHandlers(svc *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(svc.Auth, cfg),
		Customer:  NewCustomerHandler(svc.Customer),
		Device:    NewDeviceHandler(svc.Device),
		Item:      NewItemHandler(svc.Item),
		Order:     NewOrderHandler(svc.Order),
		User:      NewUserHandler(svc.User),
		Task:      NewTaskHandler(svc.Task),
		Analytics: NewAnalyticsHandler(svc.Analytics),
	}
}

// Response estructura común de respuesta
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse respuesta de listado
type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// Pagination datos de paginación
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewListResponse arma la respuesta de listado con la paginación calculada
func NewListResponse(items interface{}, page, pageSize int, total int64) *ListResponse {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return &ListResponse{
		Items: items,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: totalPages,
		},
	}
}

// Success respuesta exitosa
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created respuesta de creación
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error respuesta de error
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest error de parámetros
func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

// Unauthorized no autenticado
func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

// Forbidden sin permisos
func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

// NotFound recurso inexistente
func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

// Conflict conflicto de estado
func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

// InternalError error del servidor
func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// Fail traduce errores de servicio al envelope. ErrNotFound sale como 404;
// el resto de errores de negocio, como 409.
func Fail(c *gin.Context, err error, notFoundMessage string) {
	if errors.Is(err, repository.ErrNotFound) {
		NotFound(c, notFoundMessage)
		return
	}
	Conflict(c, err.Error())
}

// GetUserID ID del usuario autenticado, puesto por el middleware JWT
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// GetPagination parámetros de paginación con valores por defecto
func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}

// CollectFilters recoge los query params indicados, omitiendo los vacíos
func CollectFilters(c *gin.Context, keys ...string) map[string]string {
	filters := make(map[string]string)
	for _, k := range keys {
		if v := c.Query(k); v != "" {
			filters[k] = v
		}
	}
	return filters
}

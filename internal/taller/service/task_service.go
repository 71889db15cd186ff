package service

import (
	"context"
	"fmt"

	"github.com/SantiagoMGS/mipc-api/internal/taller/entity"
	"github.com/SantiagoMGS/mipc-api/internal/taller/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaskService servicio de tareas rápidas
type TaskService struct {
	taskRepo *repository.TaskRepository
}

func NewTaskService(taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// TaskItemRequest renglón de tarea
type TaskItemRequest struct {
	Name     string          `json:"name" binding:"required"`
	Quantity int             `json:"quantity" binding:"required,gt=0"`
	Price    decimal.Decimal `json:"price"`
}

// CreateTaskRequest alta de tarea
type CreateTaskRequest struct {
	CustomerName string            `json:"customer_name" binding:"required"`
	Description  string            `json:"description" binding:"required"`
	Items        []TaskItemRequest `json:"items"`
}

// UpdateTaskRequest actualización de tarea. Si Items viene, reemplaza el
// listado completo.
type UpdateTaskRequest struct {
	CustomerName *string            `json:"customer_name"`
	Description  *string            `json:"description"`
	Status       *string            `json:"status" binding:"omitempty,oneof=PENDIENTE COMPLETADA"`
	Items        *[]TaskItemRequest `json:"items"`
}

// List lista de tareas
func (s *TaskService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Task, int64, error) {
	return s.taskRepo.FindAll(ctx, page, pageSize, filters)
}

// Get detalle de tarea
func (s *TaskService) Get(ctx context.Context, id string) (*entity.Task, error) {
	return s.taskRepo.FindByID(ctx, id)
}

// Create crea una tarea en estado PENDIENTE
func (s *TaskService) Create(ctx context.Context, req *CreateTaskRequest) (*entity.Task, error) {
	task := &entity.Task{
		ID:           uuid.New().String()[:32],
		CustomerName: req.CustomerName,
		Description:  req.Description,
		Status:       entity.TaskStatusPendiente,
	}
	for _, it := range req.Items {
		if it.Price.IsNegative() {
			return nil, fmt.Errorf("el precio no puede ser negativo")
		}
		task.Items = append(task.Items, entity.TaskItem{
			ID:       uuid.New().String()[:32],
			TaskID:   task.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return s.taskRepo.FindByID(ctx, task.ID)
}

// Update actualiza la tarea y, si vienen, reemplaza sus renglones
func (s *TaskService) Update(ctx context.Context, id string, req *UpdateTaskRequest) (*entity.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerName != nil {
		task.CustomerName = *req.CustomerName
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	if req.Items != nil {
		items := make([]entity.TaskItem, 0, len(*req.Items))
		for _, it := range *req.Items {
			if it.Price.IsNegative() {
				return nil, fmt.Errorf("el precio no puede ser negativo")
			}
			items = append(items, entity.TaskItem{
				ID:       uuid.New().String()[:32],
				TaskID:   task.ID,
				Name:     it.Name,
				Quantity: it.Quantity,
				Price:    it.Price,
			})
		}
		if err := s.taskRepo.ReplaceItems(ctx, task.ID, items); err != nil {
			return nil, err
		}
	}

	return s.taskRepo.FindByID(ctx, task.ID)
}

// Delete elimina la tarea con sus renglones
func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.taskRepo.Delete(ctx, id)
}

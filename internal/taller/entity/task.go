package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una tarea
const (
	TaskStatusPendiente  = "PENDIENTE"
	TaskStatusCompletada = "COMPLETADA"
)

// Task ticket ligero independiente de las órdenes de servicio
type Task struct {
	ID           string `json:"id" gorm:"primaryKey;size:32"`
	CustomerName string `json:"customer_name" gorm:"size:200;not null"`
	Description  string `json:"description" gorm:"type:text;not null"`
	Status       string `json:"status" gorm:"size:15;not null;default:PENDIENTE;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []TaskItem `json:"items,omitempty" gorm:"foreignKey:TaskID"`
}

func (Task) TableName() string {
	return "tasks"
}

// TaskItem renglón embebido de una tarea
type TaskItem struct {
	ID       string          `json:"id" gorm:"primaryKey;size:32"`
	TaskID   string          `json:"task_id" gorm:"size:32;not null;index"`
	Name     string          `json:"name" gorm:"size:200;not null"`
	Quantity int             `json:"quantity" gorm:"not null;default:1"`
	Price    decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
}

func (TaskItem) TableName() string {
	return "task_items"
}

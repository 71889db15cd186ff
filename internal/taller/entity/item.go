package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipo de ítem del catálogo
const (
	ItemTypeProducto = "PRODUCTO"
	ItemTypeServicio = "SERVICIO"
)

// Item entrada del catálogo de productos y servicios. Borrado lógico vía
// deletedAt + isActive, reactivable de forma independiente.
type Item struct {
	ID          string          `json:"id" gorm:"primaryKey;size:32"`
	Code        string          `json:"code" gorm:"size:32;uniqueIndex;not null"`
	ItemType    string          `json:"item_type" gorm:"size:10;not null;index"` // PRODUCTO/SERVICIO
	Name        string          `json:"name" gorm:"size:200;not null"`
	Description string          `json:"description" gorm:"size:500"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`

	IsActive  bool       `json:"is_active" gorm:"default:true;index"`
	DeletedAt *time.Time `json:"deleted_at" gorm:"index"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Item) TableName() string {
	return "items"
}

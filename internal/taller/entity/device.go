package entity

import "time"

// Tipo de almacenamiento
const (
	StorageTypeSSD = "SSD"
	StorageTypeHDD = "HDD"
)

// Device equipo de un cliente
type Device struct {
	ID           string `json:"id" gorm:"primaryKey;size:32"`
	CustomerID   string `json:"customer_id" gorm:"size:32;not null;index"`
	DeviceTypeID string `json:"device_type_id" gorm:"size:32;not null;index"`

	SerialNumber string `json:"serial_number" gorm:"size:100"`
	Brand        string `json:"brand" gorm:"size:100"`
	Model        string `json:"model" gorm:"size:100"`
	Processor    string `json:"processor" gorm:"size:100"`
	Ram          string `json:"ram" gorm:"size:50"`
	Storage      string `json:"storage" gorm:"size:50"`
	StorageType  string `json:"storage_type" gorm:"size:10"` // SSD/HDD
	Notes        string `json:"notes" gorm:"size:500"`

	IsActive  bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Customer   *Customer   `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	DeviceType *DeviceType `json:"device_type,omitempty" gorm:"foreignKey:DeviceTypeID"`
}

func (Device) TableName() string {
	return "devices"
}

// DeviceType catálogo de tipos de equipo (portátil, torre, impresora...)
type DeviceType struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	Name        string    `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Description string    `json:"description" gorm:"size:300"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (DeviceType) TableName() string {
	return "device_types"
}

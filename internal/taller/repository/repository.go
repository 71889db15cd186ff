package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories colección de repositorios del taller
type Repositories struct {
	Customer   *CustomerRepository
	Device     *DeviceRepository
	DeviceType *DeviceTypeRepository
	Item       *ItemRepository
	Order      *OrderRepository
	Payment    *PaymentRepository
	User       *UserRepository
	Task       *TaskRepository
}

// NewRepositories crea la colección de repositorios
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Customer:   NewCustomerRepository(db),
		Device:     NewDeviceRepository(db),
		DeviceType: NewDeviceTypeRepository(db),
		Item:       NewItemRepository(db),
		Order:      NewOrderRepository(db),
		Payment:    NewPaymentRepository(db),
		User:       NewUserRepository(db),
		Task:       NewTaskRepository(db),
	}
}

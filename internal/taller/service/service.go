package service

import (
	"github.com/SantiagoMGS/mipc-api/internal/config"
	"github.com/SantiagoMGS/mipc-api/internal/taller/repository"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services colección de servicios del taller
type Services struct {
	Auth      *AuthService
	Customer  *CustomerService
	Device    *DeviceService
	Item      *ItemService
	Order     *OrderService
	User      *UserService
	Task      *TaskService
	Analytics *AnalyticsService
}

// NewServices crea la colección de servicios
func NewServices(repos *repository.Repositories, db *gorm.DB, rdb *redis.Client, cfg *config.Config) *Services {
	return &Services{
		Auth:      NewAuthService(repos.User, rdb, cfg),
		Customer:  NewCustomerService(repos.Customer, repos.Device),
		Device:    NewDeviceService(repos.Device, repos.DeviceType, repos.Customer),
		Item:      NewItemService(repos.Item),
		Order:     NewOrderService(repos.Order, repos.Payment, repos.Item, repos.Customer, repos.Device, repos.User),
		User:      NewUserService(repos.User),
		Task:      NewTaskService(repos.Task),
		Analytics: NewAnalyticsService(db),
	}
}

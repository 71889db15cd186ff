package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SantiagoMGS/mipc-api/internal/taller/entity"
	"gorm.io/gorm"
)

// OrderRepository repositorio de órdenes de servicio
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// FindAll lista paginada de órdenes
func (r *OrderRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.ServiceOrder, int64, error) {
	var items []entity.ServiceOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ServiceOrder{})

	if search := filters["search"]; search != "" {
		like := "%" + search + "%"
		query = query.Where("order_number ILIKE ? OR problem_description ILIKE ?", like, like)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if paymentStatus := filters["payment_status"]; paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}
	if priority := filters["priority"]; priority != "" {
		query = query.Where("priority = ?", priority)
	}
	if customerID := filters["customer_id"]; customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if technicianID := filters["technician_id"]; technicianID != "" {
		query = query.Where("technician_id = ?", technicianID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Customer").
		Preload("Device").
		Preload("Technician").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

// FindByID busca una orden con sus relaciones e ítems
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*entity.ServiceOrder, error) {
	var order entity.ServiceOrder
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Device").
		Preload("Device.DeviceType").
		Preload("Technician").
		Preload("Items").
		Preload("Items.Item").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Create crea una orden
func (r *OrderRepository) Create(ctx context.Context, order *entity.ServiceOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// Update actualiza una orden
func (r *OrderRepository) Update(ctx context.Context, order *entity.ServiceOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// GenerateOrderNumber genera el consecutivo OS-{año}-{5 dígitos}
func (r *OrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("OS-%d", year)

	var maxNumber string
	err := r.db.WithContext(ctx).
		Model(&entity.ServiceOrder{}).
		Where("order_number LIKE ?", prefix+"%").
		Select(fmt.Sprintf("COALESCE(MAX(order_number), '%s-00000')", prefix)).
		Scan(&maxNumber).Error
	if err != nil {
		return "", err
	}

	var seq int
	fmt.Sscanf(maxNumber, prefix+"-%05d", &seq)
	seq++
	return fmt.Sprintf("%s-%05d", prefix, seq), nil
}

// === Ítems de la orden ===

// FindOrderItems ítems de una orden
func (r *OrderRepository) FindOrderItems(ctx context.Context, orderID string) ([]entity.ServiceOrderItem, error) {
	var items []entity.ServiceOrderItem
	err := r.db.WithContext(ctx).
		Preload("Item").
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

// FindOrderItemByID busca un ítem de orden por ID
func (r *OrderRepository) FindOrderItemByID(ctx context.Context, id string) (*entity.ServiceOrderItem, error) {
	var item entity.ServiceOrderItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// CreateOrderItem agrega un ítem a la orden
func (r *OrderRepository) CreateOrderItem(ctx context.Context, item *entity.ServiceOrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// UpdateOrderItem actualiza un ítem de la orden
func (r *OrderRepository) UpdateOrderItem(ctx context.Context, item *entity.ServiceOrderItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteOrderItem elimina un ítem de la orden
func (r *OrderRepository) DeleteOrderItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.ServiceOrderItem{}).Error
}

// === Historial de estados ===

// CreateStatusLog registra un cambio de estado
func (r *OrderRepository) CreateStatusLog(ctx context.Context, log *entity.OrderStatusLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FindStatusLogs historial de cambios de estado de una orden
func (r *OrderRepository) FindStatusLogs(ctx context.Context, orderID string) ([]entity.OrderStatusLog, error) {
	var logs []entity.OrderStatusLog
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}

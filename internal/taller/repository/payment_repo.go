package repository

import (
	"context"
	"errors"

	"github.com/SantiagoMGS/mipc-api/internal/taller/entity"
	"gorm.io/gorm"
)

// PaymentRepository repositorio de abonos
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// FindByOrderID abonos de una orden, en orden cronológico
func (r *PaymentRepository) FindByOrderID(ctx context.Context, orderID string) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("payment_date ASC, created_at ASC").
		Find(&payments).Error
	return payments, err
}

// FindByID busca un abono por ID
func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// Create registra un abono
func (r *PaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// Delete elimina un abono
func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Payment{}).Error
}

package repository

import (
	"context"
	"errors"

	"github.com/SantiagoMGS/mipc-api/internal/taller/entity"
	"gorm.io/gorm"
)

// CustomerRepository repositorio de clientes
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// FindAll lista paginada de clientes
func (r *CustomerRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Customer, int64, error) {
	var items []entity.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Customer{})

	// Búsqueda por subcadena, sin normalizar tildes: ILIKE es insensible a
	// mayúsculas pero 'perez' no encuentra 'Pérez'.
	if search := filters["search"]; search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR business_name ILIKE ? OR document_number ILIKE ?",
			like, like, like, like)
	}
	if customerType := filters["customer_type"]; customerType != "" {
		query = query.Where("customer_type = ?", customerType)
	}
	if active := filters["is_active"]; active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

// FindByID busca un cliente por ID
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).
		Preload("Devices").
		Where("id = ?", id).
		First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByDocument busca un cliente por (tipo, número) de documento
func (r *CustomerRepository) FindByDocument(ctx context.Context, documentType, documentNumber string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).
		Where("document_type = ? AND document_number = ?", documentType, documentNumber).
		First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// Create crea un cliente
func (r *CustomerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// Update actualiza un cliente
func (r *CustomerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// SetActive activa o desactiva un cliente (no hay borrado físico)
func (r *CustomerRepository) SetActive(ctx context.Context, id string, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Customer{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

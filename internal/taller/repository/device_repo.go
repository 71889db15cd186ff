package repository

import (
	"context"
	"errors"

	"github.com/SantiagoMGS/mipc-api/internal/taller/entity"
	"gorm.io/gorm"
)

// DeviceRepository repositorio de equipos
type DeviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// FindAll lista paginada de equipos
func (r *DeviceRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Device, int64, error) {
	var items []entity.Device
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Device{})

	if search := filters["search"]; search != "" {
		like := "%" + search + "%"
		query = query.Where("serial_number ILIKE ? OR brand ILIKE ? OR model ILIKE ?", like, like, like)
	}
	if customerID := filters["customer_id"]; customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if deviceTypeID := filters["device_type_id"]; deviceTypeID != "" {
		query = query.Where("device_type_id = ?", deviceTypeID)
	}
	if active := filters["is_active"]; active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("DeviceType").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

// FindByCustomerID equipos de un cliente
func (r *DeviceRepository) FindByCustomerID(ctx context.Context, customerID string) ([]entity.Device, error) {
	var items []entity.Device
	err := r.db.WithContext(ctx).
		Preload("DeviceType").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// FindByID busca un equipo por ID
func (r *DeviceRepository) FindByID(ctx context.Context, id string) (*entity.Device, error) {
	var device entity.Device
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("DeviceType").
		Where("id = ?", id).
		First(&device).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &device, nil
}

// Create crea un equipo
func (r *DeviceRepository) Create(ctx context.Context, device *entity.Device) error {
	return r.db.WithContext(ctx).Create(device).Error
}

// Update actualiza un equipo
func (r *DeviceRepository) Update(ctx context.Context, device *entity.Device) error {
	return r.db.WithContext(ctx).Save(device).Error
}

// SetActive activa o desactiva un equipo
func (r *DeviceRepository) SetActive(ctx context.Context, id string, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Device{}).
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

// DeviceTypeRepository repositorio de tipos de equipo
type DeviceTypeRepository struct {
	db *gorm.DB
}

func NewDeviceTypeRepository(db *gorm.DB) *DeviceTypeRepository {
	return &DeviceTypeRepository{db: db}
}

// FindAll lista de tipos de equipo
func (r *DeviceTypeRepository) FindAll(ctx context.Context) ([]entity.DeviceType, error) {
	var items []entity.DeviceType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

// FindByID busca un tipo de equipo por ID
func (r *DeviceTypeRepository) FindByID(ctx context.Context, id string) (*entity.DeviceType, error) {
	var deviceType entity.DeviceType
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&deviceType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &deviceType, nil
}

// Create crea un tipo de equipo
func (r *DeviceTypeRepository) Create(ctx context.Context, deviceType *entity.DeviceType) error {
	return r.db.WithContext(ctx).Create(deviceType).Error
}

// Update actualiza un tipo de equipo
func (r *DeviceTypeRepository) Update(ctx context.Context, deviceType *entity.DeviceType) error {
	return r.db.WithContext(ctx).Save(deviceType).Error
}

// Delete elimina un tipo de equipo
func (r *DeviceTypeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.DeviceType{}).Error
}

// CountDevices equipos que referencian un tipo
func (r *DeviceTypeRepository) CountDevices(ctx context.Context, deviceTypeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Device{}).
		Where("device_type_id = ?", deviceTypeID).
		Count(&count).Error
	return count, err
}

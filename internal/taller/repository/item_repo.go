package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SantiagoMGS/mipc-api/internal/taller/entity"
	"gorm.io/gorm"
)

// ItemRepository repositorio del catálogo de productos y servicios
type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// FindAll lista paginada del catálogo. Los eliminados (deleted_at) se
// excluyen salvo que se pida include_deleted.
func (r *ItemRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Item, int64, error) {
	var items []entity.Item
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Item{})

	if filters["include_deleted"] != "true" {
		query = query.Where("deleted_at IS NULL")
	}
	if search := filters["search"]; search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", like, like)
	}
	if itemType := filters["item_type"]; itemType != "" {
		query = query.Where("item_type = ?", itemType)
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

// FindByID busca un ítem por ID
func (r *ItemRepository) FindByID(ctx context.Context, id string) (*entity.Item, error) {
	var item entity.Item
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create crea un ítem
func (r *ItemRepository) Create(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update actualiza un ítem
func (r *ItemRepository) Update(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// SoftDelete marca el ítem como eliminado y lo desactiva
func (r *ItemRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&entity.Item{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]interface{}{"deleted_at": now, "is_active": false})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Reactivate limpia el borrado lógico y reactiva el ítem
func (r *ItemRepository) Reactivate(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Item{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"deleted_at": nil, "is_active": true})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GenerateCode genera un código de ítem PRD-/SRV-{4 dígitos}
func (r *ItemRepository) GenerateCode(ctx context.Context, itemType string) (string, error) {
	prefix := "PRD"
	if itemType == entity.ItemTypeServicio {
		prefix = "SRV"
	}

	var maxCode string
	err := r.db.WithContext(ctx).
		Model(&entity.Item{}).
		Where("item_type = ?", itemType).
		Select(fmt.Sprintf("COALESCE(MAX(code), '%s-0000')", prefix)).
		Scan(&maxCode).Error
	if err != nil {
		return "", err
	}

	var seq int
	fmt.Sscanf(maxCode, prefix+"-%04d", &seq)
	seq++
	return fmt.Sprintf("%s-%04d", prefix, seq), nil
}

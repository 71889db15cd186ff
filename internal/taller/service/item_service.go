package service

import (
	"context"
	"fmt"

	"github.com/SantiagoMGS/mipc-api/internal/taller/entity"
	"github.com/SantiagoMGS/mipc-api/internal/taller/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemService servicio del catálogo de productos y servicios
type ItemService struct {
	itemRepo *repository.ItemRepository
}

func NewItemService(itemRepo *repository.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// CreateItemRequest alta de ítem de catálogo
type CreateItemRequest struct {
	ItemType    string          `json:"item_type" binding:"required,oneof=PRODUCTO SERVICIO"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
}

// UpdateItemRequest actualización parcial de ítem
type UpdateItemRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	IsActive    *bool            `json:"is_active"`
}

// List lista de ítems. Los borrados solo aparecen con include_deleted.
func (s *ItemService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Item, int64, error) {
	return s.itemRepo.FindAll(ctx, page, pageSize, filters)
}

// Get detalle de ítem
func (s *ItemService) Get(ctx context.Context, id string) (*entity.Item, error) {
	return s.itemRepo.FindByID(ctx, id)
}

// Create crea un ítem con código autogenerado por tipo (PRD-/SRV-)
func (s *ItemService) Create(ctx context.Context, req *CreateItemRequest) (*entity.Item, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("el precio no puede ser negativo")
	}

	code, err := s.itemRepo.GenerateCode(ctx, req.ItemType)
	if err != nil {
		return nil, err
	}

	item := &entity.Item{
		ID:          uuid.New().String()[:32],
		Code:        code,
		ItemType:    req.ItemType,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    true,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update actualización parcial. El código y el tipo no cambian.
func (s *ItemService) Update(ctx context.Context, id string, req *UpdateItemRequest) (*entity.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("el precio no puede ser negativo")
		}
		item.Price = *req.Price
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete borrado lógico. Las órdenes que ya lo referencian no se tocan.
func (s *ItemService) Delete(ctx context.Context, id string) error {
	return s.itemRepo.SoftDelete(ctx, id)
}

// Reactivate revierte el borrado lógico
func (s *ItemService) Reactivate(ctx context.Context, id string) (*entity.Item, error) {
	if err := s.itemRepo.Reactivate(ctx, id); err != nil {
		return nil, err
	}
	return s.itemRepo.FindByID(ctx, id)
}

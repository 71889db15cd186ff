package service

import (
	"context"
	"fmt"

	"github.com/SantiagoMGS/mipc-api/internal/taller/entity"
	"github.com/SantiagoMGS/mipc-api/internal/taller/repository"
	"github.com/google/uuid"
)

// DeviceService servicio de equipos y tipos de equipo
type DeviceService struct {
	deviceRepo     *repository.DeviceRepository
	deviceTypeRepo *repository.DeviceTypeRepository
	customerRepo   *repository.CustomerRepository
}

func NewDeviceService(deviceRepo *repository.DeviceRepository, deviceTypeRepo *repository.DeviceTypeRepository, customerRepo *repository.CustomerRepository) *DeviceService {
	return &DeviceService{
		deviceRepo:     deviceRepo,
		deviceTypeRepo: deviceTypeRepo,
		customerRepo:   customerRepo,
	}
}

// CreateDeviceRequest registro de equipo
type CreateDeviceRequest struct {
	CustomerID   string `json:"customer_id" binding:"required"`
	DeviceTypeID string `json:"device_type_id" binding:"required"`
	SerialNumber string `json:"serial_number"`
	Brand        string `json:"brand" binding:"required"`
	Model        string `json:"model"`
	Processor    string `json:"processor"`
	Ram          string `json:"ram"`
	Storage      string `json:"storage"`
	StorageType  string `json:"storage_type" binding:"omitempty,oneof=SSD HDD"`
	Notes        string `json:"notes"`
}

// UpdateDeviceRequest actualización parcial de equipo
type UpdateDeviceRequest struct {
	DeviceTypeID *string `json:"device_type_id"`
	SerialNumber *string `json:"serial_number"`
	Brand        *string `json:"brand"`
	Model        *string `json:"model"`
	Processor    *string `json:"processor"`
	Ram          *string `json:"ram"`
	Storage      *string `json:"storage"`
	StorageType  *string `json:"storage_type" binding:"omitempty,oneof=SSD HDD"`
	Notes        *string `json:"notes"`
}

// List lista de equipos
func (s *DeviceService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Device, int64, error) {
	return s.deviceRepo.FindAll(ctx, page, pageSize, filters)
}

// Get detalle de equipo
func (s *DeviceService) Get(ctx context.Context, id string) (*entity.Device, error) {
	return s.deviceRepo.FindByID(ctx, id)
}

// Create registra un equipo para un cliente existente
func (s *DeviceService) Create(ctx context.Context, req *CreateDeviceRequest) (*entity.Device, error) {
	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		return nil, fmt.Errorf("el cliente no existe")
	}
	if _, err := s.deviceTypeRepo.FindByID(ctx, req.DeviceTypeID); err != nil {
		return nil, fmt.Errorf("el tipo de equipo no existe")
	}

	device := &entity.Device{
		ID:           uuid.New().String()[:32],
		CustomerID:   req.CustomerID,
		DeviceTypeID: req.DeviceTypeID,
		SerialNumber: req.SerialNumber,
		Brand:        req.Brand,
		Model:        req.Model,
		Processor:    req.Processor,
		Ram:          req.Ram,
		Storage:      req.Storage,
		StorageType:  req.StorageType,
		Notes:        req.Notes,
		IsActive:     true,
	}
	if err := s.deviceRepo.Create(ctx, device); err != nil {
		return nil, err
	}
	return s.deviceRepo.FindByID(ctx, device.ID)
}

// Update actualización parcial. El equipo no se reasigna de cliente.
func (s *DeviceService) Update(ctx context.Context, id string, req *UpdateDeviceRequest) (*entity.Device, error) {
	device, err := s.deviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DeviceTypeID != nil {
		if _, err := s.deviceTypeRepo.FindByID(ctx, *req.DeviceTypeID); err != nil {
			return nil, fmt.Errorf("el tipo de equipo no existe")
		}
		device.DeviceTypeID = *req.DeviceTypeID
	}
	if req.SerialNumber != nil {
		device.SerialNumber = *req.SerialNumber
	}
	if req.Brand != nil {
		device.Brand = *req.Brand
	}
	if req.Model != nil {
		device.Model = *req.Model
	}
	if req.Processor != nil {
		device.Processor = *req.Processor
	}
	if req.Ram != nil {
		device.Ram = *req.Ram
	}
	if req.Storage != nil {
		device.Storage = *req.Storage
	}
	if req.StorageType != nil {
		device.StorageType = *req.StorageType
	}
	if req.Notes != nil {
		device.Notes = *req.Notes
	}

	if err := s.deviceRepo.Update(ctx, device); err != nil {
		return nil, err
	}
	return s.deviceRepo.FindByID(ctx, device.ID)
}

// Deactivate baja lógica del equipo
func (s *DeviceService) Deactivate(ctx context.Context, id string) error {
	return s.deviceRepo.SetActive(ctx, id, false)
}

// Reactivate reactiva un equipo dado de baja
func (s *DeviceService) Reactivate(ctx context.Context, id string) error {
	return s.deviceRepo.SetActive(ctx, id, true)
}

// === Tipos de equipo ===

// DeviceTypeRequest alta/edición de tipo de equipo
type DeviceTypeRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ListTypes tipos de equipo
func (s *DeviceService) ListTypes(ctx context.Context) ([]entity.DeviceType, error) {
	return s.deviceTypeRepo.FindAll(ctx)
}

// CreateType crea un tipo de equipo
func (s *DeviceService) CreateType(ctx context.Context, req *DeviceTypeRequest) (*entity.DeviceType, error) {
	deviceType := &entity.DeviceType{
		ID:          uuid.New().String()[:32],
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.deviceTypeRepo.Create(ctx, deviceType); err != nil {
		return nil, err
	}
	return deviceType, nil
}

// UpdateType edita un tipo de equipo
func (s *DeviceService) UpdateType(ctx context.Context, id string, req *DeviceTypeRequest) (*entity.DeviceType, error) {
	deviceType, err := s.deviceTypeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	deviceType.Name = req.Name
	deviceType.Description = req.Description
	if err := s.deviceTypeRepo.Update(ctx, deviceType); err != nil {
		return nil, err
	}
	return deviceType, nil
}

// DeleteType elimina un tipo de equipo sin equipos asociados
func (s *DeviceService) DeleteType(ctx context.Context, id string) error {
	count, err := s.deviceTypeRepo.CountDevices(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("el tipo de equipo tiene %d equipos asociados", count)
	}
	return s.deviceTypeRepo.Delete(ctx, id)
}

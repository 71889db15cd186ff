package service

import (
	"context"
	"fmt"

	"github.com/SantiagoMGS/mipc-api/internal/taller/entity"
	"github.com/SantiagoMGS/mipc-api/internal/taller/repository"
	"github.com/google/uuid"
)

// CustomerService servicio de clientes
type CustomerService struct {
	customerRepo *repository.CustomerRepository
	deviceRepo   *repository.DeviceRepository
}

func NewCustomerService(customerRepo *repository.CustomerRepository, deviceRepo *repository.DeviceRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, deviceRepo: deviceRepo}
}

// CreateCustomerRequest creación de cliente
type CreateCustomerRequest struct {
	CustomerType   string `json:"customer_type" binding:"required,oneof=NATURAL JURIDICA"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	BusinessName   string `json:"business_name"`
	DocumentType   string `json:"document_type" binding:"required"`
	DocumentNumber string `json:"document_number" binding:"required"`
	Email          string `json:"email" binding:"omitempty,email"`
	Phone          string `json:"phone" binding:"required"`
	Address        string `json:"address"`
	City           string `json:"city"`
	Notes          string `json:"notes"`
}

// UpdateCustomerRequest actualización parcial de cliente
type UpdateCustomerRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	BusinessName *string `json:"business_name"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	Notes        *string `json:"notes"`
}

// List lista de clientes con búsqueda y filtros
func (s *CustomerService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Customer, int64, error) {
	return s.customerRepo.FindAll(ctx, page, pageSize, filters)
}

// Get detalle de cliente con sus equipos
func (s *CustomerService) Get(ctx context.Context, id string) (*entity.Customer, error) {
	return s.customerRepo.FindByID(ctx, id)
}

// Create crea un cliente. El par (tipo, número) de documento es único.
func (s *CustomerService) Create(ctx context.Context, req *CreateCustomerRequest) (*entity.Customer, error) {
	docOK := false
	for _, t := range entity.ValidDocumentTypes {
		if t == req.DocumentType {
			docOK = true
			break
		}
	}
	if !docOK {
		return nil, fmt.Errorf("tipo de documento inválido: %s", req.DocumentType)
	}

	if req.CustomerType == entity.CustomerTypeNatural && req.FirstName == "" {
		return nil, fmt.Errorf("el nombre es obligatorio para clientes naturales")
	}
	if req.CustomerType == entity.CustomerTypeJuridica && req.BusinessName == "" {
		return nil, fmt.Errorf("la razón social es obligatoria para clientes jurídicos")
	}

	if existing, err := s.customerRepo.FindByDocument(ctx, req.DocumentType, req.DocumentNumber); err == nil && existing != nil {
		return nil, fmt.Errorf("ya existe un cliente con documento %s %s", req.DocumentType, req.DocumentNumber)
	}

	customer := &entity.Customer{
		ID:             uuid.New().String()[:32],
		CustomerType:   req.CustomerType,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		BusinessName:   req.BusinessName,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		City:           req.City,
		Notes:          req.Notes,
		IsActive:       true,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Update actualización parcial. El documento no se toca después de creado.
func (s *CustomerService) Update(ctx context.Context, id string, req *UpdateCustomerRequest) (*entity.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		customer.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		customer.LastName = *req.LastName
	}
	if req.BusinessName != nil {
		customer.BusinessName = *req.BusinessName
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.City != nil {
		customer.City = *req.City
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Deactivate desactiva el cliente sin borrar su historial
func (s *CustomerService) Deactivate(ctx context.Context, id string) error {
	return s.customerRepo.SetActive(ctx, id, false)
}

// Reactivate reactiva un cliente desactivado
func (s *CustomerService) Reactivate(ctx context.Context, id string) error {
	return s.customerRepo.SetActive(ctx, id, true)
}

// Devices equipos de un cliente
func (s *CustomerService) Devices(ctx context.Context, customerID string) ([]entity.Device, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.deviceRepo.FindByCustomerID(ctx, customerID)
}

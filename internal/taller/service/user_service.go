package service

import (
	"context"
	"fmt"

	"github.com/SantiagoMGS/mipc-api/internal/taller/entity"
	"github.com/SantiagoMGS/mipc-api/internal/taller/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService servicio de usuarios del sistema
type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserRequest alta de usuario
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=ADMIN TECNICO AUXILIAR"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest actualización parcial de usuario
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Role     *string `json:"role" binding:"omitempty,oneof=ADMIN TECNICO AUXILIAR"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	IsActive *bool   `json:"is_active"`
}

// List lista de usuarios
func (s *UserService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.User, int64, error) {
	return s.userRepo.FindAll(ctx, page, pageSize, filters)
}

// Technicians técnicos activos, para asignación de órdenes
func (s *UserService) Technicians(ctx context.Context) ([]entity.User, error) {
	return s.userRepo.FindTechnicians(ctx)
}

// Get detalle de usuario
func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// Create crea un usuario con la contraseña hasheada con bcrypt
func (s *UserService) Create(ctx context.Context, req *CreateUserRequest) (*entity.User, error) {
	if existing, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("ya existe un usuario con el correo %s", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		ID:           uuid.New().String()[:32],
		Email:        req.Email,
		Name:         req.Name,
		Role:         req.Role,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update actualización parcial. El correo no cambia después de creado.
func (s *UserService) Update(ctx context.Context, id string, req *UpdateUserRequest) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete borrado lógico del usuario
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.userRepo.SoftDelete(ctx, id)
}

// Reactivate revierte el borrado lógico
func (s *UserService) Reactivate(ctx context.Context, id string) (*entity.User, error) {
	if err := s.userRepo.Reactivate(ctx, id); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, id)
}

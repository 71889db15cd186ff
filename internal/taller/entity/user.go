package entity

import "time"

// Roles de usuario
const (
	RoleAdmin    = "ADMIN"
	RoleTecnico  = "TECNICO"
	RoleAuxiliar = "AUXILIAR"
)

// ValidRoles roles asignables
var ValidRoles = []string{RoleAdmin, RoleTecnico, RoleAuxiliar}

// User usuario del sistema
type User struct {
	ID           string `json:"id" gorm:"primaryKey;size:32"`
	Email        string `json:"email" gorm:"size:150;uniqueIndex;not null"`
	Name         string `json:"name" gorm:"size:150;not null"`
	Role         string `json:"role" gorm:"size:15;not null;default:AUXILIAR"`
	PasswordHash string `json:"-" gorm:"size:100;not null"`

	IsActive    bool       `json:"is_active" gorm:"default:true;index"`
	LastLoginAt *time.Time `json:"last_login_at"`
	DeletedAt   *time.Time `json:"deleted_at" gorm:"index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

package entity

import "time"

// Tipo de cliente
const (
	CustomerTypeNatural  = "NATURAL"
	CustomerTypeJuridica = "JURIDICA"
)

// Tipos de documento aceptados
const (
	DocumentTypeCC        = "CC"
	DocumentTypeNIT       = "NIT"
	DocumentTypeCE        = "CE"
	DocumentTypeTI        = "TI"
	DocumentTypePasaporte = "PASAPORTE"
)

// ValidDocumentTypes tipos de documento válidos para validación de formularios
var ValidDocumentTypes = []string{
	DocumentTypeCC, DocumentTypeNIT, DocumentTypeCE, DocumentTypeTI, DocumentTypePasaporte,
}

// Customer cliente del taller. NATURAL usa firstName/lastName, JURIDICA usa
// businessName con nombres de contacto opcionales. La pareja
// (documentType, documentNumber) identifica al cliente.
type Customer struct {
	ID           string `json:"id" gorm:"primaryKey;size:32"`
	CustomerType string `json:"customer_type" gorm:"size:10;not null;default:NATURAL"`

	FirstName    string `json:"first_name" gorm:"size:100"`
	LastName     string `json:"last_name" gorm:"size:100"`
	BusinessName string `json:"business_name" gorm:"size:200"`

	DocumentType   string `json:"document_type" gorm:"size:10;not null;uniqueIndex:idx_customers_document"`
	DocumentNumber string `json:"document_number" gorm:"size:30;not null;uniqueIndex:idx_customers_document"`

	Phone   string `json:"phone" gorm:"size:30"`
	Email   string `json:"email" gorm:"size:150"`
	Address string `json:"address" gorm:"size:300"`
	City    string `json:"city" gorm:"size:100"`
	Notes   string `json:"notes" gorm:"size:500"`

	IsActive  bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Devices []Device `json:"devices,omitempty" gorm:"foreignKey:CustomerID"`
}

func (Customer) TableName() string {
	return "customers"
}

// DisplayName nombre visible según el tipo de cliente.
func (c *Customer) DisplayName() string {
	if c.CustomerType == CustomerTypeJuridica {
		return c.BusinessName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

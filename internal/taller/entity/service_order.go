package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la orden de servicio
const (
	OrderStatusRecibido           = "RECIBIDO"
	OrderStatusEnDiagnostico      = "EN_DIAGNOSTICO"
	OrderStatusEsperandoRepuestos = "ESPERANDO_REPUESTOS"
	OrderStatusEnReparacion       = "EN_REPARACION"
	OrderStatusReparado           = "REPARADO"
	OrderStatusCompleto           = "COMPLETO"
	OrderStatusFacturado          = "FACTURADO"
	OrderStatusCancelado          = "CANCELADO"
	OrderStatusNoReparable        = "NO_REPARABLE"
)

// Prioridad de la orden
const (
	PriorityBaja   = "BAJA"
	PriorityNormal = "NORMAL"
	PriorityAlta   = "ALTA"
)

// Estado de pago derivado del ledger
const (
	PaymentStatusPendiente = "PENDIENTE"
	PaymentStatusAbono     = "ABONO"
	PaymentStatusPagado    = "PAGADO"
)

// OrderStatusTransitions transiciones válidas de estado. Los estados
// terminales (FACTURADO, CANCELADO, NO_REPARABLE) no tienen entrada.
var OrderStatusTransitions = map[string][]string{
	OrderStatusRecibido:           {OrderStatusEnDiagnostico, OrderStatusCancelado},
	OrderStatusEnDiagnostico:      {OrderStatusEsperandoRepuestos, OrderStatusEnReparacion, OrderStatusNoReparable, OrderStatusCancelado},
	OrderStatusEsperandoRepuestos: {OrderStatusEnReparacion, OrderStatusCancelado},
	OrderStatusEnReparacion:       {OrderStatusReparado, OrderStatusEsperandoRepuestos, OrderStatusCancelado},
	OrderStatusReparado:           {OrderStatusCompleto, OrderStatusCancelado},
	OrderStatusCompleto:           {OrderStatusFacturado},
}

// AllowedNextStatuses estados destino permitidos desde status.
// Para estados terminales o desconocidos devuelve lista vacía.
func AllowedNextStatuses(status string) []string {
	targets, ok := OrderStatusTransitions[status]
	if !ok {
		return []string{}
	}
	out := make([]string, len(targets))
	copy(out, targets)
	return out
}

// CanTransition valida una transición contra la tabla.
func CanTransition(from, to string) bool {
	for _, target := range OrderStatusTransitions[from] {
		if target == to {
			return true
		}
	}
	return false
}

// CanEditItems los ítems (y por extensión los costos) solo se modifican
// mientras la orden no esté completada ni en un estado terminal.
func CanEditItems(status string) bool {
	switch status {
	case OrderStatusFacturado, OrderStatusCancelado, OrderStatusNoReparable, OrderStatusCompleto:
		return false
	}
	return true
}

// CanAddPayment se aceptan abonos mientras la orden no esté cancelada ni
// sea irreparable, y quede saldo por pagar.
func CanAddPayment(status string, balance decimal.Decimal) bool {
	if status == OrderStatusCancelado || status == OrderStatusNoReparable {
		return false
	}
	return balance.IsPositive()
}

// DerivePaymentStatus estado de pago según lo abonado contra el total.
func DerivePaymentStatus(totalPaid, totalCost decimal.Decimal) string {
	if totalPaid.IsZero() {
		return PaymentStatusPendiente
	}
	if totalPaid.GreaterThanOrEqual(totalCost) {
		return PaymentStatusPagado
	}
	return PaymentStatusAbono
}

// ServiceOrder orden de servicio (trabajo de reparación)
type ServiceOrder struct {
	ID          string `json:"id" gorm:"primaryKey;size:32"`
	OrderNumber string `json:"order_number" gorm:"size:32;uniqueIndex;not null"`

	// Relaciones
	CustomerID   string  `json:"customer_id" gorm:"size:32;not null;index"`
	DeviceID     string  `json:"device_id" gorm:"size:32;not null;index"`
	TechnicianID *string `json:"technician_id" gorm:"size:32;index"`
	CreatedByID  string  `json:"created_by_id" gorm:"size:32;not null"`

	// Flujo de trabajo
	Status   string `json:"status" gorm:"size:30;not null;default:RECIBIDO;index"`
	Priority string `json:"priority" gorm:"size:10;not null;default:NORMAL"`

	// Financiero — totalCost y balance los recalcula el servicio tras cada
	// mutación de ítems o pagos
	LaborCost     decimal.Decimal `json:"labor_cost" gorm:"type:decimal(12,2);not null;default:0"`
	PartsCost     decimal.Decimal `json:"parts_cost" gorm:"type:decimal(12,2);not null;default:0"`
	TotalCost     decimal.Decimal `json:"total_cost" gorm:"type:decimal(12,2);not null;default:0"`
	TotalPaid     decimal.Decimal `json:"total_paid" gorm:"type:decimal(12,2);not null;default:0"`
	Balance       decimal.Decimal `json:"balance" gorm:"type:decimal(12,2);not null;default:0"`
	PaymentStatus string          `json:"payment_status" gorm:"size:15;not null;default:PENDIENTE;index"`

	// Narrativa
	ProblemDescription string `json:"problem_description" gorm:"type:text;not null"`
	Observations       string `json:"observations" gorm:"type:text"`
	DiagnosticNotes    string `json:"diagnostic_notes" gorm:"type:text"`
	InternalNotes      string `json:"internal_notes" gorm:"type:text"`
	DeliveryNotes      string `json:"delivery_notes" gorm:"type:text"`

	// Facturación
	Invoice       *string `json:"invoice" gorm:"size:100"`
	InvoiceNumber *string `json:"invoice_number" gorm:"size:50"`

	CompletedAt *time.Time `json:"completed_at"`
	DeliveredAt *time.Time `json:"delivered_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Customer   *Customer          `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Device     *Device            `json:"device,omitempty" gorm:"foreignKey:DeviceID"`
	Technician *User              `json:"technician,omitempty" gorm:"foreignKey:TechnicianID"`
	Items      []ServiceOrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Payments   []Payment          `json:"payments,omitempty" gorm:"foreignKey:OrderID"`
}

func (ServiceOrder) TableName() string {
	return "service_orders"
}

// ServiceOrderItem ítem de catálogo asociado a una orden
type ServiceOrderItem struct {
	ID      string `json:"id" gorm:"primaryKey;size:32"`
	OrderID string `json:"order_id" gorm:"size:32;not null;index"`
	ItemID  string `json:"item_id" gorm:"size:32;not null;index"`

	Quantity    int             `json:"quantity" gorm:"not null;default:1"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	Discount    decimal.Decimal `json:"discount" gorm:"type:decimal(12,2);not null;default:0"`
	HasIva      bool            `json:"has_iva" gorm:"default:false"`
	Subtotal    decimal.Decimal `json:"subtotal" gorm:"type:decimal(12,2);not null"`
	Observation string          `json:"observation" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Item *Item `json:"item,omitempty" gorm:"foreignKey:ItemID"`
}

func (ServiceOrderItem) TableName() string {
	return "service_order_items"
}

// IVA tarifa vigente aplicada cuando el ítem lleva IVA
var IvaRate = decimal.NewFromFloat(0.19)

// ComputeSubtotal subtotal del ítem: cantidad × precio − descuento, + IVA si aplica.
func (i *ServiceOrderItem) ComputeSubtotal() decimal.Decimal {
	base := i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))).Sub(i.Discount)
	if base.IsNegative() {
		base = decimal.Zero
	}
	if i.HasIva {
		base = base.Add(base.Mul(IvaRate)).Round(2)
	}
	return base
}

// OrderStatusLog historial de cambios de estado de una orden
type OrderStatusLog struct {
	ID         string    `json:"id" gorm:"primaryKey;size:32"`
	OrderID    string    `json:"order_id" gorm:"size:32;not null;index"`
	FromStatus string    `json:"from_status" gorm:"size:30"`
	ToStatus   string    `json:"to_status" gorm:"size:30;not null"`
	Notes      string    `json:"notes" gorm:"size:500"`
	ChangedBy  string    `json:"changed_by" gorm:"size:32"`
	CreatedAt  time.Time `json:"created_at"`
}

func (OrderStatusLog) TableName() string {
	return "service_order_status_logs"
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago
const (
	PaymentMethodEfectivo      = "EFECTIVO"
	PaymentMethodTarjeta       = "TARJETA"
	PaymentMethodTransferencia = "TRANSFERENCIA"
	PaymentMethodOtro          = "OTRO"
)

// ValidPaymentMethods métodos aceptados al registrar un abono
var ValidPaymentMethods = []string{
	PaymentMethodEfectivo, PaymentMethodTarjeta, PaymentMethodTransferencia, PaymentMethodOtro,
}

// Payment abono registrado sobre una orden de servicio
type Payment struct {
	ID      string `json:"id" gorm:"primaryKey;size:32"`
	OrderID string `json:"order_id" gorm:"size:32;not null;index"`

	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	PaymentMethod string          `json:"payment_method" gorm:"size:20;not null"`
	PaymentDate   time.Time       `json:"payment_date" gorm:"not null"`
	Notes         string          `json:"notes" gorm:"size:500"`
	ReceivedByID  string          `json:"received_by_id" gorm:"size:32"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}

// PaymentSummary proyección del ledger de pagos de una orden
type PaymentSummary struct {
	TotalCost     decimal.Decimal `json:"total_cost"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	Balance       decimal.Decimal `json:"balance"`
	PaymentStatus string          `json:"payment_status"`
}

// SummarizePayments agrega los abonos contra el costo total:
// totalPaid = Σ amount, balance = totalCost − totalPaid, y el estado de pago
// derivado. El valor autoritativo vive en la orden; esta proyección debe
// coincidir con él tras cada recalculo.
func SummarizePayments(payments []Payment, totalCost decimal.Decimal) PaymentSummary {
	totalPaid := decimal.Zero
	for _, p := range payments {
		totalPaid = totalPaid.Add(p.Amount)
	}
	return PaymentSummary{
		TotalCost:     totalCost,
		TotalPaid:     totalPaid,
		Balance:       totalCost.Sub(totalPaid),
		PaymentStatus: DerivePaymentStatus(totalPaid, totalCost),
	}
}

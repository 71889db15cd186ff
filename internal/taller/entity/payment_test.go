package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummarizePaymentsEmpty(t *testing.T) {
	summary := SummarizePayments(nil, decimal.NewFromInt(500))

	assert.True(t, summary.TotalPaid.IsZero())
	assert.True(t, summary.Balance.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, PaymentStatusPendiente, summary.PaymentStatus)
}

func TestSummarizePaymentsPartial(t *testing.T) {
	payments := []Payment{
		{Amount: decimal.NewFromInt(100), PaymentMethod: PaymentMethodEfectivo},
		{Amount: decimal.NewFromInt(250), PaymentMethod: PaymentMethodTransferencia},
	}

	summary := SummarizePayments(payments, decimal.NewFromInt(500))

	assert.True(t, summary.TotalPaid.Equal(decimal.NewFromInt(350)))
	assert.True(t, summary.Balance.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, PaymentStatusAbono, summary.PaymentStatus)
}

func TestSummarizePaymentsExact(t *testing.T) {
	payments := []Payment{
		{Amount: decimal.NewFromInt(300)},
		{Amount: decimal.NewFromInt(200)},
	}

	summary := SummarizePayments(payments, decimal.NewFromInt(500))

	assert.True(t, summary.Balance.IsZero())
	assert.Equal(t, PaymentStatusPagado, summary.PaymentStatus)
}

func TestSummarizePaymentsOverpaid(t *testing.T) {
	payments := []Payment{{Amount: decimal.NewFromInt(600)}}

	summary := SummarizePayments(payments, decimal.NewFromInt(500))

	assert.True(t, summary.Balance.Equal(decimal.NewFromInt(-100)))
	assert.Equal(t, PaymentStatusPagado, summary.PaymentStatus)
}

func TestSummarizePaymentsDecimalAmounts(t *testing.T) {
	payments := []Payment{
		{Amount: decimal.NewFromFloat(33.33)},
		{Amount: decimal.NewFromFloat(66.67)},
	}

	summary := SummarizePayments(payments, decimal.NewFromInt(100))

	assert.True(t, summary.TotalPaid.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, PaymentStatusPagado, summary.PaymentStatus)
}

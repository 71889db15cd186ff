package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAllowedNextStatuses(t *testing.T) {
	tests := []struct {
		status string
		want   []string
	}{
		{OrderStatusRecibido, []string{OrderStatusEnDiagnostico, OrderStatusCancelado}},
		{OrderStatusEnDiagnostico, []string{OrderStatusEsperandoRepuestos, OrderStatusEnReparacion, OrderStatusNoReparable, OrderStatusCancelado}},
		{OrderStatusCompleto, []string{OrderStatusFacturado}},
		{OrderStatusFacturado, []string{}},
		{OrderStatusCancelado, []string{}},
		{OrderStatusNoReparable, []string{}},
		{"DESCONOCIDO", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, AllowedNextStatuses(tt.status))
		})
	}
}

func TestAllowedNextStatusesReturnsCopy(t *testing.T) {
	first := AllowedNextStatuses(OrderStatusRecibido)
	first[0] = "MUTADO"
	assert.Equal(t, OrderStatusEnDiagnostico, OrderStatusTransitions[OrderStatusRecibido][0])
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(OrderStatusRecibido, OrderStatusEnDiagnostico))
	assert.True(t, CanTransition(OrderStatusEnReparacion, OrderStatusEsperandoRepuestos))
	assert.True(t, CanTransition(OrderStatusReparado, OrderStatusCompleto))
	assert.True(t, CanTransition(OrderStatusCompleto, OrderStatusFacturado))

	// saltos y retrocesos prohibidos
	assert.False(t, CanTransition(OrderStatusRecibido, OrderStatusReparado))
	assert.False(t, CanTransition(OrderStatusRecibido, OrderStatusFacturado))
	assert.False(t, CanTransition(OrderStatusReparado, OrderStatusEnDiagnostico))
	assert.False(t, CanTransition(OrderStatusCompleto, OrderStatusCancelado))

	// estados terminales sin salida
	for _, terminal := range []string{OrderStatusFacturado, OrderStatusCancelado, OrderStatusNoReparable} {
		for target := range OrderStatusTransitions {
			assert.False(t, CanTransition(terminal, target), "terminal %s no debe salir a %s", terminal, target)
		}
	}
}

func TestCanTransitionTargetsAreKnownStatuses(t *testing.T) {
	known := map[string]bool{
		OrderStatusRecibido: true, OrderStatusEnDiagnostico: true,
		OrderStatusEsperandoRepuestos: true, OrderStatusEnReparacion: true,
		OrderStatusReparado: true, OrderStatusCompleto: true,
		OrderStatusFacturado: true, OrderStatusCancelado: true,
		OrderStatusNoReparable: true,
	}
	for from, targets := range OrderStatusTransitions {
		assert.True(t, known[from])
		for _, to := range targets {
			assert.True(t, known[to], "destino desconocido %s desde %s", to, from)
		}
	}
}

func TestCanEditItems(t *testing.T) {
	editable := []string{
		OrderStatusRecibido, OrderStatusEnDiagnostico, OrderStatusEsperandoRepuestos,
		OrderStatusEnReparacion, OrderStatusReparado,
	}
	for _, status := range editable {
		assert.True(t, CanEditItems(status), "estado %s debe permitir edición", status)
	}

	locked := []string{OrderStatusCompleto, OrderStatusFacturado, OrderStatusCancelado, OrderStatusNoReparable}
	for _, status := range locked {
		assert.False(t, CanEditItems(status), "estado %s debe bloquear edición", status)
	}
}

func TestCanAddPayment(t *testing.T) {
	saldo := decimal.NewFromInt(100)

	assert.True(t, CanAddPayment(OrderStatusRecibido, saldo))
	assert.True(t, CanAddPayment(OrderStatusCompleto, saldo))
	assert.True(t, CanAddPayment(OrderStatusFacturado, saldo))

	assert.False(t, CanAddPayment(OrderStatusCancelado, saldo))
	assert.False(t, CanAddPayment(OrderStatusNoReparable, saldo))

	// sin saldo no hay abonos
	assert.False(t, CanAddPayment(OrderStatusRecibido, decimal.Zero))
	assert.False(t, CanAddPayment(OrderStatusFacturado, decimal.NewFromInt(-50)))
}

func TestDerivePaymentStatus(t *testing.T) {
	total := decimal.NewFromInt(500)

	assert.Equal(t, PaymentStatusPendiente, DerivePaymentStatus(decimal.Zero, total))
	assert.Equal(t, PaymentStatusAbono, DerivePaymentStatus(decimal.NewFromInt(200), total))
	assert.Equal(t, PaymentStatusPagado, DerivePaymentStatus(decimal.NewFromInt(500), total))
	assert.Equal(t, PaymentStatusPagado, DerivePaymentStatus(decimal.NewFromInt(600), total))

	// orden recién creada sin costos
	assert.Equal(t, PaymentStatusPendiente, DerivePaymentStatus(decimal.Zero, decimal.Zero))
}

func TestComputeSubtotal(t *testing.T) {
	item := &ServiceOrderItem{
		Quantity:  2,
		UnitPrice: decimal.NewFromInt(100),
		Discount:  decimal.NewFromInt(30),
	}
	assert.True(t, item.ComputeSubtotal().Equal(decimal.NewFromInt(170)))

	item.HasIva = true
	// 170 * 1.19 = 202.30
	assert.True(t, item.ComputeSubtotal().Equal(decimal.NewFromFloat(202.30)))
}

func TestComputeSubtotalClampsNegative(t *testing.T) {
	item := &ServiceOrderItem{
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(50),
		Discount:  decimal.NewFromInt(80),
	}
	assert.True(t, item.ComputeSubtotal().IsZero())
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AnalyticsService consultas agregadas de solo lectura sobre la base.
// Todas las consultas van por SQL crudo; mantienen el filtro de rango
// [from, to) y, cuando aplica, el periodo anterior de igual longitud.
type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// DateRange rango consultado, extremos inclusivo/exclusivo
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// PreviousPeriod periodo anterior de igual longitud, para compare=true
func (r DateRange) PreviousPeriod() DateRange {
	length := r.To.Sub(r.From)
	return DateRange{From: r.From.Add(-length), To: r.From}
}

// validGroupBy unidades de agrupación aceptadas por date_trunc
var validGroupBy = map[string]bool{"day": true, "week": true, "month": true}

// NormalizeGroupBy valida y aplica el valor por defecto de group_by
func NormalizeGroupBy(groupBy string) (string, error) {
	if groupBy == "" {
		return "day", nil
	}
	if !validGroupBy[groupBy] {
		return "", fmt.Errorf("group_by inválido: %s", groupBy)
	}
	return groupBy, nil
}

// Summary resumen del periodo
type Summary struct {
	OrderCount      int64           `json:"order_count"`
	Revenue         decimal.Decimal `json:"revenue"`
	PendingBalance  decimal.Decimal `json:"pending_balance"`
	ActiveCustomers int64           `json:"active_customers"`
}

// GetSummary resumen general: órdenes creadas y recaudo en el rango,
// saldo pendiente vigente y clientes activos.
func (s *AnalyticsService) GetSummary(ctx context.Context, r DateRange) (*Summary, error) {
	summary := &Summary{Revenue: decimal.Zero, PendingBalance: decimal.Zero}

	row := s.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM service_orders
		WHERE created_at >= ? AND created_at < ?
	`, r.From, r.To).Row()
	if err := row.Scan(&summary.OrderCount); err != nil {
		return nil, err
	}

	var revenue decimal.NullDecimal
	row = s.db.WithContext(ctx).Raw(`
		SELECT SUM(amount) FROM payments
		WHERE payment_date >= ? AND payment_date < ?
	`, r.From, r.To).Row()
	if err := row.Scan(&revenue); err != nil {
		return nil, err
	}
	if revenue.Valid {
		summary.Revenue = revenue.Decimal
	}

	var pending decimal.NullDecimal
	row = s.db.WithContext(ctx).Raw(`
		SELECT SUM(balance) FROM service_orders
		WHERE payment_status <> 'PAGADO'
		  AND status NOT IN ('CANCELADO', 'NO_REPARABLE')
	`).Row()
	if err := row.Scan(&pending); err != nil {
		return nil, err
	}
	if pending.Valid {
		summary.PendingBalance = pending.Decimal
	}

	row = s.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM customers WHERE is_active = true
	`).Row()
	if err := row.Scan(&summary.ActiveCustomers); err != nil {
		return nil, err
	}

	return summary, nil
}

// StatusCount conteo por estado
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// GetOrdersByStatus conteo de órdenes por estado en el rango
func (s *AnalyticsService) GetOrdersByStatus(ctx context.Context, r DateRange) ([]StatusCount, error) {
	var results []StatusCount
	err := s.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*) as count
		FROM service_orders
		WHERE created_at >= ? AND created_at < ?
		GROUP BY status
		ORDER BY count DESC
	`, r.From, r.To).Scan(&results).Error
	return results, err
}

// PriorityCount conteo por prioridad
type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int64  `json:"count"`
}

// GetOrdersByPriority conteo de órdenes por prioridad en el rango
func (s *AnalyticsService) GetOrdersByPriority(ctx context.Context, r DateRange) ([]PriorityCount, error) {
	var results []PriorityCount
	err := s.db.WithContext(ctx).Raw(`
		SELECT priority, COUNT(*) as count
		FROM service_orders
		WHERE created_at >= ? AND created_at < ?
		GROUP BY priority
		ORDER BY count DESC
	`, r.From, r.To).Scan(&results).Error
	return results, err
}

// RevenuePoint recaudo por periodo
type RevenuePoint struct {
	Period  time.Time       `json:"period"`
	Revenue decimal.Decimal `json:"revenue"`
	Count   int64           `json:"count"`
}

// RevenueSeries serie de recaudo con comparación opcional
type RevenueSeries struct {
	Range    DateRange      `json:"range"`
	GroupBy  string         `json:"group_by"`
	Points   []RevenuePoint `json:"points"`
	Previous []RevenuePoint `json:"previous,omitempty"`
}

// GetRevenue recaudo agrupado por day/week/month, con periodo anterior si
// compare=true.
func (s *AnalyticsService) GetRevenue(ctx context.Context, r DateRange, groupBy string, compare bool) (*RevenueSeries, error) {
	groupBy, err := NormalizeGroupBy(groupBy)
	if err != nil {
		return nil, err
	}

	series := &RevenueSeries{Range: r, GroupBy: groupBy}
	series.Points, err = s.revenuePoints(ctx, r, groupBy)
	if err != nil {
		return nil, err
	}
	if compare {
		series.Previous, err = s.revenuePoints(ctx, r.PreviousPeriod(), groupBy)
		if err != nil {
			return nil, err
		}
	}
	return series, nil
}

func (s *AnalyticsService) revenuePoints(ctx context.Context, r DateRange, groupBy string) ([]RevenuePoint, error) {
	var points []RevenuePoint
	// groupBy ya está validado contra la lista blanca
	err := s.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT date_trunc('%s', payment_date) as period,
		       SUM(amount) as revenue,
		       COUNT(*) as count
		FROM payments
		WHERE payment_date >= ? AND payment_date < ?
		GROUP BY period
		ORDER BY period
	`, groupBy), r.From, r.To).Scan(&points).Error
	return points, err
}

// MethodTotal recaudo por método de pago
type MethodTotal struct {
	PaymentMethod string          `json:"payment_method"`
	Total         decimal.Decimal `json:"total"`
	Count         int64           `json:"count"`
}

// GetPaymentMethods totales por método de pago en el rango
func (s *AnalyticsService) GetPaymentMethods(ctx context.Context, r DateRange) ([]MethodTotal, error) {
	var results []MethodTotal
	err := s.db.WithContext(ctx).Raw(`
		SELECT payment_method, SUM(amount) as total, COUNT(*) as count
		FROM payments
		WHERE payment_date >= ? AND payment_date < ?
		GROUP BY payment_method
		ORDER BY total DESC
	`, r.From, r.To).Scan(&results).Error
	return results, err
}

// TopItem ítem más vendido
type TopItem struct {
	ItemID   string          `json:"item_id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	ItemType string          `json:"item_type"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// GetTopItems ítems de catálogo más vendidos por cantidad y recaudo
func (s *AnalyticsService) GetTopItems(ctx context.Context, r DateRange, limit int) ([]TopItem, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	var results []TopItem
	err := s.db.WithContext(ctx).Raw(`
		SELECT i.id as item_id, i.code, i.name, i.item_type,
		       SUM(oi.quantity) as quantity,
		       SUM(oi.subtotal) as revenue
		FROM service_order_items oi
		JOIN items i ON i.id = oi.item_id
		JOIN service_orders o ON o.id = oi.order_id
		WHERE o.created_at >= ? AND o.created_at < ?
		  AND o.status NOT IN ('CANCELADO', 'NO_REPARABLE')
		GROUP BY i.id, i.code, i.name, i.item_type
		ORDER BY quantity DESC, revenue DESC
		LIMIT ?
	`, r.From, r.To, limit).Scan(&results).Error
	return results, err
}

// TopCustomer cliente por facturación
type TopCustomer struct {
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	OrderCount   int64           `json:"order_count"`
	TotalBilled  decimal.Decimal `json:"total_billed"`
}

// GetTopCustomers clientes ordenados por total facturado en el rango
func (s *AnalyticsService) GetTopCustomers(ctx context.Context, r DateRange, limit int) ([]TopCustomer, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	var results []TopCustomer
	err := s.db.WithContext(ctx).Raw(`
		SELECT c.id as customer_id,
		       CASE WHEN c.customer_type = 'JURIDICA' THEN c.business_name
		            ELSE TRIM(c.first_name || ' ' || c.last_name) END as customer_name,
		       COUNT(o.id) as order_count,
		       SUM(o.total_cost) as total_billed
		FROM service_orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.created_at >= ? AND o.created_at < ?
		  AND o.status NOT IN ('CANCELADO', 'NO_REPARABLE')
		GROUP BY c.id, customer_name
		ORDER BY total_billed DESC
		LIMIT ?
	`, r.From, r.To, limit).Scan(&results).Error
	return results, err
}

// TechnicianStats rendimiento por técnico
type TechnicianStats struct {
	TechnicianID   string   `json:"technician_id"`
	TechnicianName string   `json:"technician_name"`
	OrdersAssigned int64    `json:"orders_assigned"`
	OrdersDone     int64    `json:"orders_done"`
	AvgCycleDays   *float64 `json:"avg_cycle_days"`
}

// GetTechnicianPerformance órdenes completadas y días de ciclo promedio
// por técnico.
func (s *AnalyticsService) GetTechnicianPerformance(ctx context.Context, r DateRange) ([]TechnicianStats, error) {
	var results []TechnicianStats
	err := s.db.WithContext(ctx).Raw(`
		SELECT u.id as technician_id, u.name as technician_name,
		       COUNT(o.id) as orders_assigned,
		       COUNT(o.completed_at) as orders_done,
		       AVG(EXTRACT(EPOCH FROM (o.completed_at - o.created_at)) / 86400.0) as avg_cycle_days
		FROM service_orders o
		JOIN users u ON u.id = o.technician_id
		WHERE o.created_at >= ? AND o.created_at < ?
		GROUP BY u.id, u.name
		ORDER BY orders_done DESC
	`, r.From, r.To).Scan(&results).Error
	return results, err
}

// CountPoint conteo por periodo
type CountPoint struct {
	Period time.Time `json:"period"`
	Count  int64     `json:"count"`
}

// NewCustomersSeries serie de clientes nuevos con comparación opcional
type NewCustomersSeries struct {
	Range    DateRange    `json:"range"`
	GroupBy  string       `json:"group_by"`
	Points   []CountPoint `json:"points"`
	Previous []CountPoint `json:"previous,omitempty"`
}

// GetNewCustomers clientes nuevos por periodo
func (s *AnalyticsService) GetNewCustomers(ctx context.Context, r DateRange, groupBy string, compare bool) (*NewCustomersSeries, error) {
	groupBy, err := NormalizeGroupBy(groupBy)
	if err != nil {
		return nil, err
	}

	series := &NewCustomersSeries{Range: r, GroupBy: groupBy}
	series.Points, err = s.newCustomerPoints(ctx, r, groupBy)
	if err != nil {
		return nil, err
	}
	if compare {
		series.Previous, err = s.newCustomerPoints(ctx, r.PreviousPeriod(), groupBy)
		if err != nil {
			return nil, err
		}
	}
	return series, nil
}

func (s *AnalyticsService) newCustomerPoints(ctx context.Context, r DateRange, groupBy string) ([]CountPoint, error) {
	var points []CountPoint
	err := s.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT date_trunc('%s', created_at) as period, COUNT(*) as count
		FROM customers
		WHERE created_at >= ? AND created_at < ?
		GROUP BY period
		ORDER BY period
	`, groupBy), r.From, r.To).Scan(&points).Error
	return points, err
}

// RepairTimes días promedio de reparación
type RepairTimes struct {
	AvgDaysToRepaired *float64 `json:"avg_days_to_repaired"`
	AvgDaysToComplete *float64 `json:"avg_days_to_complete"`
	OrdersMeasured    int64    `json:"orders_measured"`
}

// GetRepairTimes promedio de días entre la recepción y los hitos REPARADO
// y COMPLETO, medidos desde el historial de estados.
func (s *AnalyticsService) GetRepairTimes(ctx context.Context, r DateRange) (*RepairTimes, error) {
	times := &RepairTimes{}
	row := s.db.WithContext(ctx).Raw(`
		SELECT
			AVG(CASE WHEN l.to_status = 'REPARADO'
			    THEN EXTRACT(EPOCH FROM (l.created_at - o.created_at)) / 86400.0 END),
			AVG(CASE WHEN l.to_status = 'COMPLETO'
			    THEN EXTRACT(EPOCH FROM (l.created_at - o.created_at)) / 86400.0 END),
			COUNT(DISTINCT o.id)
		FROM service_order_status_logs l
		JOIN service_orders o ON o.id = l.order_id
		WHERE l.to_status IN ('REPARADO', 'COMPLETO')
		  AND o.created_at >= ? AND o.created_at < ?
	`, r.From, r.To).Row()
	if err := row.Scan(&times.AvgDaysToRepaired, &times.AvgDaysToComplete, &times.OrdersMeasured); err != nil {
		return nil, err
	}
	return times, nil
}

// DeviceTypeCount órdenes por tipo de equipo
type DeviceTypeCount struct {
	DeviceTypeID   string `json:"device_type_id"`
	DeviceTypeName string `json:"device_type_name"`
	Count          int64  `json:"count"`
}

// GetDeviceTypes órdenes agrupadas por tipo de equipo en el rango
func (s *AnalyticsService) GetDeviceTypes(ctx context.Context, r DateRange) ([]DeviceTypeCount, error) {
	var results []DeviceTypeCount
	err := s.db.WithContext(ctx).Raw(`
		SELECT dt.id as device_type_id, dt.name as device_type_name, COUNT(o.id) as count
		FROM service_orders o
		JOIN devices d ON d.id = o.device_id
		JOIN device_types dt ON dt.id = d.device_type_id
		WHERE o.created_at >= ? AND o.created_at < ?
		GROUP BY dt.id, dt.name
		ORDER BY count DESC
	`, r.From, r.To).Scan(&results).Error
	return results, err
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/SantiagoMGS/mipc-api/internal/taller/entity"
	"github.com/SantiagoMGS/mipc-api/internal/taller/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderService servicio de órdenes de servicio. Es dueño del ciclo de vida:
// transiciones de estado, candados de ítems/abonos y recalculo de totales.
type OrderService struct {
	orderRepo    *repository.OrderRepository
	paymentRepo  *repository.PaymentRepository
	itemRepo     *repository.ItemRepository
	customerRepo *repository.CustomerRepository
	deviceRepo   *repository.DeviceRepository
	userRepo     *repository.UserRepository
}

func NewOrderService(
	orderRepo *repository.OrderRepository,
	paymentRepo *repository.PaymentRepository,
	itemRepo *repository.ItemRepository,
	customerRepo *repository.CustomerRepository,
	deviceRepo *repository.DeviceRepository,
	userRepo *repository.UserRepository,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		paymentRepo:  paymentRepo,
		itemRepo:     itemRepo,
		customerRepo: customerRepo,
		deviceRepo:   deviceRepo,
		userRepo:     userRepo,
	}
}

// CreateOrderRequest creación de orden
type CreateOrderRequest struct {
	CustomerID         string           `json:"customer_id" binding:"required"`
	DeviceID           string           `json:"device_id" binding:"required"`
	TechnicianID       string           `json:"technician_id" binding:"required"`
	ProblemDescription string           `json:"problem_description" binding:"required,min=10"`
	Priority           string           `json:"priority"`
	LaborCost          *decimal.Decimal `json:"labor_cost"`
	Observations       string           `json:"observations"`
	InternalNotes      string           `json:"internal_notes"`
}

// UpdateOrderRequest actualización parcial de orden
type UpdateOrderRequest struct {
	TechnicianID    *string          `json:"technician_id"`
	Priority        *string          `json:"priority"`
	LaborCost       *decimal.Decimal `json:"labor_cost"`
	Observations    *string          `json:"observations"`
	DiagnosticNotes *string          `json:"diagnostic_notes"`
	InternalNotes   *string          `json:"internal_notes"`
	DeliveryNotes   *string          `json:"delivery_notes"`
	Invoice         *string          `json:"invoice"`
	InvoiceNumber   *string          `json:"invoice_number"`
}

// List lista de órdenes
func (s *OrderService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.ServiceOrder, int64, error) {
	return s.orderRepo.FindAll(ctx, page, pageSize, filters)
}

// Get detalle de una orden
func (s *OrderService) Get(ctx context.Context, id string) (*entity.ServiceOrder, error) {
	return s.orderRepo.FindByID(ctx, id)
}

// validateTechnician el asignado debe ser un técnico activo
func (s *OrderService) validateTechnician(ctx context.Context, technicianID string) error {
	technician, err := s.userRepo.FindByID(ctx, technicianID)
	if err != nil {
		return fmt.Errorf("el técnico no existe")
	}
	if !technician.IsActive || technician.DeletedAt != nil {
		return fmt.Errorf("el técnico no está activo")
	}
	if technician.Role != entity.RoleTecnico {
		return fmt.Errorf("el usuario asignado no es técnico")
	}
	return nil
}

// Create crea una orden en estado RECIBIDO
func (s *OrderService) Create(ctx context.Context, userID string, req *CreateOrderRequest) (*entity.ServiceOrder, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("el cliente no existe")
	}
	device, err := s.deviceRepo.FindByID(ctx, req.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("el equipo no existe")
	}
	if device.CustomerID != customer.ID {
		return nil, fmt.Errorf("el equipo no pertenece al cliente")
	}
	if err := s.validateTechnician(ctx, req.TechnicianID); err != nil {
		return nil, err
	}

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = entity.PriorityNormal
	}
	if priority != entity.PriorityBaja && priority != entity.PriorityNormal && priority != entity.PriorityAlta {
		return nil, fmt.Errorf("prioridad inválida: %s", priority)
	}

	laborCost := decimal.Zero
	if req.LaborCost != nil {
		if req.LaborCost.IsNegative() {
			return nil, fmt.Errorf("el costo de mano de obra no puede ser negativo")
		}
		laborCost = *req.LaborCost
	}

	order := &entity.ServiceOrder{
		ID:                 uuid.New().String()[:32],
		OrderNumber:        orderNumber,
		CustomerID:         req.CustomerID,
		DeviceID:           req.DeviceID,
		TechnicianID:       &req.TechnicianID,
		CreatedByID:        userID,
		Status:             entity.OrderStatusRecibido,
		Priority:           priority,
		LaborCost:          laborCost,
		PartsCost:          decimal.Zero,
		TotalCost:          laborCost,
		TotalPaid:          decimal.Zero,
		Balance:            laborCost,
		PaymentStatus:      entity.PaymentStatusPendiente,
		ProblemDescription: req.ProblemDescription,
		Observations:       req.Observations,
		InternalNotes:      req.InternalNotes,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Update actualiza los campos editables de una orden. El costo de mano de
// obra solo se toca mientras la orden admita edición de ítems.
func (s *OrderService) Update(ctx context.Context, id string, req *UpdateOrderRequest) (*entity.ServiceOrder, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.LaborCost != nil {
		if !entity.CanEditItems(order.Status) {
			return nil, fmt.Errorf("la orden en estado %s no permite modificar costos", order.Status)
		}
		if req.LaborCost.IsNegative() {
			return nil, fmt.Errorf("el costo de mano de obra no puede ser negativo")
		}
		order.LaborCost = *req.LaborCost
	}
	if req.TechnicianID != nil {
		if err := s.validateTechnician(ctx, *req.TechnicianID); err != nil {
			return nil, err
		}
		order.TechnicianID = req.TechnicianID
	}
	if req.Priority != nil {
		if *req.Priority != entity.PriorityBaja && *req.Priority != entity.PriorityNormal && *req.Priority != entity.PriorityAlta {
			return nil, fmt.Errorf("prioridad inválida: %s", *req.Priority)
		}
		order.Priority = *req.Priority
	}
	if req.Observations != nil {
		order.Observations = *req.Observations
	}
	if req.DiagnosticNotes != nil {
		order.DiagnosticNotes = *req.DiagnosticNotes
	}
	if req.InternalNotes != nil {
		order.InternalNotes = *req.InternalNotes
	}
	if req.DeliveryNotes != nil {
		order.DeliveryNotes = *req.DeliveryNotes
	}
	if req.Invoice != nil {
		order.Invoice = req.Invoice
	}
	if req.InvoiceNumber != nil {
		order.InvoiceNumber = req.InvoiceNumber
	}

	if err := s.recalculateTotals(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ChangeStatusRequest cambio de estado
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// ChangeStatus transiciona la orden validando contra la tabla de
// transiciones y deja registro en el historial.
func (s *OrderService) ChangeStatus(ctx context.Context, orderID string, req *ChangeStatusRequest, userID string) (*entity.ServiceOrder, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !entity.CanTransition(order.Status, req.Status) {
		return nil, fmt.Errorf("no se permite pasar de %s a %s", order.Status, req.Status)
	}

	fromStatus := order.Status
	order.Status = req.Status

	now := time.Now()
	switch req.Status {
	case entity.OrderStatusCompleto:
		order.CompletedAt = &now
	case entity.OrderStatusFacturado:
		order.DeliveredAt = &now
	}
	if req.Notes != "" && req.Status == entity.OrderStatusFacturado {
		order.DeliveryNotes = req.Notes
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	log := &entity.OrderStatusLog{
		ID:         uuid.New().String()[:32],
		OrderID:    order.ID,
		FromStatus: fromStatus,
		ToStatus:   req.Status,
		Notes:      req.Notes,
		ChangedBy:  userID,
	}
	if err := s.orderRepo.CreateStatusLog(ctx, log); err != nil {
		return nil, err
	}

	return order, nil
}

// StatusOptions estados destino que la UI puede ofrecer
func (s *OrderService) StatusOptions(ctx context.Context, orderID string) ([]string, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return entity.AllowedNextStatuses(order.Status), nil
}

// History historial de cambios de estado
func (s *OrderService) History(ctx context.Context, orderID string) ([]entity.OrderStatusLog, error) {
	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.orderRepo.FindStatusLogs(ctx, orderID)
}

// === Ítems de la orden ===

// AddOrderItemRequest agregar ítem de catálogo a la orden
type AddOrderItemRequest struct {
	ItemID      string           `json:"item_id" binding:"required"`
	Quantity    int              `json:"quantity" binding:"required,gt=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Discount    *decimal.Decimal `json:"discount"`
	HasIva      bool             `json:"has_iva"`
	Observation string           `json:"observation"`
}

// UpdateOrderItemRequest actualización de un ítem de la orden
type UpdateOrderItemRequest struct {
	Quantity    *int             `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Discount    *decimal.Decimal `json:"discount"`
	HasIva      *bool            `json:"has_iva"`
	Observation *string          `json:"observation"`
}

// AddItem agrega un ítem y recalcula los totales de la orden
func (s *OrderService) AddItem(ctx context.Context, orderID string, req *AddOrderItemRequest) (*entity.ServiceOrder, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !entity.CanEditItems(order.Status) {
		return nil, fmt.Errorf("la orden en estado %s no permite modificar ítems", order.Status)
	}

	catalogItem, err := s.itemRepo.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("el ítem de catálogo no existe")
	}
	if !catalogItem.IsActive || catalogItem.DeletedAt != nil {
		return nil, fmt.Errorf("el ítem %s no está activo", catalogItem.Code)
	}

	unitPrice := catalogItem.Price
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}
	if unitPrice.IsNegative() {
		return nil, fmt.Errorf("el precio unitario no puede ser negativo")
	}
	discount := decimal.Zero
	if req.Discount != nil {
		if req.Discount.IsNegative() {
			return nil, fmt.Errorf("el descuento no puede ser negativo")
		}
		discount = *req.Discount
	}

	orderItem := &entity.ServiceOrderItem{
		ID:          uuid.New().String()[:32],
		OrderID:     order.ID,
		ItemID:      catalogItem.ID,
		Quantity:    req.Quantity,
		UnitPrice:   unitPrice,
		Discount:    discount,
		HasIva:      req.HasIva,
		Observation: req.Observation,
	}
	orderItem.Subtotal = orderItem.ComputeSubtotal()

	if err := s.orderRepo.CreateOrderItem(ctx, orderItem); err != nil {
		return nil, err
	}
	if err := s.recalculateTotals(ctx, order); err != nil {
		return nil, err
	}
	return s.orderRepo.FindByID(ctx, order.ID)
}

// UpdateItem actualiza un ítem de la orden y recalcula totales
func (s *OrderService) UpdateItem(ctx context.Context, orderID, orderItemID string, req *UpdateOrderItemRequest) (*entity.ServiceOrder, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !entity.CanEditItems(order.Status) {
		return nil, fmt.Errorf("la orden en estado %s no permite modificar ítems", order.Status)
	}

	orderItem, err := s.orderRepo.FindOrderItemByID(ctx, orderItemID)
	if err != nil {
		return nil, err
	}
	if orderItem.OrderID != order.ID {
		return nil, fmt.Errorf("el ítem no pertenece a la orden")
	}

	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, fmt.Errorf("la cantidad debe ser mayor que cero")
		}
		orderItem.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("el precio unitario no puede ser negativo")
		}
		orderItem.UnitPrice = *req.UnitPrice
	}
	if req.Discount != nil {
		if req.Discount.IsNegative() {
			return nil, fmt.Errorf("el descuento no puede ser negativo")
		}
		orderItem.Discount = *req.Discount
	}
	if req.HasIva != nil {
		orderItem.HasIva = *req.HasIva
	}
	if req.Observation != nil {
		orderItem.Observation = *req.Observation
	}
	orderItem.Subtotal = orderItem.ComputeSubtotal()

	if err := s.orderRepo.UpdateOrderItem(ctx, orderItem); err != nil {
		return nil, err
	}
	if err := s.recalculateTotals(ctx, order); err != nil {
		return nil, err
	}
	return s.orderRepo.FindByID(ctx, order.ID)
}

// RemoveItem quita un ítem de la orden y recalcula totales
func (s *OrderService) RemoveItem(ctx context.Context, orderID, orderItemID string) (*entity.ServiceOrder, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !entity.CanEditItems(order.Status) {
		return nil, fmt.Errorf("la orden en estado %s no permite modificar ítems", order.Status)
	}

	orderItem, err := s.orderRepo.FindOrderItemByID(ctx, orderItemID)
	if err != nil {
		return nil, err
	}
	if orderItem.OrderID != order.ID {
		return nil, fmt.Errorf("el ítem no pertenece a la orden")
	}

	if err := s.orderRepo.DeleteOrderItem(ctx, orderItemID); err != nil {
		return nil, err
	}
	if err := s.recalculateTotals(ctx, order); err != nil {
		return nil, err
	}
	return s.orderRepo.FindByID(ctx, order.ID)
}

// === Abonos ===

// AddPaymentRequest registro de abono
type AddPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	PaymentDate   *time.Time      `json:"payment_date"`
	Notes         string          `json:"notes"`
}

// ListPayments abonos de la orden con la proyección del ledger
func (s *OrderService) ListPayments(ctx context.Context, orderID string) ([]entity.Payment, *entity.PaymentSummary, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	payments, err := s.paymentRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	summary := entity.SummarizePayments(payments, order.TotalCost)
	return payments, &summary, nil
}

// AddPayment registra un abono respetando el candado de pagos y recalcula
// el ledger de la orden.
func (s *OrderService) AddPayment(ctx context.Context, orderID string, req *AddPaymentRequest, userID string) (*entity.Payment, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !entity.CanAddPayment(order.Status, order.Balance) {
		return nil, fmt.Errorf("la orden no admite abonos (estado %s, saldo %s)", order.Status, order.Balance.StringFixed(2))
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("el monto del abono debe ser mayor que cero")
	}

	methodOK := false
	for _, m := range entity.ValidPaymentMethods {
		if m == req.PaymentMethod {
			methodOK = true
			break
		}
	}
	if !methodOK {
		return nil, fmt.Errorf("método de pago inválido: %s", req.PaymentMethod)
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	payment := &entity.Payment{
		ID:            uuid.New().String()[:32],
		OrderID:       order.ID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		PaymentDate:   paymentDate,
		Notes:         req.Notes,
		ReceivedByID:  userID,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	if err := s.recalculateTotals(ctx, order); err != nil {
		return nil, err
	}
	return payment, nil
}

// RemovePayment elimina un abono y recalcula el ledger
func (s *OrderService) RemovePayment(ctx context.Context, orderID, paymentID string) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if payment.OrderID != order.ID {
		return fmt.Errorf("el abono no pertenece a la orden")
	}

	if err := s.paymentRepo.Delete(ctx, paymentID); err != nil {
		return err
	}
	return s.recalculateTotals(ctx, order)
}

// recalculateTotals recalcula partsCost, totalCost, totalPaid, balance y
// paymentStatus a partir de los ítems y abonos vigentes, y persiste la
// orden. Invariante: balance = totalCost − totalPaid y el estado de pago
// concuerda con el signo.
func (s *OrderService) recalculateTotals(ctx context.Context, order *entity.ServiceOrder) error {
	items, err := s.orderRepo.FindOrderItems(ctx, order.ID)
	if err != nil {
		return err
	}
	partsCost := decimal.Zero
	for _, it := range items {
		partsCost = partsCost.Add(it.Subtotal)
	}

	payments, err := s.paymentRepo.FindByOrderID(ctx, order.ID)
	if err != nil {
		return err
	}

	order.PartsCost = partsCost
	order.TotalCost = order.LaborCost.Add(partsCost)

	summary := entity.SummarizePayments(payments, order.TotalCost)
	order.TotalPaid = summary.TotalPaid
	order.Balance = summary.Balance
	order.PaymentStatus = summary.PaymentStatus

	return s.orderRepo.Update(ctx, order)
}

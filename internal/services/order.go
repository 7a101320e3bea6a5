package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Renal37/delux-perfumes/internal/database"
	"github.com/Renal37/delux-perfumes/internal/logger"
	"github.com/Renal37/delux-perfumes/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Сколько раз подбирать новый идентификатор при коллизии в хранилище.
const maxOrderIDAttempts = 5

// Ограничения корзины.
const (
	MaxItemQuantity = 10000
	MaxItemPrice    = 1000000
	MaxOrderTotal   = 100000000
)

// OrderService представляет сервис оформления и сопровождения заказов
type OrderService struct {
	storage  orderStorage
	ids      *OrderIDGenerator
	events   orderNotifier
	location *time.Location
	now      func() time.Time

	// mu сериализует изменяющие операции: выдачу идентификатора со вставкой
	// и чтение-изменение-запись при обновлении заказа.
	mu sync.Mutex
}

// Интерфейс хранилища заказов
type orderStorage interface {
	InsertOrder(ctx context.Context, order models.Order) error
	FindOrder(ctx context.Context, orderID string) (*models.Order, error)
	FindOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	ReplaceOrder(ctx context.Context, order models.Order) (bool, error)
	RemoveOrder(ctx context.Context, orderID string) (bool, error)
}

type orderNotifier interface {
	Notify(event models.OrderEvent)
}

type noopNotifier struct{}

func (noopNotifier) Notify(models.OrderEvent) {}

// NewOrderService создает новый экземпляр OrderService.
// events может быть nil, тогда события не отправляются.
// loc задаёт часовой пояс для фильтра по дате.
func NewOrderService(storage orderStorage, events orderNotifier, loc *time.Location) *OrderService {
	if events == nil {
		events = noopNotifier{}
	}
	if loc == nil {
		loc = time.Local
	}

	return &OrderService{
		storage:  storage,
		ids:      NewOrderIDGenerator(),
		events:   events,
		location: loc,
		now:      time.Now,
	}
}

// InvalidStatusMessage текст ошибки при недопустимом статусе заказа.
func InvalidStatusMessage() string {
	names := make([]string, len(models.OrderStatuses))
	for i, status := range models.OrderStatuses {
		names[i] = string(status)
	}
	return "Invalid status. Must be one of: " + strings.Join(names, ", ")
}

// CreateOrder проверяет данные корзины, рассчитывает суммы и сохраняет новый заказ в статусе Pending.
func (o *OrderService) CreateOrder(ctx context.Context, request models.CheckoutRequest) (*models.Order, error) {
	if err := validateCheckout(request); err != nil {
		return nil, err
	}

	order, err := buildOrder(request)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.timestamp()
	order.CreatedAt = now
	order.UpdatedAt = now

	for attempt := 1; ; attempt++ {
		order.ID = o.ids.NewID()

		err := o.storage.InsertOrder(ctx, order)
		if err == nil {
			break
		}

		if !errors.Is(err, database.ErrDuplicateOrder) {
			return nil, wrapStorageError("create order", err)
		}

		logger.Log.Warn("order id collision", zap.String("orderID", order.ID), zap.Int("attempt", attempt))

		if attempt == maxOrderIDAttempts {
			return nil, wrapStorageError("create order",
				fmt.Errorf("уникальный идентификатор не подобран за %d попыток: %w", attempt, err))
		}
	}

	logger.Log.Info("order created",
		zap.String("orderID", order.ID),
		zap.String("customer", order.Customer),
		zap.Float64("total", order.Total),
	)
	o.notify(models.OrderCreated, order)

	return &order, nil
}

// ListOrders возвращает заказы, подходящие под параметры запроса, от новых к старым
func (o *OrderService) ListOrders(ctx context.Context, query models.OrderQuery) ([]models.Order, error) {
	filter, err := ParseOrderFilter(query, o.location)
	if err != nil {
		return nil, err
	}

	orders, err := o.storage.FindOrders(ctx, filter)
	if err != nil {
		return nil, wrapStorageError("list orders", err)
	}

	if orders == nil {
		return []models.Order{}, nil
	}

	return orders, nil
}

// GetOrder возвращает заказ по идентификатору
func (o *OrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	return o.findOrder(ctx, NormalizeOrderID(orderID))
}

// UpdateStatus переводит заказ в новый статус и обновляет время изменения.
// Допустим любой переход между статусами перечисления.
func (o *OrderService) UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	newStatus := models.OrderStatus(status)
	if !newStatus.IsValid() {
		return nil, &ValidationError{Message: InvalidStatusMessage()}
	}

	order, err := o.modify(ctx, NormalizeOrderID(orderID), func(order *models.Order) {
		order.Status = newStatus
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("order status updated", zap.String("orderID", order.ID), zap.String("status", string(newStatus)))
	o.notify(models.OrderStatusChanged, *order)

	return order, nil
}

// UpdateDetails исправляет адрес доставки, телефон и заметки заказа
func (o *OrderService) UpdateDetails(ctx context.Context, orderID string, update models.OrderDetailsUpdate) (*models.Order, error) {
	if update.ShippingAddress == nil && update.Phone == nil && update.Notes == nil {
		return nil, newValidationError("Nothing to update: expected shippingAddress, phone or notes")
	}

	order, err := o.modify(ctx, NormalizeOrderID(orderID), func(order *models.Order) {
		if update.ShippingAddress != nil {
			order.ShippingAddress = valueOrDefault(*update.ShippingAddress, models.DefaultShippingAddress)
		}
		if update.Phone != nil {
			order.Phone = valueOrDefault(*update.Phone, models.DefaultPhone)
		}
		if update.Notes != nil {
			order.Notes = *update.Notes
		}
	})
	if err != nil {
		return nil, err
	}

	o.notify(models.OrderUpdated, *order)

	return order, nil
}

// DeleteOrder удаляет заказ
func (o *OrderService) DeleteOrder(ctx context.Context, orderID string) error {
	orderID = NormalizeOrderID(orderID)

	o.mu.Lock()
	defer o.mu.Unlock()

	found, err := o.storage.RemoveOrder(ctx, orderID)
	if err != nil {
		return wrapStorageError("delete order", err)
	}

	if !found {
		return &NotFoundError{Entity: "Order", ID: orderID}
	}

	logger.Log.Info("order deleted", zap.String("orderID", orderID))
	o.notify(models.OrderDeleted, models.Order{ID: orderID})

	return nil
}

// modify применяет изменение к сохранённой копии заказа и записывает её обратно целиком.
func (o *OrderService) modify(ctx context.Context, orderID string, change func(order *models.Order)) (*models.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	order, err := o.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	change(order)
	order.UpdatedAt = o.timestamp()

	found, err := o.storage.ReplaceOrder(ctx, *order)
	if err != nil {
		return nil, wrapStorageError("update order", err)
	}

	// Заказ мог быть удалён между чтением и записью.
	if !found {
		return nil, &NotFoundError{Entity: "Order", ID: orderID}
	}

	return order, nil
}

func (o *OrderService) findOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := o.storage.FindOrder(ctx, orderID)
	if err != nil {
		return nil, wrapStorageError("find order", err)
	}

	if order == nil {
		return nil, &NotFoundError{Entity: "Order", ID: orderID}
	}

	return order, nil
}

// timestamp текущее время с точностью, которую сохраняет PostgreSQL.
func (o *OrderService) timestamp() time.Time {
	return o.now().UTC().Truncate(time.Microsecond)
}

func (o *OrderService) notify(eventType models.OrderEventType, order models.Order) {
	o.events.Notify(models.OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		Status:     order.Status,
		Total:      order.Total,
		OccurredAt: o.now().UTC(),
	})
}

// validateCheckout проверяет обязательные поля корзины
func validateCheckout(request models.CheckoutRequest) error {
	if strings.TrimSpace(request.User) == "" || len(request.Items) == 0 {
		return newValidationError("Missing required fields: user, items")
	}

	if request.TotalPrice <= 0 {
		return newValidationError("totalPrice must be a positive number")
	}

	for i, item := range request.Items {
		if strings.TrimSpace(item.Name) == "" {
			return newValidationError("items[%d]: name is required", i)
		}
		if item.Quantity <= 0 || item.Quantity > MaxItemQuantity {
			return newValidationError("items[%d]: quantity must be an integer between 1 and %d", i, MaxItemQuantity)
		}
		if item.Price < 0 {
			return newValidationError("items[%d]: price cannot be negative", i)
		}
		if item.Price > MaxItemPrice {
			return newValidationError("items[%d]: price cannot exceed %d", i, MaxItemPrice)
		}
	}

	return nil
}

// buildOrder собирает заказ из корзины. Суммы считаются на сервере, присланный totalPrice не используется.
func buildOrder(request models.CheckoutRequest) (models.Order, error) {
	items := make([]models.LineItem, len(request.Items))
	subtotal := decimal.Zero

	for i, item := range request.Items {
		items[i] = models.LineItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
			Image:    item.Image,
		}
		subtotal = subtotal.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	shipping := decimal.NewFromInt(models.ShippingFee)
	discount := decimal.Zero
	total := subtotal.Add(shipping).Sub(discount)

	if total.GreaterThan(decimal.NewFromInt(MaxOrderTotal)) {
		return models.Order{}, newValidationError("Order total cannot exceed %d", MaxOrderTotal)
	}

	return models.Order{
		Customer:        customerName(request),
		Email:           strings.TrimSpace(request.User),
		Phone:           valueOrDefault(request.Phone, models.DefaultPhone),
		Items:           items,
		Subtotal:        subtotal.InexactFloat64(),
		Shipping:        shipping.InexactFloat64(),
		Discount:        discount.InexactFloat64(),
		Total:           total.InexactFloat64(),
		Status:          models.StatusPending,
		PaymentMethod:   valueOrDefault(request.PaymentMethod, models.DefaultPaymentMethod),
		ShippingAddress: valueOrDefault(request.ShippingAddress, models.DefaultShippingAddress),
	}, nil
}

// customerName: явное имя, иначе часть email до "@", иначе Guest.
func customerName(request models.CheckoutRequest) string {
	if name := strings.TrimSpace(request.CustomerName); name != "" {
		return name
	}

	local, _, _ := strings.Cut(strings.TrimSpace(request.User), "@")
	if local != "" {
		return local
	}

	return models.GuestCustomer
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

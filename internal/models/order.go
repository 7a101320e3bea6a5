package models

import (
	"strings"
	"time"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses перечисляет допустимые статусы в порядке жизненного цикла заказа.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// IsValid сообщает, входит ли статус в перечисление OrderStatuses.
func (s OrderStatus) IsValid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Значения по умолчанию для полей заказа, не переданных при оформлении.
const (
	DefaultPhone           = "Not provided"
	DefaultShippingAddress = "Not provided"
	DefaultPaymentMethod   = "Cash on Delivery"
	GuestCustomer          = "Guest"

	ShippingFee = 10
)

type LineItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
}

type Order struct {
	ID              string      `json:"orderId"`
	Customer        string      `json:"customer"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone"`
	Items           []LineItem  `json:"products"`
	Subtotal        float64     `json:"subtotal"`
	Shipping        float64     `json:"shipping"`
	Discount        float64     `json:"discount"`
	Total           float64     `json:"total"`
	Status          OrderStatus `json:"status"`
	PaymentMethod   string      `json:"paymentMethod"`
	ShippingAddress string      `json:"shippingAddress"`
	Notes           string      `json:"notes"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// Clone возвращает копию заказа, не разделяющую срез позиций с оригиналом.
func (o Order) Clone() Order {
	if o.Items != nil {
		items := make([]LineItem, len(o.Items))
		copy(items, o.Items)
		o.Items = items
	}
	return o
}

// CheckoutItem позиция корзины в том виде, в котором её присылает витрина.
type CheckoutItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
}

// CheckoutRequest тело запроса на оформление заказа.
type CheckoutRequest struct {
	User            string         `json:"user"`
	Items           []CheckoutItem `json:"items"`
	TotalPrice      float64        `json:"totalPrice"`
	ShippingAddress string         `json:"shippingAddress"`
	Phone           string         `json:"phone"`
	PaymentMethod   string         `json:"paymentMethod"`
	CustomerName    string         `json:"customerName"`
}

type StatusUpdate struct {
	Status *string `json:"status"`
}

// OrderDetailsUpdate частичное исправление контактных данных заказа.
// Поля со значением nil не изменяются.
type OrderDetailsUpdate struct {
	ShippingAddress *string `json:"shippingAddress"`
	Phone           *string `json:"phone"`
	Notes           *string `json:"notes"`
}

// OrderFilter набор необязательных условий выборки заказов, объединяемых по И.
type OrderFilter struct {
	Status   OrderStatus
	From     *time.Time // включительно
	To       *time.Time // не включительно
	Customer string
}

// IsEmpty сообщает, что фильтр не накладывает ни одного условия.
func (f OrderFilter) IsEmpty() bool {
	return f.Status == "" && f.From == nil && f.To == nil && f.Customer == ""
}

// Matches проверяет заказ на соответствие всем условиям фильтра.
func (f OrderFilter) Matches(order Order) bool {
	if f.Status != "" && order.Status != f.Status {
		return false
	}

	if f.From != nil && order.CreatedAt.Before(*f.From) {
		return false
	}

	if f.To != nil && !order.CreatedAt.Before(*f.To) {
		return false
	}

	if f.Customer != "" {
		needle := strings.ToLower(f.Customer)
		if !strings.Contains(strings.ToLower(order.Customer), needle) &&
			!strings.Contains(strings.ToLower(order.Email), needle) {
			return false
		}
	}

	return true
}

// OrderEventType тип события жизненного цикла заказа, используется как routing key.
type OrderEventType string

const (
	OrderCreated       OrderEventType = "order.created"
	OrderStatusChanged OrderEventType = "order.status_changed"
	OrderUpdated       OrderEventType = "order.updated"
	OrderDeleted       OrderEventType = "order.deleted"
)

type OrderEvent struct {
	Type       OrderEventType `json:"type"`
	OrderID    string         `json:"orderId"`
	Status     OrderStatus    `json:"status,omitempty"`
	Total      float64        `json:"total,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// OrderQuery необработанные параметры выборки из строки запроса.
type OrderQuery struct {
	Status   string
	Date     string
	Customer string
}

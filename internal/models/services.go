package models

import "context"

//go:generate mockgen -destination=mocks/mock_order.go . OrderService
type OrderService interface {
	CreateOrder(ctx context.Context, request CheckoutRequest) (*Order, error)

	ListOrders(ctx context.Context, query OrderQuery) ([]Order, error)

	GetOrder(ctx context.Context, orderID string) (*Order, error)

	UpdateStatus(ctx context.Context, orderID, status string) (*Order, error)

	UpdateDetails(ctx context.Context, orderID string, update OrderDetailsUpdate) (*Order, error)

	DeleteOrder(ctx context.Context, orderID string) error
}

//go:generate mockgen -destination=mocks/mock_stats.go . StatsService
type StatsService interface {
	GetStats(ctx context.Context) (Stats, error)
}

//go:generate mockgen -destination=mocks/mock_product.go . ProductService
type ProductService interface {
	CreateProduct(ctx context.Context, input ProductInput) (*Product, error)

	ListProducts(ctx context.Context) ([]Product, error)

	GetProduct(ctx context.Context, productID string) (*Product, error)

	UpdateProduct(ctx context.Context, productID string, input ProductInput) (*Product, error)

	DeleteProduct(ctx context.Context, productID string) error
}

//go:generate mockgen -destination=mocks/mock_user.go . UserService
type UserService interface {
	CreateUser(ctx context.Context, input UserInput) (*User, error)

	ListUsers(ctx context.Context) ([]User, error)

	GetUser(ctx context.Context, userID string) (*User, error)

	UpdateUser(ctx context.Context, userID string, input UserInput) (*User, error)

	DeleteUser(ctx context.Context, userID string) error
}

//go:generate mockgen -destination=mocks/mock_chat.go . ChatService
type ChatService interface {
	Reply(ctx context.Context, message string) (string, error)
}

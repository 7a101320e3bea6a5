package middlewares

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Renal37/delux-perfumes/internal/models"
)

type key int

const (
	OrderServiceKey key = iota
	StatsServiceKey
	ProductServiceKey
	UserServiceKey
	ChatServiceKey
)

// Services набор сервисов, доступных обработчикам через контекст запроса.
type Services struct {
	Orders   models.OrderService
	Stats    models.StatsService
	Products models.ProductService
	Users    models.UserService
	Chat     models.ChatService
}

func ServiceInjectorMiddleware(services Services) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), OrderServiceKey, services.Orders)
			ctx = context.WithValue(ctx, StatsServiceKey, services.Stats)
			ctx = context.WithValue(ctx, ProductServiceKey, services.Products)
			ctx = context.WithValue(ctx, UserServiceKey, services.Users)
			ctx = context.WithValue(ctx, ChatServiceKey, services.Chat)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetServiceFromContext достает сервис из контекста. При отсутствии отвечает 500 и возвращает nil.
func GetServiceFromContext[Service interface{}](w http.ResponseWriter, r *http.Request, serviceKey key) *Service {
	foundService, ok := r.Context().Value(serviceKey).(Service)

	if !ok {
		EncodeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Service wasn't found in context by key %v", serviceKey))
		return nil
	}

	return &foundService
}

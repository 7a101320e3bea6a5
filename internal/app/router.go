package router

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Renal37/delux-perfumes/internal/logger"
	"github.com/Renal37/delux-perfumes/internal/middlewares"
	"github.com/Renal37/delux-perfumes/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	// Endpoint адрес и порт, на которых сервер будет слушать входящие запросы.
	Endpoint string
	// AllowedOrigins источники, которым разрешены кросс-доменные запросы.
	AllowedOrigins []string
	// ShutdownTimeout время на завершение активных запросов при остановке.
	ShutdownTimeout time.Duration
}

type Router struct {
	config   Config
	services middlewares.Services
}

// New создает новый экземпляр Router с заданными зависимостями.
func New(
	config Config,
	orderService models.OrderService,
	statsService models.StatsService,
	productService models.ProductService,
	userService models.UserService,
	chatService models.ChatService,
) *Router {
	if len(config.AllowedOrigins) == 0 {
		config.AllowedOrigins = []string{"*"}
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = 10 * time.Second
	}

	return &Router{
		config: config,
		services: middlewares.Services{
			Orders:   orderService,
			Stats:    statsService,
			Products: productService,
			Users:    userService,
			Chat:     chatService,
		},
	}
}

// get возвращает настроенный роутер.
func (router *Router) get() chi.Router {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins: router.config.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}),
		middlewares.MetricsMiddleware,
		// Инжектор сервисов для предоставления сервисов в обработчиках.
		middlewares.ServiceInjectorMiddleware(router.services),
		// Логгер для регистрации запросов.
		logger.RequestLogger,
	)

	r.Get("/health", Health)
	r.Handle("/metrics", promhttp.Handler())

	// Заказы
	r.Route("/orders", func(r chi.Router) {
		r.With(middlewares.JSONMiddleware[models.CheckoutRequest]).Post("/", CreateOrder)
		r.Get("/", GetOrders)
		r.Get("/{id}", GetOrder)
		r.With(middlewares.JSONMiddleware[models.OrderDetailsUpdate]).Patch("/{id}", UpdateOrderDetails)
		r.With(middlewares.JSONMiddleware[models.StatusUpdate]).Put("/{id}/status", UpdateOrderStatus)
		r.Delete("/{id}", DeleteOrder)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", GetStats)

		// Каталог товаров
		r.Route("/products", func(r chi.Router) {
			r.With(middlewares.JSONMiddleware[models.ProductInput]).Post("/", CreateProduct)
			r.Get("/", GetProducts)
			r.Get("/{id}", GetProduct)
			r.With(middlewares.JSONMiddleware[models.ProductInput]).Put("/{id}", UpdateProduct)
			r.Delete("/{id}", DeleteProduct)
		})

		// Пользователи
		r.Route("/users", func(r chi.Router) {
			r.With(middlewares.JSONMiddleware[models.UserInput]).Post("/", CreateUser)
			r.Get("/", GetUsers)
			r.Get("/{id}", GetUser)
			r.With(middlewares.JSONMiddleware[models.UserInput]).Put("/{id}", UpdateUser)
			r.Delete("/{id}", DeleteUser)
		})
	})

	// Чат-помощник витрины
	r.With(middlewares.JSONMiddleware[models.ChatMessage]).Post("/users/chat", Chat)

	return r
}

// Run запускает HTTP сервер и блокируется до отмены ctx, после чего корректно его останавливает.
func (router *Router) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              router.config.Endpoint,
		Handler:           router.get(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), router.config.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

// Health сообщает, что процесс жив.
func Health(w http.ResponseWriter, r *http.Request) {
	middlewares.EncodeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

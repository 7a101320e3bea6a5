package main

import (
	"context"
	"log"

	router "github.com/Renal37/delux-perfumes/internal/app"
	"github.com/Renal37/delux-perfumes/internal/broker"
	"github.com/Renal37/delux-perfumes/internal/database"
	"github.com/Renal37/delux-perfumes/internal/logger"
	"github.com/Renal37/delux-perfumes/internal/memstore"
	"github.com/Renal37/delux-perfumes/internal/models"
	"github.com/Renal37/delux-perfumes/internal/services"
	"github.com/Renal37/delux-perfumes/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// storage методы хранилища, нужные сервисам. Реализуется database.Database и memstore.Store.
type storage interface {
	InsertOrder(ctx context.Context, order models.Order) error
	FindOrder(ctx context.Context, orderID string) (*models.Order, error)
	FindOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	ReplaceOrder(ctx context.Context, order models.Order) (bool, error)
	RemoveOrder(ctx context.Context, orderID string) (bool, error)

	InsertProduct(ctx context.Context, product models.Product) error
	FindProduct(ctx context.Context, productID string) (*models.Product, error)
	FindProducts(ctx context.Context) ([]models.Product, error)
	ReplaceProduct(ctx context.Context, product models.Product) (bool, error)
	RemoveProduct(ctx context.Context, productID string) (bool, error)

	InsertUser(ctx context.Context, user models.User) error
	FindUser(ctx context.Context, userID string) (*models.User, error)
	FindUsers(ctx context.Context) ([]models.User, error)
	ReplaceUser(ctx context.Context, user models.User) (bool, error)
	RemoveUser(ctx context.Context, userID string) (bool, error)
}

func main() {
	config, err := NewConfig()
	if err != nil {
		log.Fatalf("Config wasn't loaded due to %s", err)
	}

	if err := logger.Initialize(config.logLevel, config.env); err != nil {
		log.Fatalf("Logger wasn't initialized due to %s", err)
	}
	defer logger.Log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store storage
	if config.dsn != "" {
		db, err := database.New(ctx, config.dsn)
		if err != nil {
			logger.Log.Fatal("database wasn't initialized", zap.Error(err))
		}
		defer db.Close()

		if err := db.RunMigrations(); err != nil {
			logger.Log.Fatal("migrations weren't run", zap.Error(err))
		}
		store = db
	} else {
		fileStore, err := memstore.Open(config.dataFile)
		if err != nil {
			logger.Log.Fatal("data file wasn't loaded", zap.String("path", config.dataFile), zap.Error(err))
		}
		logger.Log.Info("DATABASE_URI is not set, using data file", zap.String("path", config.dataFile))
		store = fileStore
	}

	var publisher services.Publisher = broker.NoopPublisher{}
	if config.amqpURL != "" {
		rabbit, err := broker.NewRabbitPublisher(config.amqpURL, broker.OrdersExchange)
		if err != nil {
			logger.Log.Fatal("message broker wasn't initialized", zap.Error(err))
		}
		defer rabbit.Close()
		publisher = rabbit
	}

	// Очередь не привязана к ctx: после остановки сервера оставшиеся события ещё доставляются.
	jobQueueService := services.NewJobQueueService(context.Background(), 100, 2)
	defer jobQueueService.Shutdown()

	var generator services.Generator
	if config.openAIKey != "" {
		generator = services.NewOpenAIGenerator(config.openAIKey, config.openAIModel)
	}

	utils.HandleTerminationProcess(func() {
		logger.Log.Info("termination signal received, shutting down")
		cancel()
	})

	app := router.New(
		router.Config{
			Endpoint:        config.endpoint,
			AllowedOrigins:  config.allowedOrigins,
			ShutdownTimeout: config.shutdownTimeout,
		},
		services.NewOrderService(store, services.NewEventDispatcher(jobQueueService, publisher), config.location),
		services.NewStatsService(store, config.location),
		services.NewProductService(store),
		services.NewUserService(store),
		services.NewChatService(generator),
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Log.Info("running server", zap.String("address", config.endpoint))
		return app.Run(groupCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Log.Error("server stopped with error", zap.Error(err))
	}
}

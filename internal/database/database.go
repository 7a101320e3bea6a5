package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/Renal37/delux-perfumes/internal/logger"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Database хранилище заказов, товаров и пользователей в PostgreSQL.
type Database struct {
	db  *pgxpool.Pool
	dsn string
}

//go:embed migrations/*.sql
var migrationsFS embed.FS // Встраивание файлов миграций

// psql построитель запросов с плейсхолдерами PostgreSQL.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// checkConnection проверяет доступность базы данных с использованием пулa подключений.
func checkConnection(ctx context.Context, db *pgxpool.Pool) error {
	// Устанавливаем таймаут для проверки подключения
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}

	return nil
}

// New создает новый экземпляр Database, устанавливает соединение и проверяет его.
func New(ctx context.Context, dsn string) (*Database, error) {
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании пула подключений: %w", err)
	}

	if err := checkConnection(ctx, db); err != nil {
		db.Close() // Закрываем пул подключений в случае ошибки
		return nil, err
	}

	return &Database{db: db, dsn: dsn}, nil
}

// RunMigrations выполняет миграции базы данных с использованием встроенных файлов миграций.
func (d *Database) RunMigrations() error {
	driver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("не удалось создать источник миграций: %w", err)
	}

	migrations, err := migrate.NewWithSourceInstance("iofs", driver, d.dsn)
	if err != nil {
		return fmt.Errorf("не удалось инициализировать миграции: %w", err)
	}
	defer migrations.Close()

	if err := migrations.Up(); err != nil {
		// Отсутствие новых миграций не является ошибкой
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Log.Info("no new migrations")
			return nil
		}
		return fmt.Errorf("ошибка при выполнении миграций: %w", err)
	}

	logger.Log.Info("migrations applied")
	return nil
}

// Close закрывает пул подключений к базе данных.
func (d *Database) Close() {
	if d.db != nil {
		d.db.Close()
	}
}

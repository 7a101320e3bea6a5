package database

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/Renal37/delux-perfumes/internal/models"
	"github.com/jackc/pgx/v5"
)

// Определение пользовательских ошибок
var (
	ErrDuplicateOrder = errors.New("заказ уже существует") // Ошибка дублирования идентификатора заказа
)

// SQL-запросы для работы с заказами
const (
	InsertOrderQuery = `
		INSERT INTO
			orders (id, customer, email, phone, items, subtotal, shipping, discount, total,
			        status, payment_method, shipping_address, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	UpdateOrderQuery = `
		UPDATE
			orders
		SET
			customer = $2,
			email = $3,
			phone = $4,
			status = $5,
			payment_method = $6,
			shipping_address = $7,
			notes = $8,
			updated_at = $9
		WHERE
			id = $1
	`
	DeleteOrderQuery = `
		DELETE FROM
			orders
		WHERE
			id = $1
	`
)

var orderColumns = []string{
	"id",
	"customer",
	"email",
	"phone",
	"items",
	"subtotal",
	"shipping",
	"discount",
	"total",
	"status",
	"payment_method",
	"shipping_address",
	"notes",
	"created_at",
	"updated_at",
}

// Структура для хранения информации о заказе в том виде, в котором она лежит в таблице
type OrderDB struct {
	ID              string
	Customer        string
	Email           string
	Phone           string
	Items           []byte // JSONB с позициями заказа
	Subtotal        float64
	Shipping        float64
	Discount        float64
	Total           float64
	Status          OrderStatusDB
	PaymentMethod   string
	ShippingAddress string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Определение статуса заказа с возможностью преобразования в/из базы данных
type OrderStatusDB struct {
	models.OrderStatus
}

// Реализация интерфейса sql.Scanner для чтения статуса заказа из базы данных
func (s *OrderStatusDB) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		return fmt.Errorf("статус заказа должен быть строкой, а не %T", value)
	}

	*s = OrderStatusDB{models.OrderStatus(strVal)}
	return nil
}

// Реализация интерфейса driver.Valuer для преобразования статуса заказа в строку перед записью в базу данных
func (s OrderStatusDB) Value() (driver.Value, error) {
	return string(s.OrderStatus), nil
}

func (o *OrderDB) scanFields() []interface{} {
	return []interface{}{
		&o.ID, &o.Customer, &o.Email, &o.Phone, &o.Items,
		&o.Subtotal, &o.Shipping, &o.Discount, &o.Total, &o.Status,
		&o.PaymentMethod, &o.ShippingAddress, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	}
}

func (o *OrderDB) toModel() (models.Order, error) {
	var items []models.LineItem
	if err := json.Unmarshal(o.Items, &items); err != nil {
		return models.Order{}, fmt.Errorf("ошибка чтения позиций заказа %s: %w", o.ID, err)
	}

	return models.Order{
		ID:              o.ID,
		Customer:        o.Customer,
		Email:           o.Email,
		Phone:           o.Phone,
		Items:           items,
		Subtotal:        o.Subtotal,
		Shipping:        o.Shipping,
		Discount:        o.Discount,
		Total:           o.Total,
		Status:          o.Status.OrderStatus,
		PaymentMethod:   o.PaymentMethod,
		ShippingAddress: o.ShippingAddress,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}, nil
}

// Создание нового заказа
func (d *Database) InsertOrder(ctx context.Context, order models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("ошибка сериализации позиций заказа: %w", err)
	}

	_, err = d.db.Exec(ctx, InsertOrderQuery,
		order.ID, order.Customer, order.Email, order.Phone, items,
		order.Subtotal, order.Shipping, order.Discount, order.Total, OrderStatusDB{order.Status},
		order.PaymentMethod, order.ShippingAddress, order.Notes, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		// Проверяем, не является ли ошибка нарушением уникальности (дубликат идентификатора)
		if isUniqueViolation(err) {
			return ErrDuplicateOrder
		}
		return fmt.Errorf("ошибка создания заказа: %w", err)
	}

	return nil
}

// Поиск заказа по его ID
func (d *Database) FindOrder(ctx context.Context, orderID string) (*models.Order, error) {
	query, args, err := psql.Select(orderColumns...).From("orders").Where(sq.Eq{"id": orderID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	var row OrderDB
	if err := d.db.QueryRow(ctx, query, args...).Scan(row.scanFields()...); err != nil {
		// Если заказ не найден, возвращаем nil без ошибки
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка поиска заказа: %w", err)
	}

	order, err := row.toModel()
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// Поиск заказов по фильтру, от новых к старым
func (d *Database) FindOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	query, args, err := buildOrdersQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	rows, err := d.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска заказов: %w", err)
	}
	defer rows.Close()

	result := []models.Order{}

	for rows.Next() {
		var row OrderDB
		if err := rows.Scan(row.scanFields()...); err != nil {
			return nil, fmt.Errorf("ошибка обработки строки с заказом: %w", err)
		}

		order, err := row.toModel()
		if err != nil {
			return nil, err
		}
		result = append(result, order)
	}

	// Проверка на ошибки при итерации по строкам
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return result, nil
}

// Перезапись изменяемых полей заказа. Позиции и суммы после создания не меняются.
func (d *Database) ReplaceOrder(ctx context.Context, order models.Order) (bool, error) {
	tag, err := d.db.Exec(ctx, UpdateOrderQuery,
		order.ID, order.Customer, order.Email, order.Phone, OrderStatusDB{order.Status},
		order.PaymentMethod, order.ShippingAddress, order.Notes, order.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("ошибка обновления заказа: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Удаление заказа
func (d *Database) RemoveOrder(ctx context.Context, orderID string) (bool, error) {
	tag, err := d.db.Exec(ctx, DeleteOrderQuery, orderID)
	if err != nil {
		return false, fmt.Errorf("ошибка удаления заказа: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// buildOrdersQuery переводит фильтр в SELECT с условиями, объединенными по AND.
func buildOrdersQuery(filter models.OrderFilter) (string, []interface{}, error) {
	query := psql.Select(orderColumns...).From("orders")

	if filter.Status != "" {
		query = query.Where(sq.Eq{"status": string(filter.Status)})
	}

	if filter.From != nil {
		query = query.Where(sq.GtOrEq{"created_at": *filter.From})
	}

	if filter.To != nil {
		query = query.Where(sq.Lt{"created_at": *filter.To})
	}

	if filter.Customer != "" {
		pattern := "%" + escapeLike(filter.Customer) + "%"
		query = query.Where(sq.Or{
			sq.ILike{"customer": pattern},
			sq.ILike{"email": pattern},
		})
	}

	return query.OrderBy("created_at DESC", "id DESC").ToSql()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike экранирует спецсимволы LIKE, чтобы подстрока искалась буквально.
func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}

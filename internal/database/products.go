package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/Renal37/delux-perfumes/internal/models"
	"github.com/jackc/pgx/v5"
)

// SQL-запросы для работы с каталогом
const (
	InsertProductQuery = `
		INSERT INTO
			products (id, name, price, image, category, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	SelectProductQuery = `
		SELECT
			id, name, price, image, category, description, created_at, updated_at
		FROM
			products
		WHERE
			id = $1
	`
	SelectProductsQuery = `
		SELECT
			id, name, price, image, category, description, created_at, updated_at
		FROM
			products
		ORDER BY
			created_at DESC
	`
	UpdateProductQuery = `
		UPDATE
			products
		SET
			name = $2,
			price = $3,
			image = $4,
			category = $5,
			description = $6,
			updated_at = $7
		WHERE
			id = $1
	`
	DeleteProductQuery = `
		DELETE FROM
			products
		WHERE
			id = $1
	`
)

func scanProduct(row pgx.Row) (*models.Product, error) {
	product := &models.Product{}
	var category string

	err := row.Scan(&product.ID, &product.Name, &product.Price, &product.Image,
		&category, &product.Description, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	product.Category = models.ProductCategory(category)

	return product, nil
}

// InsertProduct сохраняет новый товар
func (d *Database) InsertProduct(ctx context.Context, product models.Product) error {
	_, err := d.db.Exec(ctx, InsertProductQuery,
		product.ID, product.Name, product.Price, product.Image,
		string(product.Category), product.Description, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания товара: %w", err)
	}
	return nil
}

// FindProduct находит товар по идентификатору, nil если его нет
func (d *Database) FindProduct(ctx context.Context, productID string) (*models.Product, error) {
	product, err := scanProduct(d.db.QueryRow(ctx, SelectProductQuery, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка поиска товара: %w", err)
	}
	return product, nil
}

// FindProducts возвращает весь каталог
func (d *Database) FindProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := d.db.Query(ctx, SelectProductsQuery)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска товаров: %w", err)
	}
	defer rows.Close()

	result := []models.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка обработки строки с товаром: %w", err)
		}
		result = append(result, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return result, nil
}

func (d *Database) ReplaceProduct(ctx context.Context, product models.Product) (bool, error) {
	tag, err := d.db.Exec(ctx, UpdateProductQuery,
		product.ID, product.Name, product.Price, product.Image,
		string(product.Category), product.Description, product.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("ошибка обновления товара: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (d *Database) RemoveProduct(ctx context.Context, productID string) (bool, error) {
	tag, err := d.db.Exec(ctx, DeleteProductQuery, productID)
	if err != nil {
		return false, fmt.Errorf("ошибка удаления товара: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/Renal37/delux-perfumes/internal/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrDuplicateUser = errors.New("пользователь с таким email уже существует")
)

const (
	InsertUserQuery = `
        INSERT INTO
            users (id, name, email, phone, hash, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	SelectUserQuery = `
        SELECT
            id, name, email, phone, hash, created_at, updated_at
        FROM
            users
        WHERE
            id = $1
    `
	SelectUsersQuery = `
        SELECT
            id, name, email, phone, hash, created_at, updated_at
        FROM
            users
        ORDER BY
            created_at DESC
    `
	UpdateUserQuery = `
        UPDATE
            users
        SET
            name = $2,
            email = $3,
            phone = $4,
            hash = $5,
            updated_at = $6
        WHERE
            id = $1
    `
	DeleteUserQuery = `
        DELETE FROM
            users
        WHERE
            id = $1
    `
)

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.Hash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// isUniqueViolation проверяет, что ошибка вызвана нарушением уникальности
func isUniqueViolation(err error) bool {
	var e *pgconn.PgError
	return errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation
}

// InsertUser создает нового пользователя в базе данных
func (d *Database) InsertUser(ctx context.Context, user models.User) error {
	_, err := d.db.Exec(ctx, InsertUserQuery,
		user.ID, user.Name, user.Email, user.Phone, user.Hash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}
	return nil
}

// FindUser находит пользователя в базе данных по идентификатору
func (d *Database) FindUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := scanUser(d.db.QueryRow(ctx, SelectUserQuery, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}
	return user, nil
}

// FindUsers возвращает всех пользователей
func (d *Database) FindUsers(ctx context.Context) ([]models.User, error) {
	rows, err := d.db.Query(ctx, SelectUsersQuery)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении пользователей: %w", err)
	}
	defer rows.Close()

	result := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка обработки строки с пользователем: %w", err)
		}
		result = append(result, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return result, nil
}

// ReplaceUser перезаписывает данные пользователя
func (d *Database) ReplaceUser(ctx context.Context, user models.User) (bool, error) {
	tag, err := d.db.Exec(ctx, UpdateUserQuery,
		user.ID, user.Name, user.Email, user.Phone, user.Hash, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return false, ErrDuplicateUser
		}
		return false, fmt.Errorf("ошибка при обновлении пользователя: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// RemoveUser удаляет пользователя
func (d *Database) RemoveUser(ctx context.Context, userID string) (bool, error) {
	tag, err := d.db.Exec(ctx, DeleteUserQuery, userID)
	if err != nil {
		return false, fmt.Errorf("ошибка при удалении пользователя: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

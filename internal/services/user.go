package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Renal37/delux-perfumes/internal/database"
	"github.com/Renal37/delux-perfumes/internal/logger"
	"github.com/Renal37/delux-perfumes/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService представляет сервис управления пользователями магазина
type UserService struct {
	storage userStorage
	now     func() time.Time
}

// userStorage определяет интерфейс для взаимодействия с хранилищем данных пользователей
type userStorage interface {
	InsertUser(ctx context.Context, user models.User) error            // Создание нового пользователя
	FindUser(ctx context.Context, userID string) (*models.User, error) // Поиск пользователя по идентификатору
	FindUsers(ctx context.Context) ([]models.User, error)              // Все пользователи, новые первыми
	ReplaceUser(ctx context.Context, user models.User) (bool, error)   // Перезапись пользователя
	RemoveUser(ctx context.Context, userID string) (bool, error)       // Удаление пользователя
}

// NewUserService создает новый экземпляр UserService с заданным хранилищем
func NewUserService(storage userStorage) *UserService {
	return &UserService{storage: storage, now: time.Now}
}

// CreateUser регистрирует нового пользователя
func (u *UserService) CreateUser(ctx context.Context, input models.UserInput) (*models.User, error) {
	user := models.User{}

	// Проверка и перенос входных данных
	if err := applyUserInput(&user, input); err != nil {
		return nil, err
	}

	now := u.now().UTC().Truncate(time.Microsecond)
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	// Создание пользователя в хранилище
	if err := u.storage.InsertUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicateUser) {
			return nil, errUserEmailTaken
		}
		return nil, wrapStorageError("create user", err)
	}

	logger.Log.Info("user created", zap.String("userID", user.ID))

	return &user, nil
}

// ListUsers возвращает всех пользователей
func (u *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := u.storage.FindUsers(ctx)
	if err != nil {
		return nil, wrapStorageError("list users", err)
	}

	if users == nil {
		return []models.User{}, nil
	}

	return users, nil
}

// GetUser возвращает информацию о пользователе по идентификатору
func (u *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, &NotFoundError{Entity: "User", ID: userID}
	}

	user, err := u.storage.FindUser(ctx, userID)
	if err != nil {
		return nil, wrapStorageError("find user", err)
	}

	if user == nil {
		return nil, &NotFoundError{Entity: "User", ID: userID}
	}

	return user, nil
}

// UpdateUser изменяет переданные поля пользователя
func (u *UserService) UpdateUser(ctx context.Context, userID string, input models.UserInput) (*models.User, error) {
	user, err := u.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := applyUserInput(user, input); err != nil {
		return nil, err
	}
	user.UpdatedAt = u.now().UTC().Truncate(time.Microsecond)

	found, err := u.storage.ReplaceUser(ctx, *user)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateUser) {
			return nil, errUserEmailTaken
		}
		return nil, wrapStorageError("update user", err)
	}

	if !found {
		return nil, &NotFoundError{Entity: "User", ID: userID}
	}

	return user, nil
}

// DeleteUser удаляет пользователя
func (u *UserService) DeleteUser(ctx context.Context, userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return &NotFoundError{Entity: "User", ID: userID}
	}

	found, err := u.storage.RemoveUser(ctx, userID)
	if err != nil {
		return wrapStorageError("delete user", err)
	}

	if !found {
		return &NotFoundError{Entity: "User", ID: userID}
	}

	return nil
}

var errUserEmailTaken = &ValidationError{Message: "User with this email already exists"}

// applyUserInput проверяет данные пользователя и хэширует пароль, если он передан
func applyUserInput(user *models.User, input models.UserInput) error {
	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}

	if user.Name == "" {
		return newValidationError("User name is required")
	}
	if user.Email == "" {
		return newValidationError("User email is required")
	}

	if input.Password != nil {
		if *input.Password == "" {
			return newValidationError("Password cannot be empty")
		}
		if len(*input.Password) > 72 {
			return newValidationError("Password must be at most 72 bytes")
		}

		// Хэширование пароля
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("ошибка при хэшировании пароля: %w", err)
		}
		user.Hash = string(hash)
	}

	return nil
}

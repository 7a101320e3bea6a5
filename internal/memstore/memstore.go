// Package memstore хранит заказы, товары и пользователей в памяти процесса.
// Используется, когда база данных не настроена, и в тестах сервисов.
// Хранилище из Open дополнительно сохраняет снимок в JSON-файл.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Renal37/delux-perfumes/internal/database"
	"github.com/Renal37/delux-perfumes/internal/models"
)

// Store реализует те же методы хранилища, что и database.Database.
// Все чтения возвращают копии, поэтому вызывающий код не видит частично записанных данных.
type Store struct {
	mu       sync.RWMutex
	orders   map[string]models.Order
	products map[string]models.Product
	users    map[string]models.User

	// path файл снимка. Пустой, если данные живут только в памяти.
	path string
}

func New() *Store {
	return &Store{
		orders:   make(map[string]models.Order),
		products: make(map[string]models.Product),
		users:    make(map[string]models.User),
	}
}

func (s *Store) InsertOrder(_ context.Context, order models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[order.ID]; ok {
		return database.ErrDuplicateOrder
	}
	s.orders[order.ID] = order.Clone()

	return s.commit(func() { delete(s.orders, order.ID) })
}

func (s *Store) FindOrder(_ context.Context, orderID string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[orderID]
	if !ok {
		return nil, nil
	}
	order = order.Clone()

	return &order, nil
}

// FindOrders возвращает заказы под фильтр, от новых к старым
func (s *Store) FindOrders(_ context.Context, filter models.OrderFilter) ([]models.Order, error) {
	s.mu.RLock()
	result := make([]models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		if filter.Matches(order) {
			result = append(result, order.Clone())
		}
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}

// ReplaceOrder перезаписывает заказ целиком. Позиции и суммы сохраняются прежними, как в базе данных.
func (s *Store) ReplaceOrder(_ context.Context, order models.Order) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.orders[order.ID]
	if !ok {
		return false, nil
	}

	order.Items = stored.Items
	order.Subtotal = stored.Subtotal
	order.Shipping = stored.Shipping
	order.Discount = stored.Discount
	order.Total = stored.Total
	order.CreatedAt = stored.CreatedAt
	s.orders[order.ID] = order

	if err := s.commit(func() { s.orders[order.ID] = stored }); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) RemoveOrder(_ context.Context, orderID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.orders[orderID]
	if !ok {
		return false, nil
	}
	delete(s.orders, orderID)

	if err := s.commit(func() { s.orders[orderID] = stored }); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) InsertProduct(_ context.Context, product models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.products[product.ID]
	s.products[product.ID] = product

	return s.commit(func() {
		if existed {
			s.products[product.ID] = previous
		} else {
			delete(s.products, product.ID)
		}
	})
}

func (s *Store) FindProduct(_ context.Context, productID string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[productID]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

func (s *Store) FindProducts(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	result := make([]models.Product, 0, len(s.products))
	for _, product := range s.products {
		result = append(result, product)
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (s *Store) ReplaceProduct(_ context.Context, product models.Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, ok := s.products[product.ID]
	if !ok {
		return false, nil
	}
	s.products[product.ID] = product

	if err := s.commit(func() { s.products[product.ID] = previous }); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) RemoveProduct(_ context.Context, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.products[productID]
	if !ok {
		return false, nil
	}
	delete(s.products, productID)

	if err := s.commit(func() { s.products[productID] = stored }); err != nil {
		return false, err
	}
	return true, nil
}

// InsertUser возвращает database.ErrDuplicateUser, если email уже занят
func (s *Store) InsertUser(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTaken(user.Email, user.ID) {
		return database.ErrDuplicateUser
	}
	previous, existed := s.users[user.ID]
	s.users[user.ID] = user

	return s.commit(func() {
		if existed {
			s.users[user.ID] = previous
		} else {
			delete(s.users, user.ID)
		}
	})
}

func (s *Store) FindUser(_ context.Context, userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *Store) FindUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	result := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		result = append(result, user)
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (s *Store) ReplaceUser(_ context.Context, user models.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, ok := s.users[user.ID]
	if !ok {
		return false, nil
	}
	if s.emailTaken(user.Email, user.ID) {
		return false, database.ErrDuplicateUser
	}
	s.users[user.ID] = user

	if err := s.commit(func() { s.users[user.ID] = previous }); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) RemoveUser(_ context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[userID]
	if !ok {
		return false, nil
	}
	delete(s.users, userID)

	if err := s.commit(func() { s.users[userID] = stored }); err != nil {
		return false, err
	}
	return true, nil
}

// emailTaken вызывается под s.mu.
func (s *Store) emailTaken(email, exceptID string) bool {
	for id, user := range s.users {
		if id != exceptID && strings.EqualFold(user.Email, email) {
			return true
		}
	}
	return false
}

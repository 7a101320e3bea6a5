package memstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Renal37/delux-perfumes/internal/models"
)

// snapshot содержимое файла данных.
type snapshot struct {
	Orders   []models.Order   `json:"orders"`
	Products []models.Product `json:"products"`
	Users    []storedUser     `json:"users"`
}

// storedUser сохраняет хэш пароля, который скрыт в models.User при выдаче в API.
type storedUser struct {
	models.User
	Hash string `json:"hash"`
}

// Open создаёт хранилище, которое после каждого изменения записывает снимок в path.
// Если файл уже есть, данные загружаются из него.
func Open(path string) (*Store, error) {
	store := New()
	store.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("чтение %s: %w", path, err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("разбор %s: %w", path, err)
	}

	for _, order := range snap.Orders {
		store.orders[order.ID] = order
	}
	for _, product := range snap.Products {
		store.products[product.ID] = product
	}
	for _, stored := range snap.Users {
		user := stored.User
		user.Hash = stored.Hash
		store.users[user.ID] = user
	}

	return store, nil
}

// commit вызывается под s.mu после изменения карт. При ошибке записи изменение откатывается.
func (s *Store) commit(rollback func()) error {
	if s.path == "" {
		return nil
	}
	if err := s.flush(); err != nil {
		rollback()
		return err
	}
	return nil
}

// flush записывает снимок во временный файл и переименовывает его поверх прежнего.
func (s *Store) flush() error {
	snap := snapshot{
		Orders:   make([]models.Order, 0, len(s.orders)),
		Products: make([]models.Product, 0, len(s.products)),
		Users:    make([]storedUser, 0, len(s.users)),
	}
	for _, order := range s.orders {
		snap.Orders = append(snap.Orders, order)
	}
	for _, product := range s.products {
		snap.Products = append(snap.Products, product)
	}
	for _, user := range s.users {
		snap.Users = append(snap.Users, storedUser{User: user, Hash: user.Hash})
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("кодирование снимка: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("запись снимка: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("запись снимка: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("запись снимка: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("запись снимка: %w", err)
	}

	return nil
}

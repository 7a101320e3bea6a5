package services

import (
	"fmt"

	"github.com/Renal37/delux-perfumes/internal/logger"
	"go.uber.org/zap"
)

// ValidationError некорректные или неполные входные данные. Операция не имела побочных эффектов.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError запись с указанным идентификатором отсутствует.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// PersistenceError сбой хранилища при чтении или записи.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// wrapStorageError журналирует сбой хранилища и оборачивает его в PersistenceError.
func wrapStorageError(op string, err error) error {
	logger.Log.Error("storage failure", zap.String("op", op), zap.Error(err))
	return &PersistenceError{Op: op, Err: err}
}

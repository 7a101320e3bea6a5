package router

import (
	"errors"
	"net/http"

	"github.com/Renal37/delux-perfumes/internal/logger"
	"github.com/Renal37/delux-perfumes/internal/middlewares"
	"github.com/Renal37/delux-perfumes/internal/services"
	"go.uber.org/zap"
)

const internalErrorMessage = "Internal server error"

// writeServiceError переводит ошибку сервиса в HTTP-ответ.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		middlewares.EncodeJSONError(w, http.StatusBadRequest, validationErr.Message)
		return
	}

	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		middlewares.EncodeJSONError(w, http.StatusNotFound, notFoundErr.Error())
		return
	}

	// Ошибки хранилища уже записаны в журнал сервисом.
	var persistenceErr *services.PersistenceError
	if !errors.As(err, &persistenceErr) {
		logger.Log.Error("unexpected service error", zap.String("uri", r.RequestURI), zap.Error(err))
	}

	middlewares.EncodeJSONError(w, http.StatusInternalServerError, internalErrorMessage)
}

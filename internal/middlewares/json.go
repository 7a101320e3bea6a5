package middlewares

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
)

// parsedJSONDataFieldType является типом для хранения данных JSON в контексте запроса.
type parsedJSONDataFieldType string

// parsedJSONDataField - ключ для хранения данных JSON в контексте запроса.
const parsedJSONDataField parsedJSONDataFieldType = "parsedJSONDataField"

// MaxBodyBytes предельный размер тела запроса.
const MaxBodyBytes = 1 << 20

// ErrorResponse тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSONMiddleware обрабатывает JSON-запросы и извлекает данные JSON из тела запроса.
func JSONMiddleware[Model any](next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Проверка заголовка Content-Type, параметры вроде charset допускаются.
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			EncodeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}

		var parsedData Model
		var buf bytes.Buffer

		// Чтение данных из тела запроса.
		r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
		if _, err := buf.ReadFrom(r.Body); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				EncodeJSONError(w, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}
			EncodeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Failed to read request body: %s", err.Error()))
			return
		}

		// Распаковка данных JSON в структуру.
		if err := json.Unmarshal(buf.Bytes(), &parsedData); err != nil {
			EncodeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid JSON body: %s", err.Error()))
			return
		}

		// Передача данных JSON в контексте запроса.
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), parsedJSONDataField, parsedData)))
	})
}

// GetParsedJSONData извлекает данные JSON из контекста запроса.
// Второе значение false означает, что ответ с ошибкой уже отправлен.
func GetParsedJSONData[Model any](w http.ResponseWriter, r *http.Request) (Model, bool) {
	data, ok := r.Context().Value(parsedJSONDataField).(Model)

	if !ok {
		EncodeJSONError(w, http.StatusInternalServerError, "Failed to read request data from context")
		var empty Model
		return empty, false
	}

	return data, true
}

// EncodeJSONResponse кодирует данные в формат JSON и отправляет их с заданным статусом.
func EncodeJSONResponse[Model any](w http.ResponseWriter, status int, data Model) {
	resp, err := json.Marshal(data)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to encode JSON response: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ошибку записи уже некому вернуть: заголовки отправлены.
	_, _ = w.Write(resp)
}

// EncodeJSONError отправляет ответ вида {"error": message}.
func EncodeJSONError(w http.ResponseWriter, status int, message string) {
	EncodeJSONResponse(w, status, ErrorResponse{Error: message})
}

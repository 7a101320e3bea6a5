package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Renal37/delux-perfumes/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestJSONMiddleware(t *testing.T) {
	handler := JSONMiddleware[models.StatusUpdate](http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		update, ok := GetParsedJSONData[models.StatusUpdate](w, r)
		if !ok {
			return
		}
		EncodeJSONResponse(w, http.StatusOK, update)
	}))

	testCases := []struct {
		testName        string
		contentType     string
		body            string
		expectedCode    int
		expectedMessage string
	}{
		{
			testName:        "Корректное тело",
			contentType:     "application/json",
			body:            `{"status":"Shipped"}`,
			expectedCode:    http.StatusOK,
			expectedMessage: `{"status":"Shipped"}`,
		},
		{
			testName:        "Параметр charset допускается",
			contentType:     "application/json; charset=utf-8",
			body:            `{"status":"Shipped"}`,
			expectedCode:    http.StatusOK,
			expectedMessage: `{"status":"Shipped"}`,
		},
		{
			testName:        "Другой тип содержимого",
			contentType:     "text/plain",
			body:            `{"status":"Shipped"}`,
			expectedCode:    http.StatusUnsupportedMediaType,
			expectedMessage: `{"error":"Content-Type must be application/json"}`,
		},
		{
			testName:        "Нет заголовка Content-Type",
			body:            `{"status":"Shipped"}`,
			expectedCode:    http.StatusUnsupportedMediaType,
			expectedMessage: `{"error":"Content-Type must be application/json"}`,
		},
		{
			testName:        "Некорректный JSON",
			contentType:     "application/json",
			body:            `{"status":`,
			expectedCode:    http.StatusBadRequest,
			expectedMessage: `{"error":"Invalid JSON body: unexpected end of JSON input"}`,
		},
		{
			testName:        "Слишком большое тело",
			contentType:     "application/json",
			body:            `{"status":"` + strings.Repeat("a", MaxBodyBytes) + `"}`,
			expectedCode:    http.StatusRequestEntityTooLarge,
			expectedMessage: `{"error":"Request body too large"}`,
		},
		{
			testName:        "Тело ровно на пределе",
			contentType:     "application/json",
			body:            `{"status":"Shipped"}` + strings.Repeat(" ", MaxBodyBytes-len(`{"status":"Shipped"}`)),
			expectedCode:    http.StatusOK,
			expectedMessage: `{"status":"Shipped"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/orders/1/status", strings.NewReader(tc.body))
			if tc.contentType != "" {
				req.Header.Set("Content-Type", tc.contentType)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.Equal(t, tc.expectedMessage, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestGetServiceFromContextMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()

	service := GetServiceFromContext[models.StatsService](rec, req, StatsServiceKey)

	assert.Nil(t, service)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

package router

import (
	"net/http"

	"github.com/Renal37/delux-perfumes/internal/middlewares"
	"github.com/Renal37/delux-perfumes/internal/models"
	"github.com/go-chi/chi/v5"
)

type orderResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Order   *models.Order `json:"order"`
}

type ordersResponse struct {
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	Orders  []models.Order `json:"orders"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// orderIDParam извлекает идентификатор заказа из пути. "#" приходит как %23 и уже декодирован роутером.
func orderIDParam(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// CreateOrder обрабатывает HTTP-запрос на оформление заказа.
func CreateOrder(w http.ResponseWriter, r *http.Request) {
	request, ok := middlewares.GetParsedJSONData[models.CheckoutRequest](w, r)
	if !ok {
		return
	}

	orderService := middlewares.GetServiceFromContext[models.OrderService](w, r, middlewares.OrderServiceKey)
	if orderService == nil {
		return
	}

	order, err := (*orderService).CreateOrder(r.Context(), request)
	middlewares.RecordOrderOperation("create", err == nil)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusCreated, orderResponse{
		Success: true,
		Message: "Order created successfully",
		Order:   order,
	})
}

// GetOrders обрабатывает HTTP-запрос на получение списка заказов с фильтрами status, date и customer.
func GetOrders(w http.ResponseWriter, r *http.Request) {
	orderService := middlewares.GetServiceFromContext[models.OrderService](w, r, middlewares.OrderServiceKey)
	if orderService == nil {
		return
	}

	params := r.URL.Query()
	orders, err := (*orderService).ListOrders(r.Context(), models.OrderQuery{
		Status:   params.Get("status"),
		Date:     params.Get("date"),
		Customer: params.Get("customer"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusOK, ordersResponse{
		Success: true,
		Count:   len(orders),
		Orders:  orders,
	})
}

// GetOrder обрабатывает HTTP-запрос на получение заказа по идентификатору.
func GetOrder(w http.ResponseWriter, r *http.Request) {
	orderService := middlewares.GetServiceFromContext[models.OrderService](w, r, middlewares.OrderServiceKey)
	if orderService == nil {
		return
	}

	order, err := (*orderService).GetOrder(r.Context(), orderIDParam(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusOK, orderResponse{Success: true, Order: order})
}

// UpdateOrderStatus обрабатывает HTTP-запрос на смену статуса заказа.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	update, ok := middlewares.GetParsedJSONData[models.StatusUpdate](w, r)
	if !ok {
		return
	}

	orderService := middlewares.GetServiceFromContext[models.OrderService](w, r, middlewares.OrderServiceKey)
	if orderService == nil {
		return
	}

	var status string
	if update.Status != nil {
		status = *update.Status
	}

	order, err := (*orderService).UpdateStatus(r.Context(), orderIDParam(r), status)
	middlewares.RecordOrderOperation("update_status", err == nil)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusOK, orderResponse{
		Success: true,
		Message: "Order status updated",
		Order:   order,
	})
}

// UpdateOrderDetails обрабатывает HTTP-запрос на исправление адреса, телефона или заметок заказа.
func UpdateOrderDetails(w http.ResponseWriter, r *http.Request) {
	update, ok := middlewares.GetParsedJSONData[models.OrderDetailsUpdate](w, r)
	if !ok {
		return
	}

	orderService := middlewares.GetServiceFromContext[models.OrderService](w, r, middlewares.OrderServiceKey)
	if orderService == nil {
		return
	}

	order, err := (*orderService).UpdateDetails(r.Context(), orderIDParam(r), update)
	middlewares.RecordOrderOperation("update_details", err == nil)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusOK, orderResponse{Success: true, Order: order})
}

// DeleteOrder обрабатывает HTTP-запрос на удаление заказа.
func DeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderService := middlewares.GetServiceFromContext[models.OrderService](w, r, middlewares.OrderServiceKey)
	if orderService == nil {
		return
	}

	err := (*orderService).DeleteOrder(r.Context(), orderIDParam(r))
	middlewares.RecordOrderOperation("delete", err == nil)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Order deleted successfully",
	})
}

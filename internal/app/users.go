package router

import (
	"net/http"

	"github.com/Renal37/delux-perfumes/internal/middlewares"
	"github.com/Renal37/delux-perfumes/internal/models"
	"github.com/go-chi/chi/v5"
)

type userResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
}

type usersResponse struct {
	Success bool          `json:"success"`
	Count   int           `json:"count"`
	Users   []models.User `json:"users"`
}

// CreateUser обрабатывает HTTP-запрос на создание пользователя.
func CreateUser(w http.ResponseWriter, r *http.Request) {
	input, ok := middlewares.GetParsedJSONData[models.UserInput](w, r)
	if !ok {
		return
	}

	userService := middlewares.GetServiceFromContext[models.UserService](w, r, middlewares.UserServiceKey)
	if userService == nil {
		return
	}

	user, err := (*userService).CreateUser(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusCreated, userResponse{Success: true, User: user})
}

func GetUsers(w http.ResponseWriter, r *http.Request) {
	userService := middlewares.GetServiceFromContext[models.UserService](w, r, middlewares.UserServiceKey)
	if userService == nil {
		return
	}

	users, err := (*userService).ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusOK, usersResponse{Success: true, Count: len(users), Users: users})
}

func GetUser(w http.ResponseWriter, r *http.Request) {
	userService := middlewares.GetServiceFromContext[models.UserService](w, r, middlewares.UserServiceKey)
	if userService == nil {
		return
	}

	user, err := (*userService).GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusOK, userResponse{Success: true, User: user})
}

// UpdateUser обрабатывает HTTP-запрос на изменение пользователя.
func UpdateUser(w http.ResponseWriter, r *http.Request) {
	input, ok := middlewares.GetParsedJSONData[models.UserInput](w, r)
	if !ok {
		return
	}

	userService := middlewares.GetServiceFromContext[models.UserService](w, r, middlewares.UserServiceKey)
	if userService == nil {
		return
	}

	user, err := (*userService).UpdateUser(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusOK, userResponse{Success: true, User: user})
}

func DeleteUser(w http.ResponseWriter, r *http.Request) {
	userService := middlewares.GetServiceFromContext[models.UserService](w, r, middlewares.UserServiceKey)
	if userService == nil {
		return
	}

	if err := (*userService).DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "User deleted successfully",
	})
}

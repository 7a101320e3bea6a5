package router

import (
	"net/http"

	"github.com/Renal37/delux-perfumes/internal/middlewares"
	"github.com/Renal37/delux-perfumes/internal/models"
	"github.com/go-chi/chi/v5"
)

type productResponse struct {
	Success bool            `json:"success"`
	Product *models.Product `json:"product"`
}

type productsResponse struct {
	Success  bool             `json:"success"`
	Count    int              `json:"count"`
	Products []models.Product `json:"products"`
}

func CreateProduct(w http.ResponseWriter, r *http.Request) {
	input, ok := middlewares.GetParsedJSONData[models.ProductInput](w, r)
	if !ok {
		return
	}

	productService := middlewares.GetServiceFromContext[models.ProductService](w, r, middlewares.ProductServiceKey)
	if productService == nil {
		return
	}

	product, err := (*productService).CreateProduct(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusCreated, productResponse{Success: true, Product: product})
}

func GetProducts(w http.ResponseWriter, r *http.Request) {
	productService := middlewares.GetServiceFromContext[models.ProductService](w, r, middlewares.ProductServiceKey)
	if productService == nil {
		return
	}

	products, err := (*productService).ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusOK, productsResponse{
		Success:  true,
		Count:    len(products),
		Products: products,
	})
}

func GetProduct(w http.ResponseWriter, r *http.Request) {
	productService := middlewares.GetServiceFromContext[models.ProductService](w, r, middlewares.ProductServiceKey)
	if productService == nil {
		return
	}

	product, err := (*productService).GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusOK, productResponse{Success: true, Product: product})
}

func UpdateProduct(w http.ResponseWriter, r *http.Request) {
	input, ok := middlewares.GetParsedJSONData[models.ProductInput](w, r)
	if !ok {
		return
	}

	productService := middlewares.GetServiceFromContext[models.ProductService](w, r, middlewares.ProductServiceKey)
	if productService == nil {
		return
	}

	product, err := (*productService).UpdateProduct(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusOK, productResponse{Success: true, Product: product})
}

func DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productService := middlewares.GetServiceFromContext[models.ProductService](w, r, middlewares.ProductServiceKey)
	if productService == nil {
		return
	}

	if err := (*productService).DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Product deleted successfully",
	})
}

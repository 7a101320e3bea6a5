package models

import "time"

type ProductCategory string

const (
	CategoryForHer        ProductCategory = "For Her"
	CategoryForHim        ProductCategory = "For Him"
	CategoryUnisex        ProductCategory = "Unisex"
	CategoryGiftSets      ProductCategory = "Gift Sets"
	CategoryUncategorized ProductCategory = "Uncategorized"
)

var ProductCategories = []ProductCategory{
	CategoryForHer,
	CategoryForHim,
	CategoryUnisex,
	CategoryGiftSets,
	CategoryUncategorized,
}

func (c ProductCategory) IsValid() bool {
	for _, category := range ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       float64         `json:"price"`
	Image       string          `json:"image"`
	Category    ProductCategory `json:"category"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductInput тело запроса на создание или изменение товара.
// При изменении поля со значением nil остаются прежними.
type ProductInput struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
}

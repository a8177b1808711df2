package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	ID            int64           `json:"product_id" validate:"required"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description"`
	Company       string          `json:"company"`
	Price         decimal.Decimal `json:"price"`
	Units         int             `json:"units" validate:"min=0"`
	SubcategoryID int64           `json:"subcategory_id" validate:"required"`
}

// UpdateProductRequest entrada para actualizar un producto (reemplazo completo
// de los campos mutables).
type UpdateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description"`
	Company       string          `json:"company"`
	Price         decimal.Decimal `json:"price"`
	Units         int             `json:"units" validate:"min=0"`
	SubcategoryID int64           `json:"subcategory_id" validate:"required"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            int64           `json:"product_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Company       string          `json:"company"`
	Price         decimal.Decimal `json:"price"`
	Units         int             `json:"units"`
	SubcategoryID int64           `json:"subcategory_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductDetailResponse producto con los nombres de su subcategoría y
// categoría (listado unido).
type ProductDetailResponse struct {
	ProductResponse
	SubcategoryName string `json:"subcategory_name"`
	CategoryName    string `json:"category_name"`
}

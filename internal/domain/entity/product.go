package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Price es NUMERIC en la base
// (codec pgx-shopspring-decimal); Units es existencia entera.
type Product struct {
	ID            int64
	Name          string
	Description   string
	Company       string
	Price         decimal.Decimal
	Units         int
	SubcategoryID int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductDetail es el modelo de lectura del listado unido
// (product ⨝ subcategory ⨝ category): producto más los nombres de su
// subcategoría y categoría.
type ProductDetail struct {
	Product
	SubcategoryName string
	CategoryName    string
}

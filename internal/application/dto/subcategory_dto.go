package dto

import "time"

// CreateSubcategoryRequest entrada para crear una subcategoría.
type CreateSubcategoryRequest struct {
	ID         int64  `json:"subcategory_id" validate:"required"`
	Name       string `json:"name" validate:"required,min=1,max=200"`
	CategoryID int64  `json:"category_id" validate:"required"`
}

// UpdateSubcategoryRequest entrada para actualizar una subcategoría.
type UpdateSubcategoryRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	CategoryID int64  `json:"category_id" validate:"required"`
}

// SubcategoryResponse salida de una subcategoría.
type SubcategoryResponse struct {
	ID         int64     `json:"subcategory_id"`
	Name       string    `json:"name"`
	CategoryID int64     `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría. El id lo aporta el
// cliente (enteros del sistema origen).
type CreateCategoryRequest struct {
	ID   int64  `json:"category_id" validate:"required"`
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// UpdateCategoryRequest entrada para actualizar una categoría (reemplazo
// completo de los campos mutables).
type UpdateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        int64     `json:"category_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package entity

import "time"

// Subcategory representa una subcategoría; CategoryID debe referenciar una
// categoría existente (validado en el caso de uso, con FK como respaldo).
type Subcategory struct {
	ID         int64
	Name       string
	CategoryID int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

package entity

import "time"

// Category representa una categoría del catálogo. El ID lo asigna el cliente
// (enteros del sistema origen, no UUID generados por la API).
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

package repository

import "github.com/jhoicas/catalogo-api/internal/domain/entity"

// SortDirection direcciones válidas para el listado ordenado.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ProductRepository define el puerto de persistencia para Product.
// Las variantes ListDetailed* devuelven el modelo unido con los nombres de
// subcategoría y categoría.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	List() ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id int64) error
	Upsert(product *entity.Product) error

	ListDetailedOrdered(direction SortDirection) ([]*entity.ProductDetail, error)
	ListDetailedByName(substring string) ([]*entity.ProductDetail, error)
	ListDetailedPage(skip, limit int) ([]*entity.ProductDetail, error)
}

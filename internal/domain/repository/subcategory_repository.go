package repository

import "github.com/jhoicas/catalogo-api/internal/domain/entity"

// SubcategoryRepository define el puerto de persistencia para Subcategory.
// Mismas convenciones que CategoryRepository.
type SubcategoryRepository interface {
	Create(subcategory *entity.Subcategory) error
	GetByID(id int64) (*entity.Subcategory, error)
	List() ([]*entity.Subcategory, error)
	Update(subcategory *entity.Subcategory) error
	Delete(id int64) error
	Upsert(subcategory *entity.Subcategory) error
}

package usecase

import (
	"time"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// SubcategoryUseCase casos de uso CRUD para subcategorías. Valida que la
// categoría padre exista antes de insertar o mover la subcategoría.
type SubcategoryUseCase struct {
	repo         repository.SubcategoryRepository
	categoryRepo repository.CategoryRepository
}

// NewSubcategoryUseCase construye el caso de uso.
func NewSubcategoryUseCase(repo repository.SubcategoryRepository, categoryRepo repository.CategoryRepository) *SubcategoryUseCase {
	return &SubcategoryUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea una nueva subcategoría. ErrInvalidInput si la categoría padre
// no existe (el FK de la base respalda la ventana entre chequeo e INSERT).
func (uc *SubcategoryUseCase) Create(in dto.CreateSubcategoryRequest) (*dto.SubcategoryResponse, error) {
	parent, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	subcategory := &entity.Subcategory{
		ID:         in.ID,
		Name:       in.Name,
		CategoryID: in.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(subcategory); err != nil {
		return nil, err
	}
	return toSubcategoryResponse(subcategory), nil
}

// GetByID obtiene una subcategoría por ID. Devuelve (nil, nil) si no existe.
func (uc *SubcategoryUseCase) GetByID(id int64) (*dto.SubcategoryResponse, error) {
	subcategory, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if subcategory == nil {
		return nil, nil
	}
	return toSubcategoryResponse(subcategory), nil
}

// List devuelve todas las subcategorías en orden de inserción.
func (uc *SubcategoryUseCase) List() ([]dto.SubcategoryResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.SubcategoryResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSubcategoryResponse(s))
	}
	return items, nil
}

// Update reemplaza los campos mutables y refresca updated_at. Devuelve
// (nil, nil) si el id no existe; ErrInvalidInput si la nueva categoría padre
// no existe.
func (uc *SubcategoryUseCase) Update(id int64, in dto.UpdateSubcategoryRequest) (*dto.SubcategoryResponse, error) {
	subcategory, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if subcategory == nil {
		return nil, nil
	}
	parent, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, domain.ErrInvalidInput
	}
	subcategory.Name = in.Name
	subcategory.CategoryID = in.CategoryID
	subcategory.UpdatedAt = time.Now()
	if err := uc.repo.Update(subcategory); err != nil {
		return nil, err
	}
	return toSubcategoryResponse(subcategory), nil
}

// Delete elimina una subcategoría por ID.
func (uc *SubcategoryUseCase) Delete(id int64) error {
	return uc.repo.Delete(id)
}

func toSubcategoryResponse(s *entity.Subcategory) *dto.SubcategoryResponse {
	if s == nil {
		return nil
	}
	return &dto.SubcategoryResponse{
		ID:         s.ID,
		Name:       s.Name,
		CategoryID: s.CategoryID,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

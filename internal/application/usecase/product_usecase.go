package usecase

import (
	"time"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD y listados filtrados para productos.
// Valida que la subcategoría exista antes de insertar o actualizar.
type ProductUseCase struct {
	repo            repository.ProductRepository
	subcategoryRepo repository.SubcategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, subcategoryRepo repository.SubcategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, subcategoryRepo: subcategoryRepo}
}

// Create crea un nuevo producto. ErrInvalidInput si la subcategoría referida
// no existe: la tabla product no se toca en ese caso.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	parent, err := uc.subcategoryRepo.GetByID(in.SubcategoryID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:            in.ID,
		Name:          in.Name,
		Description:   in.Description,
		Company:       in.Company,
		Price:         in.Price,
		Units:         in.Units,
		SubcategoryID: in.SubcategoryID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List devuelve todos los productos en orden de inserción.
func (uc *ProductUseCase) List() ([]dto.ProductResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// ListOrdered listado unido ordenado por nombre. Solo acepta "asc" o "desc";
// cualquier otro valor es ErrInvalidInput.
func (uc *ProductUseCase) ListOrdered(direction string) ([]dto.ProductDetailResponse, error) {
	var dir repository.SortDirection
	switch direction {
	case string(repository.SortAsc):
		dir = repository.SortAsc
	case string(repository.SortDesc):
		dir = repository.SortDesc
	default:
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListDetailedOrdered(dir)
	if err != nil {
		return nil, err
	}
	return toProductDetailResponses(list), nil
}

// ListContaining listado unido filtrado por subcadena en el nombre
// (sensible a mayúsculas, según el collation de la base).
func (uc *ProductUseCase) ListContaining(substring string) ([]dto.ProductDetailResponse, error) {
	list, err := uc.repo.ListDetailedByName(substring)
	if err != nil {
		return nil, err
	}
	return toProductDetailResponses(list), nil
}

// ListPage página del listado unido. skip y limit negativos son ErrInvalidInput.
func (uc *ProductUseCase) ListPage(skip, limit int) ([]dto.ProductDetailResponse, error) {
	if skip < 0 || limit < 0 {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListDetailedPage(skip, limit)
	if err != nil {
		return nil, err
	}
	return toProductDetailResponses(list), nil
}

// Update reemplaza los campos mutables y refresca updated_at. Devuelve
// (nil, nil) si el id no existe; ErrInvalidInput si la subcategoría no existe.
func (uc *ProductUseCase) Update(id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	parent, err := uc.subcategoryRepo.GetByID(in.SubcategoryID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, domain.ErrInvalidInput
	}
	product.Name = in.Name
	product.Description = in.Description
	product.Company = in.Company
	product.Price = in.Price
	product.Units = in.Units
	product.SubcategoryID = in.SubcategoryID
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(id int64) error {
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Company:       p.Company,
		Price:         p.Price,
		Units:         p.Units,
		SubcategoryID: p.SubcategoryID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProductDetailResponses(list []*entity.ProductDetail) []dto.ProductDetailResponse {
	items := make([]dto.ProductDetailResponse, 0, len(list))
	for _, d := range list {
		items = append(items, dto.ProductDetailResponse{
			ProductResponse: *toProductResponse(&d.Product),
			SubcategoryName: d.SubcategoryName,
			CategoryName:    d.CategoryName,
		})
	}
	return items
}

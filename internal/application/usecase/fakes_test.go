package usecase_test

import (
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// Fakes en memoria de los puertos de persistencia. Respetan las mismas
// convenciones que los adaptadores PostgreSQL: GetByID devuelve (nil, nil) si
// no existe, Update devuelve ErrNoChanges sin filas afectadas, Delete devuelve
// ErrNotFound si el id no existe.

type fakeCategoryRepo struct {
	byID  map[int64]*entity.Category
	order []int64
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: make(map[int64]*entity.Category)}
}

func (f *fakeCategoryRepo) Create(c *entity.Category) error {
	if _, ok := f.byID[c.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *c
	f.byID[c.ID] = &cp
	f.order = append(f.order, c.ID)
	return nil
}

func (f *fakeCategoryRepo) GetByID(id int64) (*entity.Category, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryRepo) List() ([]*entity.Category, error) {
	list := make([]*entity.Category, 0, len(f.order))
	for _, id := range f.order {
		cp := *f.byID[id]
		list = append(list, &cp)
	}
	return list, nil
}

func (f *fakeCategoryRepo) Update(c *entity.Category) error {
	if _, ok := f.byID[c.ID]; !ok {
		return domain.ErrNoChanges
	}
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) Delete(id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeCategoryRepo) Upsert(c *entity.Category) error {
	now := time.Now()
	if existing, ok := f.byID[c.ID]; ok {
		existing.Name = c.Name
		existing.UpdatedAt = now
		return nil
	}
	cp := *c
	cp.CreatedAt = now
	cp.UpdatedAt = now
	f.byID[c.ID] = &cp
	f.order = append(f.order, c.ID)
	return nil
}

type fakeSubcategoryRepo struct {
	byID  map[int64]*entity.Subcategory
	order []int64
}

func newFakeSubcategoryRepo() *fakeSubcategoryRepo {
	return &fakeSubcategoryRepo{byID: make(map[int64]*entity.Subcategory)}
}

func (f *fakeSubcategoryRepo) Create(s *entity.Subcategory) error {
	if _, ok := f.byID[s.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *s
	f.byID[s.ID] = &cp
	f.order = append(f.order, s.ID)
	return nil
}

func (f *fakeSubcategoryRepo) GetByID(id int64) (*entity.Subcategory, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSubcategoryRepo) List() ([]*entity.Subcategory, error) {
	list := make([]*entity.Subcategory, 0, len(f.order))
	for _, id := range f.order {
		cp := *f.byID[id]
		list = append(list, &cp)
	}
	return list, nil
}

func (f *fakeSubcategoryRepo) Update(s *entity.Subcategory) error {
	if _, ok := f.byID[s.ID]; !ok {
		return domain.ErrNoChanges
	}
	cp := *s
	f.byID[s.ID] = &cp
	return nil
}

func (f *fakeSubcategoryRepo) Delete(id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeSubcategoryRepo) Upsert(s *entity.Subcategory) error {
	now := time.Now()
	if existing, ok := f.byID[s.ID]; ok {
		existing.Name = s.Name
		existing.CategoryID = s.CategoryID
		existing.UpdatedAt = now
		return nil
	}
	cp := *s
	cp.CreatedAt = now
	cp.UpdatedAt = now
	f.byID[s.ID] = &cp
	f.order = append(f.order, s.ID)
	return nil
}

// fakeProductRepo resuelve el listado unido contra los fakes de subcategoría
// y categoría, igual que el JOIN de tres tablas del adaptador real.
type fakeProductRepo struct {
	byID  map[int64]*entity.Product
	order []int64

	subs *fakeSubcategoryRepo
	cats *fakeCategoryRepo
}

func newFakeProductRepo(subs *fakeSubcategoryRepo, cats *fakeCategoryRepo) *fakeProductRepo {
	return &fakeProductRepo{byID: make(map[int64]*entity.Product), subs: subs, cats: cats}
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	if _, ok := f.byID[p.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	f.byID[p.ID] = &cp
	f.order = append(f.order, p.ID)
	return nil
}

func (f *fakeProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) List() ([]*entity.Product, error) {
	list := make([]*entity.Product, 0, len(f.order))
	for _, id := range f.order {
		cp := *f.byID[id]
		list = append(list, &cp)
	}
	return list, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	if _, ok := f.byID[p.ID]; !ok {
		return domain.ErrNoChanges
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Delete(id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeProductRepo) Upsert(p *entity.Product) error {
	now := time.Now()
	if existing, ok := f.byID[p.ID]; ok {
		existing.Name = p.Name
		existing.Description = p.Description
		existing.Company = p.Company
		existing.Price = p.Price
		existing.Units = p.Units
		existing.SubcategoryID = p.SubcategoryID
		existing.UpdatedAt = now
		return nil
	}
	cp := *p
	cp.CreatedAt = now
	cp.UpdatedAt = now
	f.byID[p.ID] = &cp
	f.order = append(f.order, p.ID)
	return nil
}

func (f *fakeProductRepo) detailed() []*entity.ProductDetail {
	list := make([]*entity.ProductDetail, 0, len(f.order))
	for _, id := range f.order {
		p := *f.byID[id]
		sub, ok := f.subs.byID[p.SubcategoryID]
		if !ok {
			continue // INNER JOIN: sin subcategoría no hay fila
		}
		cat, ok := f.cats.byID[sub.CategoryID]
		if !ok {
			continue
		}
		list = append(list, &entity.ProductDetail{
			Product:         p,
			SubcategoryName: sub.Name,
			CategoryName:    cat.Name,
		})
	}
	return list
}

func (f *fakeProductRepo) ListDetailedOrdered(direction repository.SortDirection) ([]*entity.ProductDetail, error) {
	list := f.detailed()
	sort.SliceStable(list, func(i, j int) bool {
		if direction == repository.SortDesc {
			return list[i].Name > list[j].Name
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}

func (f *fakeProductRepo) ListDetailedByName(substring string) ([]*entity.ProductDetail, error) {
	var out []*entity.ProductDetail
	for _, d := range f.detailed() {
		if strings.Contains(d.Name, substring) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) ListDetailedPage(skip, limit int) ([]*entity.ProductDetail, error) {
	list := f.detailed()
	if skip >= len(list) {
		return nil, nil
	}
	list = list[skip:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

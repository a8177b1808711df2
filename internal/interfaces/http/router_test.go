package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/importer"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	apphttp "github.com/jhoicas/catalogo-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de los puertos de persistencia (mismas convenciones que los adaptadores
// PostgreSQL) y helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type memCategoryRepo struct {
	byID  map[int64]*entity.Category
	order []int64
}

func (m *memCategoryRepo) Create(c *entity.Category) error {
	if _, ok := m.byID[c.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *c
	m.byID[c.ID] = &cp
	m.order = append(m.order, c.ID)
	return nil
}

func (m *memCategoryRepo) GetByID(id int64) (*entity.Category, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memCategoryRepo) List() ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(m.order))
	for _, id := range m.order {
		cp := *m.byID[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memCategoryRepo) Update(c *entity.Category) error {
	if _, ok := m.byID[c.ID]; !ok {
		return domain.ErrNoChanges
	}
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *memCategoryRepo) Delete(id int64) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memCategoryRepo) Upsert(c *entity.Category) error {
	if existing, ok := m.byID[c.ID]; ok {
		existing.Name = c.Name
		return nil
	}
	cp := *c
	m.byID[c.ID] = &cp
	m.order = append(m.order, c.ID)
	return nil
}

type memSubcategoryRepo struct {
	byID  map[int64]*entity.Subcategory
	order []int64
}

func (m *memSubcategoryRepo) Create(s *entity.Subcategory) error {
	if _, ok := m.byID[s.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *s
	m.byID[s.ID] = &cp
	m.order = append(m.order, s.ID)
	return nil
}

func (m *memSubcategoryRepo) GetByID(id int64) (*entity.Subcategory, error) {
	s, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memSubcategoryRepo) List() ([]*entity.Subcategory, error) {
	out := make([]*entity.Subcategory, 0, len(m.order))
	for _, id := range m.order {
		cp := *m.byID[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memSubcategoryRepo) Update(s *entity.Subcategory) error {
	if _, ok := m.byID[s.ID]; !ok {
		return domain.ErrNoChanges
	}
	cp := *s
	m.byID[s.ID] = &cp
	return nil
}

func (m *memSubcategoryRepo) Delete(id int64) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memSubcategoryRepo) Upsert(s *entity.Subcategory) error {
	if existing, ok := m.byID[s.ID]; ok {
		existing.Name = s.Name
		existing.CategoryID = s.CategoryID
		return nil
	}
	cp := *s
	m.byID[s.ID] = &cp
	m.order = append(m.order, s.ID)
	return nil
}

type memProductRepo struct {
	byID  map[int64]*entity.Product
	order []int64
	subs  *memSubcategoryRepo
	cats  *memCategoryRepo
}

func (m *memProductRepo) Create(p *entity.Product) error {
	if _, ok := m.byID[p.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	m.byID[p.ID] = &cp
	m.order = append(m.order, p.ID)
	return nil
}

func (m *memProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProductRepo) List() ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(m.order))
	for _, id := range m.order {
		cp := *m.byID[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memProductRepo) Update(p *entity.Product) error {
	if _, ok := m.byID[p.ID]; !ok {
		return domain.ErrNoChanges
	}
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memProductRepo) Delete(id int64) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memProductRepo) Upsert(p *entity.Product) error {
	if existing, ok := m.byID[p.ID]; ok {
		*existing = *p
		return nil
	}
	cp := *p
	m.byID[p.ID] = &cp
	m.order = append(m.order, p.ID)
	return nil
}

func (m *memProductRepo) detailed() []*entity.ProductDetail {
	out := make([]*entity.ProductDetail, 0, len(m.order))
	for _, id := range m.order {
		p, ok := m.byID[id]
		if !ok {
			continue
		}
		sub, ok := m.subs.byID[p.SubcategoryID]
		if !ok {
			continue
		}
		cat, ok := m.cats.byID[sub.CategoryID]
		if !ok {
			continue
		}
		out = append(out, &entity.ProductDetail{Product: *p, SubcategoryName: sub.Name, CategoryName: cat.Name})
	}
	return out
}

func (m *memProductRepo) ListDetailedOrdered(direction repository.SortDirection) ([]*entity.ProductDetail, error) {
	list := m.detailed()
	sort.SliceStable(list, func(i, j int) bool {
		if direction == repository.SortDesc {
			return list[i].Name > list[j].Name
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}

func (m *memProductRepo) ListDetailedByName(substring string) ([]*entity.ProductDetail, error) {
	var out []*entity.ProductDetail
	for _, d := range m.detailed() {
		if strings.Contains(d.Name, substring) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memProductRepo) ListDetailedPage(skip, limit int) ([]*entity.ProductDetail, error) {
	list := m.detailed()
	if skip >= len(list) {
		return nil, nil
	}
	list = list[skip:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

// buildTestApp arma la aplicación Fiber completa (router real, casos de uso
// reales) sobre repos en memoria.
func buildTestApp() (*fiber.App, *memCategoryRepo, *memSubcategoryRepo, *memProductRepo) {
	cats := &memCategoryRepo{byID: make(map[int64]*entity.Category)}
	subs := &memSubcategoryRepo{byID: make(map[int64]*entity.Subcategory)}
	prods := &memProductRepo{byID: make(map[int64]*entity.Product), subs: subs, cats: cats}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CategoryUC:    usecase.NewCategoryUseCase(cats),
		SubcategoryUC: usecase.NewSubcategoryUseCase(subs, cats),
		ProductUC:     usecase.NewProductUseCase(prods, subs),
		ImportUC:      importer.NewUseCase(cats, subs, prods),
	})
	return app, cats, subs, prods
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func seedCatalog(t *testing.T, app *fiber.App) {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/category/", fiber.Map{"category_id": 1, "name": "Electrónica"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPost, "/subcategory/", fiber.Map{"subcategory_id": 10, "name": "Teléfonos", "category_id": 1})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CRUD
// ──────────────────────────────────────────────────────────────────────────────

func TestPostCategory_Crear_Retorna201(t *testing.T) {
	app, _, _, _ := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/category/", fiber.Map{"category_id": 1, "name": "Electrónica"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, float64(1), body["category_id"])
	assert.Equal(t, "Electrónica", body["name"])
}

func TestPostCategory_Duplicada_Retorna409(t *testing.T) {
	app, _, _, _ := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/category/", fiber.Map{"category_id": 1, "name": "Electrónica"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/category/", fiber.Map{"category_id": 1, "name": "Hogar"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestGetProduct_Inexistente_Retorna404(t *testing.T) {
	app, _, _, _ := buildTestApp()

	resp := doJSON(t, app, http.MethodGet, "/product/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "NOT_FOUND")
}

func TestGetProduct_IDNoNumerico_Retorna400(t *testing.T) {
	app, _, _, _ := buildTestApp()

	resp := doJSON(t, app, http.MethodGet, "/product/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPostProduct_SubcategoriaInexistente_Retorna400(t *testing.T) {
	app, _, _, prods := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/product/", fiber.Map{
		"product_id": 100, "name": "PhoneX", "price": "10.00", "units": 1, "subcategory_id": 999,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, prods.byID, "la tabla product no debe mutarse")
}

func TestProduct_CicloCompleto(t *testing.T) {
	app, _, _, _ := buildTestApp()
	seedCatalog(t, app)

	resp := doJSON(t, app, http.MethodPost, "/product/", fiber.Map{
		"product_id": 100, "name": "PhoneX", "description": "Un teléfono",
		"company": "BrandA", "price": "199.99", "units": 5, "subcategory_id": 10,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/product/100", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]any
	decodeBody(t, resp, &got)
	assert.Equal(t, "PhoneX", got["name"])

	resp = doJSON(t, app, http.MethodPut, "/product/100", fiber.Map{
		"name": "PhoneX Lite", "price": "149.50", "units": 3, "subcategory_id": 10,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/product/100", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/product/100", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPutSubcategory_Inexistente_Retorna404(t *testing.T) {
	app, _, _, _ := buildTestApp()
	seedCatalog(t, app)

	resp := doJSON(t, app, http.MethodPut, "/subcategory/999", fiber.Map{"name": "Otra", "category_id": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteCategory_Inexistente_Retorna404(t *testing.T) {
	app, _, _, _ := buildTestApp()

	resp := doJSON(t, app, http.MethodDelete, "/category/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests listados unidos
// ──────────────────────────────────────────────────────────────────────────────

func seedProducts(t *testing.T, app *fiber.App, names ...string) {
	t.Helper()
	seedCatalog(t, app)
	for i, name := range names {
		resp := doJSON(t, app, http.MethodPost, "/product/", fiber.Map{
			"product_id": 100 + i, "name": name, "price": "1.00", "units": 1, "subcategory_id": 10,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
}

func TestProductsOrderBy_Asc(t *testing.T) {
	app, _, _, _ := buildTestApp()
	seedProducts(t, app, "Zeta", "Alfa", "Media")

	resp := doJSON(t, app, http.MethodGet, "/products/orderby/?orderby=asc", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []map[string]any
	decodeBody(t, resp, &list)
	require.Len(t, list, 3)
	assert.Equal(t, "Alfa", list[0]["name"])
	assert.Equal(t, "Zeta", list[2]["name"])
	assert.Equal(t, "Teléfonos", list[0]["subcategory_name"])
	assert.Equal(t, "Electrónica", list[0]["category_name"])
}

func TestProductsOrderBy_DireccionInvalida_Retorna400(t *testing.T) {
	app, _, _, _ := buildTestApp()

	resp := doJSON(t, app, http.MethodGet, "/products/orderby/?orderby=sideways", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProductsContain_FiltraPorSubcadena(t *testing.T) {
	app, _, _, _ := buildTestApp()
	seedProducts(t, app, "PhoneX", "Tablet", "PhoneY")

	resp := doJSON(t, app, http.MethodGet, "/products/contain/?name=Phone", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []map[string]any
	decodeBody(t, resp, &list)
	assert.Len(t, list, 2)
}

func TestProductsSkipLimit_RespetaElLimite(t *testing.T) {
	app, _, _, _ := buildTestApp()
	seedProducts(t, app, "A", "B", "C", "D", "E")

	resp := doJSON(t, app, http.MethodGet, "/products/skip_limit/?skip=0&limit=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []map[string]any
	decodeBody(t, resp, &list)
	assert.LessOrEqual(t, len(list), 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests carga CSV
// ──────────────────────────────────────────────────────────────────────────────

func doUpload(t *testing.T, app *fiber.App, content string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "catalog.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/loadProducts/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

const uploadHeader = "category_id,category_name,subcategory_id,subcategory_name,product_id,product_name,description,company,price,units\n"

func TestLoadProducts_ArchivoValido_Retorna200(t *testing.T) {
	app, cats, subs, prods := buildTestApp()

	resp := doUpload(t, app, uploadHeader+"1,Electronics,10,Phones,100,PhoneX,A phone,BrandA,199.99,5\n")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, float64(1), body["rows_loaded"])
	assert.NotEmpty(t, body["import_id"])

	require.NotNil(t, cats.byID[1])
	require.NotNil(t, subs.byID[10])
	require.NotNil(t, prods.byID[100])
	assert.True(t, decimal.RequireFromString("199.99").Equal(prods.byID[100].Price))
}

func TestLoadProducts_Reimportar_ActualizaEnLugarDeDuplicar(t *testing.T) {
	app, cats, subs, prods := buildTestApp()
	content := uploadHeader + "1,Electronics,10,Phones,100,PhoneX,A phone,BrandA,199.99,5\n"

	resp := doUpload(t, app, content)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doUpload(t, app, content)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Len(t, cats.byID, 1)
	assert.Len(t, subs.byID, 1)
	assert.Len(t, prods.byID, 1)
}

func TestLoadProducts_FilaMalformada_Retorna400(t *testing.T) {
	app, _, _, prods := buildTestApp()

	resp := doUpload(t, app, uploadHeader+
		"1,Electronics,10,Phones,100,PhoneX,A phone,BrandA,199.99,5\n"+
		"2,Home,20,Kitchen,200,Pan,A pan,BrandB,not-a-price,3\n")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// La primera fila ya había confirmado antes del error.
	assert.NotNil(t, prods.byID[100])
	assert.Nil(t, prods.byID[200])
}

func TestLoadProducts_SinArchivo_Retorna400(t *testing.T) {
	app, _, _, _ := buildTestApp()

	req := httptest.NewRequest(http.MethodPost, "/loadProducts/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/importer"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC    *usecase.CategoryUseCase
	SubcategoryUC *usecase.SubcategoryUseCase
	ProductUC     *usecase.ProductUseCase
	ImportUC      *importer.UseCase
}

// Router registra las rutas de la API. Las rutas en singular operan sobre un
// recurso (alta, consulta, modificación, baja); las plurales listan.
func Router(app *fiber.App, deps RouterDeps) {
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	app.Get("/categories/", categoryHandler.List)
	app.Get("/category/:id", categoryHandler.GetByID)
	app.Post("/category/", categoryHandler.Create)
	app.Put("/category/:id", categoryHandler.Update)
	app.Delete("/category/:id", categoryHandler.Delete)

	subcategoryHandler := NewSubcategoryHandler(deps.SubcategoryUC)
	app.Get("/subcategories/", subcategoryHandler.List)
	app.Get("/subcategory/:id", subcategoryHandler.GetByID)
	app.Post("/subcategory/", subcategoryHandler.Create)
	app.Put("/subcategory/:id", subcategoryHandler.Update)
	app.Delete("/subcategory/:id", subcategoryHandler.Delete)

	productHandler := NewProductHandler(deps.ProductUC)
	app.Get("/products/", productHandler.List)
	app.Get("/products/orderby/", productHandler.ListOrdered)
	app.Get("/products/contain/", productHandler.ListContaining)
	app.Get("/products/skip_limit/", productHandler.ListPage)
	app.Get("/product/:id", productHandler.GetByID)
	app.Post("/product/", productHandler.Create)
	app.Put("/product/:id", productHandler.Update)
	app.Delete("/product/:id", productHandler.Delete)

	importHandler := NewImportHandler(deps.ImportUC)
	app.Post("/loadProducts/", importHandler.Load)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/importer"
)

// ImportHandler maneja la carga masiva por CSV.
type ImportHandler struct {
	uc *importer.UseCase
}

// NewImportHandler construye el handler.
func NewImportHandler(uc *importer.UseCase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

// Load godoc
// @Summary      Carga masiva de catálogo desde CSV
// @Description  Archivo multipart (campo "file"): cabecera más filas de diez
// @Description  columnas. Cada fila hace upsert de categoría, subcategoría y
// @Description  producto; la primera fila con error aborta el resto y lo ya
// @Description  confirmado permanece.
// @Tags         import
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo CSV"
// @Success      200  {object}  dto.ImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /loadProducts/ [post]
func (h *ImportHandler) Load(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo \"file\" requerido"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo abrir el archivo"})
	}
	defer f.Close()

	out, err := h.uc.Load(f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

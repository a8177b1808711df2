package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// columnCount columnas posicionales esperadas tras la fila de cabecera:
// category_id, category_name, subcategory_id, subcategory_name, product_id,
// product_name, description, company, price, units.
const columnCount = 10

// UseCase carga masiva desde CSV. Por cada fila hace upsert de categoría,
// subcategoría y producto, en ese orden. Las tres sentencias confirman por
// separado (sin transacción por fila ni por archivo): la primera fila que
// falla aborta el resto del archivo y lo ya confirmado permanece.
type UseCase struct {
	categoryRepo    repository.CategoryRepository
	subcategoryRepo repository.SubcategoryRepository
	productRepo     repository.ProductRepository
}

// NewUseCase construye el caso de uso de carga.
func NewUseCase(
	categoryRepo repository.CategoryRepository,
	subcategoryRepo repository.SubcategoryRepository,
	productRepo repository.ProductRepository,
) *UseCase {
	return &UseCase{
		categoryRepo:    categoryRepo,
		subcategoryRepo: subcategoryRepo,
		productRepo:     productRepo,
	}
}

// Load procesa el contenido CSV (UTF-8, cabecera más filas de datos).
// Los errores de formato envuelven domain.ErrInvalidInput (el handler los
// traduce a 400); los errores de base de datos se propagan tal cual.
func (uc *UseCase) Load(r io.Reader) (*dto.ImportResponse, error) {
	importID := uuid.New().String()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = columnCount

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("archivo vacío: %w", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("cabecera ilegible: %v: %w", err, domain.ErrInvalidInput)
	}

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum := rows + 1
		if err != nil {
			return nil, fmt.Errorf("fila %d: %v: %w", rowNum, err, domain.ErrInvalidInput)
		}
		if err := uc.loadRow(record, rowNum); err != nil {
			log.Error().Err(err).Str("import_id", importID).Int("fila", rowNum).
				Msg("carga CSV abortada")
			return nil, err
		}
		rows++
	}

	log.Info().Str("import_id", importID).Int("filas", rows).Msg("carga CSV completada")
	return &dto.ImportResponse{
		ImportID:   importID,
		RowsLoaded: rows,
		Message:    "carga completada",
	}, nil
}

// loadRow procesa una fila de datos: categoría (campos 0-1), subcategoría
// (campos 2-3 con category_id del campo 0) y producto (campos 4-9 con
// subcategory_id del campo 2).
func (uc *UseCase) loadRow(record []string, rowNum int) error {
	categoryID, err := parseInt(record[0], "category_id", rowNum)
	if err != nil {
		return err
	}
	subcategoryID, err := parseInt(record[2], "subcategory_id", rowNum)
	if err != nil {
		return err
	}
	productID, err := parseInt(record[4], "product_id", rowNum)
	if err != nil {
		return err
	}
	price, err := decimal.NewFromString(record[8])
	if err != nil {
		return fmt.Errorf("fila %d: price %q no es numérico: %w", rowNum, record[8], domain.ErrInvalidInput)
	}
	units, err := parseInt(record[9], "units", rowNum)
	if err != nil {
		return err
	}

	category := &entity.Category{ID: categoryID, Name: record[1]}
	if err := uc.categoryRepo.Upsert(category); err != nil {
		return fmt.Errorf("fila %d: categoría: %w", rowNum, err)
	}

	subcategory := &entity.Subcategory{ID: subcategoryID, Name: record[3], CategoryID: categoryID}
	if err := uc.subcategoryRepo.Upsert(subcategory); err != nil {
		return fmt.Errorf("fila %d: subcategoría: %w", rowNum, err)
	}

	product := &entity.Product{
		ID:            productID,
		Name:          record[5],
		Description:   record[6],
		Company:       record[7],
		Price:         price,
		Units:         int(units),
		SubcategoryID: subcategoryID,
	}
	if err := uc.productRepo.Upsert(product); err != nil {
		return fmt.Errorf("fila %d: producto: %w", rowNum, err)
	}
	return nil
}

func parseInt(s, field string, rowNum int) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("fila %d: %s %q no es entero: %w", rowNum, field, s, domain.ErrInvalidInput)
	}
	return n, nil
}

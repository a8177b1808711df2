package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// detailedSelect proyección del listado unido: producto más nombres de
// subcategoría y categoría.
const detailedSelect = `
	SELECT p.product_id, p.name, p.description, p.company, p.price, p.units,
	       p.subcategory_id, p.created_at, p.updated_at, s.name, c.name
	FROM product p
	JOIN subcategory s ON s.subcategory_id = p.subcategory_id
	JOIN category c ON c.category_id = s.category_id`

// Create persiste un nuevo producto con el id provisto por el cliente.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO product (product_id, name, description, company, price, units, subcategory_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Company,
		product.Price, product.Units, product.SubcategoryID,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	query := `
		SELECT product_id, name, description, company, price, units, subcategory_id, created_at, updated_at
		FROM product WHERE product_id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Company, &p.Price, &p.Units,
		&p.SubcategoryID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List devuelve todos los productos en orden de inserción.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	query := `
		SELECT product_id, name, description, company, price, units, subcategory_id, created_at, updated_at
		FROM product ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// Update reemplaza los campos mutables. ErrNoChanges si no afectó filas.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE product SET name = $2, description = $3, company = $4, price = $5, units = $6, subcategory_id = $7, updated_at = $8
		WHERE product_id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Company,
		product.Price, product.Units, product.SubcategoryID, product.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNoChanges
	}
	return nil
}

// Delete elimina un producto por ID. ErrNotFound si el id no existe.
func (r *ProductRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM product WHERE product_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Upsert inserta o actualiza por id en una sola sentencia. Usado por la carga CSV.
func (r *ProductRepo) Upsert(product *entity.Product) error {
	query := `
		INSERT INTO product (product_id, name, description, company, price, units, subcategory_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		ON CONFLICT (product_id) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description, company = EXCLUDED.company,
		    price = EXCLUDED.price, units = EXCLUDED.units, subcategory_id = EXCLUDED.subcategory_id,
		    updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Company,
		product.Price, product.Units, product.SubcategoryID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}

// ListDetailedOrdered listado unido ordenado por nombre de producto.
// La dirección ya viene validada por el caso de uso; aun así solo se
// interpolan los dos literales conocidos, nunca entrada del usuario.
func (r *ProductRepo) ListDetailedOrdered(direction repository.SortDirection) ([]*entity.ProductDetail, error) {
	order := "ASC"
	if direction == repository.SortDesc {
		order = "DESC"
	}
	rows, err := r.q.Query(context.Background(), detailedSelect+" ORDER BY p.name "+order)
	if err != nil {
		return nil, fmt.Errorf("list products ordered: %w", err)
	}
	defer rows.Close()
	return scanProductDetails(rows)
}

// ListDetailedByName listado unido filtrado por subcadena en el nombre.
// El patrón no escapa % ni _: un comodín del usuario se comporta como
// comodín SQL (comportamiento heredado, no una característica).
func (r *ProductRepo) ListDetailedByName(substring string) ([]*entity.ProductDetail, error) {
	rows, err := r.q.Query(context.Background(),
		detailedSelect+` WHERE p.name LIKE '%' || $1 || '%'`, substring)
	if err != nil {
		return nil, fmt.Errorf("list products by name: %w", err)
	}
	defer rows.Close()
	return scanProductDetails(rows)
}

// ListDetailedPage página del listado unido. Sin ORDER BY explícito: el orden
// entre llamadas no es estable y los clientes no deben asumirlo.
func (r *ProductRepo) ListDetailedPage(skip, limit int) ([]*entity.ProductDetail, error) {
	rows, err := r.q.Query(context.Background(),
		detailedSelect+` LIMIT $1 OFFSET $2`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list products page: %w", err)
	}
	defer rows.Close()
	return scanProductDetails(rows)
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Company, &p.Price, &p.Units,
			&p.SubcategoryID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func scanProductDetails(rows pgx.Rows) ([]*entity.ProductDetail, error) {
	var list []*entity.ProductDetail
	for rows.Next() {
		var d entity.ProductDetail
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Company, &d.Price, &d.Units,
			&d.SubcategoryID, &d.CreatedAt, &d.UpdatedAt, &d.SubcategoryName, &d.CategoryName); err != nil {
			return nil, fmt.Errorf("scan product detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

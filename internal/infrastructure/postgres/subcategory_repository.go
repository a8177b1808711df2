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

var _ repository.SubcategoryRepository = (*SubcategoryRepo)(nil)

// SubcategoryRepo implementación del puerto SubcategoryRepository sobre
// PostgreSQL (usable con pool o tx).
type SubcategoryRepo struct {
	q Querier
}

// NewSubcategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubcategoryRepository(q Querier) *SubcategoryRepo {
	return &SubcategoryRepo{q: q}
}

// Create persiste una nueva subcategoría.
func (r *SubcategoryRepo) Create(subcategory *entity.Subcategory) error {
	query := `
		INSERT INTO subcategory (subcategory_id, name, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		subcategory.ID, subcategory.Name, subcategory.CategoryID,
		subcategory.CreatedAt, subcategory.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert subcategory: %w", err)
	}
	return nil
}

// GetByID obtiene una subcategoría por ID. Devuelve (nil, nil) si no existe.
func (r *SubcategoryRepo) GetByID(id int64) (*entity.Subcategory, error) {
	query := `
		SELECT subcategory_id, name, category_id, created_at, updated_at
		FROM subcategory WHERE subcategory_id = $1`
	var s entity.Subcategory
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Name, &s.CategoryID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subcategory: %w", err)
	}
	return &s, nil
}

// List devuelve todas las subcategorías en orden de inserción.
func (r *SubcategoryRepo) List() ([]*entity.Subcategory, error) {
	query := `
		SELECT subcategory_id, name, category_id, created_at, updated_at
		FROM subcategory ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Subcategory
	for rows.Next() {
		var s entity.Subcategory
		if err := rows.Scan(&s.ID, &s.Name, &s.CategoryID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update reemplaza los campos mutables. ErrNoChanges si no afectó filas.
func (r *SubcategoryRepo) Update(subcategory *entity.Subcategory) error {
	query := `
		UPDATE subcategory SET name = $2, category_id = $3, updated_at = $4
		WHERE subcategory_id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		subcategory.ID, subcategory.Name, subcategory.CategoryID, subcategory.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update subcategory: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNoChanges
	}
	return nil
}

// Delete elimina una subcategoría por ID. ErrNotFound si el id no existe.
func (r *SubcategoryRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM subcategory WHERE subcategory_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subcategory: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Upsert inserta o actualiza por id en una sola sentencia. Usado por la carga CSV.
func (r *SubcategoryRepo) Upsert(subcategory *entity.Subcategory) error {
	query := `
		INSERT INTO subcategory (subcategory_id, name, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		ON CONFLICT (subcategory_id) DO UPDATE
		SET name = EXCLUDED.name, category_id = EXCLUDED.category_id, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		subcategory.ID, subcategory.Name, subcategory.CategoryID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("upsert subcategory: %w", err)
	}
	return nil
}

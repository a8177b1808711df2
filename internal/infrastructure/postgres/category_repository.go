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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL
// (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría con el id provisto por el cliente.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO category (category_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID. Devuelve (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(id int64) (*entity.Category, error) {
	query := `
		SELECT category_id, name, created_at, updated_at
		FROM category WHERE category_id = $1`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// List devuelve todas las categorías en orden de inserción.
func (r *CategoryRepo) List() ([]*entity.Category, error) {
	query := `
		SELECT category_id, name, created_at, updated_at
		FROM category ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update reemplaza los campos mutables. ErrNoChanges si no afectó filas
// (el caso de uso ya verificó que el id existe).
func (r *CategoryRepo) Update(category *entity.Category) error {
	query := `
		UPDATE category SET name = $2, updated_at = $3
		WHERE category_id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNoChanges
	}
	return nil
}

// Delete elimina una categoría por ID. ErrNotFound si el id no existe.
func (r *CategoryRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM category WHERE category_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Upsert inserta o actualiza por id en una sola sentencia (sin carrera
// check-then-act). Usado por la carga CSV.
func (r *CategoryRepo) Upsert(category *entity.Category) error {
	query := `
		INSERT INTO category (category_id, name, created_at, updated_at)
		VALUES ($1, $2, now(), now())
		ON CONFLICT (category_id) DO UPDATE SET name = EXCLUDED.name, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, category.ID, category.Name)
	if err != nil {
		return fmt.Errorf("upsert category: %w", err)
	}
	return nil
}

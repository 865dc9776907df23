package pgdb

import (
	"context"
	"errors"

	"github.com/aradovic23/drinks-viewer/internal/domain"
	"github.com/aradovic23/drinks-viewer/internal/repository/pgdb/converter"
	"github.com/aradovic23/drinks-viewer/pkg/e"
	"github.com/aradovic23/drinks-viewer/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const categoryColumns = `id, name, supports_type, supports_description, default_image_url, created_at, updated_at`

// CategoryRepo реализует репозиторий категорий поверх PostgreSQL.
type CategoryRepo struct {
	pool *pgxpool.Pool
	conv converter.CategoryConverter
}

func NewCategoryRepo(pool *pgxpool.Pool, conv converter.CategoryConverter) *CategoryRepo {
	return &CategoryRepo{pool: pool, conv: conv}
}

// List возвращает все категории каталога.
func (c *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		ORDER BY id
	`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.CategoryModel, 0)
	for rows.Next() {
		var model converter.CategoryModel
		if err := scanCategory(rows, &model); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}

	return c.conv.ToArrEntity(models), nil
}

// GetByID возвращает категорию по идентификатору.
func (c *CategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE id = $1
	`

	var model converter.CategoryModel
	if err := scanCategory(c.pool.QueryRow(ctx, query, id), &model); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrCategoryNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

// Create идемпотентно создаёт категорию по имени, игнорируя дубликаты.
func (c *CategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		WITH inserted AS (
			INSERT INTO categories (name, supports_type, supports_description, default_image_url)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO NOTHING
			RETURNING ` + categoryColumns + `
		)
		SELECT * FROM inserted
		UNION ALL
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE name = $1 AND NOT EXISTS (SELECT 1 FROM inserted);
	`

	in := c.conv.ToModel(category)

	var model converter.CategoryModel
	err = scanCategory(tx.QueryRow(ctx, query,
		in.Name, in.SupportsType, in.SupportsDescription, in.DefaultImageURL,
	), &model)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

func scanCategory(row pgx.Row, model *converter.CategoryModel) error {
	return row.Scan(
		&model.ID, &model.Name, &model.SupportsType, &model.SupportsDescription,
		&model.DefaultImageURL, &model.CreatedAt, &model.UpdatedAt,
	)
}

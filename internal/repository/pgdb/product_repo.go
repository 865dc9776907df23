package pgdb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aradovic23/drinks-viewer/internal/domain"
	"github.com/aradovic23/drinks-viewer/internal/repository/pgdb/converter"
	"github.com/aradovic23/drinks-viewer/internal/usecase"
	"github.com/aradovic23/drinks-viewer/pkg/e"
	"github.com/aradovic23/drinks-viewer/pkg/tr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const productColumns = `id, title, price, volume, tag, type, description, image_url,
		category_id, is_hidden, is_recommended, created_at, updated_at`

// ProductRepo реализует репозиторий продуктов поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// List возвращает все продукты в порядке создания.
// Порядок стабилен: клиентский фильтр не пересортировывает снапшот.
func (p *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		ORDER BY created_at, id
	`, productColumns)

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.ProductModel, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := scanProduct(rows, &model); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}

	return p.conv.ToArrEntity(models), nil
}

// GetByID возвращает продукт по идентификатору.
func (p *ProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE id = $1
	`, productColumns)

	var model converter.ProductModel
	if err := scanProduct(p.pool.QueryRow(ctx, query, id), &model); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// Create вставляет новый продукт с сгенерированным uuid.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := fmt.Sprintf(`
		INSERT INTO products (id, title, price, volume, tag, type, description, image_url, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s
	`, productColumns)

	in := p.conv.ToModel(product)

	var model converter.ProductModel
	err = scanProduct(tx.QueryRow(ctx, query,
		uuid.NewString(), in.Title, in.Price, in.Volume, in.Tag,
		in.Type, in.Description, in.ImageURL, in.CategoryID,
	), &model)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// Update выполняет частичное обновление: собирает SET только из присутствующих полей.
func (p *ProductRepo) Update(ctx context.Context, req *usecase.UpdateProductReq) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	set := make([]string, 0, 8)
	args := make([]any, 0, 9)
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Price != nil {
		add("price", *req.Price)
	}
	if req.Volume != nil {
		add("volume", emptyToNull(*req.Volume))
	}
	if req.Tag != nil {
		add("tag", emptyToNull(*req.Tag))
	}
	if req.Type != nil {
		add("type", emptyToNull(*req.Type))
	}
	if req.Description != nil {
		add("description", emptyToNull(*req.Description))
	}
	if req.ImageURL != nil {
		add("image_url", emptyToNull(*req.ImageURL))
	}
	if req.CategoryID != nil {
		add("category_id", *req.CategoryID)
	}

	if len(set) == 0 {
		return p.GetByID(ctx, req.ID)
	}

	args = append(args, req.ID)
	query := fmt.Sprintf(`
		UPDATE products
		SET %s, updated_at = NOW()
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(set, ", "), len(args), productColumns)

	var model converter.ProductModel
	if err := scanProduct(tx.QueryRow(ctx, query, args...), &model); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// Delete удаляет продукт и возвращает удалённую запись.
func (p *ProductRepo) Delete(ctx context.Context, id string) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := fmt.Sprintf(`
		DELETE FROM products
		WHERE id = $1
		RETURNING %s
	`, productColumns)

	var model converter.ProductModel
	if err := scanProduct(tx.QueryRow(ctx, query, id), &model); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// SetHidden выставляет флаг is_hidden. Флаг односторонний:
// повторное скрытие возвращает e.ErrAlreadyHidden.
func (p *ProductRepo) SetHidden(ctx context.Context, id string) (*domain.Product, error) {
	return p.setFlag(ctx, id, "is_hidden", e.ErrAlreadyHidden)
}

// SetRecommended выставляет флаг is_recommended, также односторонний.
func (p *ProductRepo) SetRecommended(ctx context.Context, id string) (*domain.Product, error) {
	return p.setFlag(ctx, id, "is_recommended", e.ErrAlreadyRecommended)
}

func (p *ProductRepo) setFlag(ctx context.Context, id string, column string, conflictErr error) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := fmt.Sprintf(`
		UPDATE products
		SET %s = TRUE, updated_at = NOW()
		WHERE id = $1 AND %s = FALSE
		RETURNING %s
	`, column, column, productColumns)

	var model converter.ProductModel
	if err := scanProduct(tx.QueryRow(ctx, query, id), &model); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Либо продукта нет, либо флаг уже выставлен
			var exists bool
			existsErr := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists)
			if existsErr != nil {
				return nil, e.Wrap(whereami.WhereAmI(), existsErr)
			}
			if exists {
				return nil, conflictErr
			}
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

func scanProduct(row pgx.Row, model *converter.ProductModel) error {
	return row.Scan(
		&model.ID, &model.Title, &model.Price, &model.Volume, &model.Tag,
		&model.Type, &model.Description, &model.ImageURL, &model.CategoryID,
		&model.IsHidden, &model.IsRecommended, &model.CreatedAt, &model.UpdatedAt,
	)
}

func emptyToNull(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

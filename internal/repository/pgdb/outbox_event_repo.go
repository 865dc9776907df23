package pgdb

import (
	"context"

	"github.com/aradovic23/drinks-viewer/internal/repository/pgdb/converter"
	"github.com/aradovic23/drinks-viewer/internal/usecase"
	"github.com/aradovic23/drinks-viewer/pkg/e"
	"github.com/aradovic23/drinks-viewer/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// OutboxEventRepo хранит события изменений продуктов для последующей публикации в Kafka.
type OutboxEventRepo struct {
	pool *pgxpool.Pool
	conv converter.OutboxEventConverter
}

func NewOutboxEventRepo(pool *pgxpool.Pool, conv converter.OutboxEventConverter) *OutboxEventRepo {
	return &OutboxEventRepo{pool: pool, conv: conv}
}

// Add записывает событие в рамках текущей транзакции мутации.
// Триггер таблицы рассылает NOTIFY 'outbox_pending' после коммита.
func (o *OutboxEventRepo) Add(ctx context.Context, event *usecase.OutboxEvent) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO outbox_events (event_id, product_id, event_type, payload, status)
		VALUES ($1, $2, $3, $4, $5)
	`

	model := o.conv.ToModel(event)
	_, err = tx.Exec(ctx, query,
		model.EventID, model.ProductID, model.EventType, model.Payload, model.Status,
	)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// GetAndMarkAsProcessing атомарно забирает пачку необработанных событий.
// SKIP LOCKED позволяет запускать несколько воркеров без двойной публикации.
func (o *OutboxEventRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	query := `
		UPDATE outbox_events
		SET status = 'processing'
		WHERE id IN (
			SELECT id FROM outbox_events
			WHERE status = 'pending'
			ORDER BY id
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, event_id, product_id, event_type, payload, status, created_at, processed_at
	`

	rows, err := o.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]*converter.OutboxEventModel, 0, limit)
	for rows.Next() {
		var model converter.OutboxEventModel
		err := rows.Scan(
			&model.ID, &model.EventID, &model.ProductID, &model.EventType,
			&model.Payload, &model.Status, &model.CreatedAt, &model.ProcessedAt,
		)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}

	return o.conv.ToArrEntity(models), nil
}

// MarkAsProcessed помечает событие опубликованным.
func (o *OutboxEventRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	query := `
		UPDATE outbox_events
		SET status = 'processed', processed_at = NOW()
		WHERE id = $1
	`

	if _, err := o.pool.Exec(ctx, query, id); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID            string     `db:"id"`
	Title         string     `db:"title"`
	Price         string     `db:"price"`
	Volume        *string    `db:"volume"`
	Tag           *string    `db:"tag"`
	Type          *string    `db:"type"`
	Description   *string    `db:"description"`
	ImageURL      *string    `db:"image_url"`
	CategoryID    int64      `db:"category_id"`
	IsHidden      bool       `db:"is_hidden"`
	IsRecommended bool       `db:"is_recommended"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     *time.Time `db:"updated_at"`
}

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID                  int64      `db:"id"`
	Name                string     `db:"name"`
	SupportsType        bool       `db:"supports_type"`
	SupportsDescription bool       `db:"supports_description"`
	DefaultImageURL     *string    `db:"default_image_url"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           *time.Time `db:"updated_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	ProductID   string     `db:"product_id"`
	EventType   string     `db:"event_type"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}

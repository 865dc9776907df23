package usecase

import (
	"time"

	"github.com/aradovic23/drinks-viewer/internal/domain"
)

// CATALOG USECASE

// CreateProductReq — запрос на создание продукта.
// Поля, не поддерживаемые категорией, отбрасываются до записи.
type CreateProductReq struct {
	Title       string
	Price       string
	Volume      string
	Tag         string
	Type        string
	Description string
	ImageURL    string
	CategoryID  int64
}

// UpdateProductReq — частичное обновление продукта: nil означает «поле не трогать».
type UpdateProductReq struct {
	ID          string
	Title       *string
	Price       *string
	Volume      *string
	Tag         *string
	Type        *string
	Description *string
	ImageURL    *string
	CategoryID  *int64
}

// CreateCategoryReq — запрос на создание категории.
type CreateCategoryReq struct {
	Name                string
	SupportsType        bool
	SupportsDescription bool
	DefaultImageURL     string
}

// CatalogSnapshot — целиком закэшированная пара (категории, продукты).
type CatalogSnapshot struct {
	Categories []domain.Category
	Products   []domain.Product
}

// INFRASTRUCTURE

// MirrorImageReq — запрос на зеркалирование внешнего изображения в S3.
type MirrorImageReq struct {
	SourceURL    string
	ProductTitle string
}

// MirrorImageRes — результат зеркалирования.
type MirrorImageRes struct {
	PublicURL string
	ObjectKey string
}

type WriteRawMessageReq struct {
	ProductID string
	Payload   []byte
}

// OUTBOX

type OutboxStatus string

const (
	OutboxStatusPending    OutboxStatus = "pending"
	OutboxStatusProcessing OutboxStatus = "processing"
	OutboxStatusProcessed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	OutboxProductCreated     OutboxEventType = "product_created"
	OutboxProductUpdated     OutboxEventType = "product_updated"
	OutboxProductDeleted     OutboxEventType = "product_deleted"
	OutboxProductHidden      OutboxEventType = "product_hidden"
	OutboxProductRecommended OutboxEventType = "product_recommended"
)

// OutboxEvent — запись транзакционного outbox.
type OutboxEvent struct {
	ID          int64
	EventID     string // uuid
	ProductID   string
	EventType   OutboxEventType
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// ProductChangeEvent — JSON-содержимое сообщения в Kafka.
type ProductChangeEvent struct {
	EventID    string `json:"event_id"`
	Operation  string `json:"operation"`
	ProductID  string `json:"product_id"`
	Title      string `json:"title"`
	OccurredAt int64  `json:"occurred_at"`
}

// MAPPERS

func NewCatalogSnapshot(categories []domain.Category, products []domain.Product) *CatalogSnapshot {
	return &CatalogSnapshot{
		Categories: categories,
		Products:   products,
	}
}

func NewMirrorImageReq(sourceURL, productTitle string) *MirrorImageReq {
	return &MirrorImageReq{
		SourceURL:    sourceURL,
		ProductTitle: productTitle,
	}
}

func NewMirrorImageRes(publicURL, objectKey string) *MirrorImageRes {
	return &MirrorImageRes{
		PublicURL: publicURL,
		ObjectKey: objectKey,
	}
}

func NewWriteRawMessageReq(productID string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		ProductID: productID,
		Payload:   payload,
	}
}

func NewOutboxEvent(eventID, productID string, eventType OutboxEventType, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		ProductID: productID,
		EventType: eventType,
		Payload:   payload,
		Status:    OutboxStatusPending,
	}
}

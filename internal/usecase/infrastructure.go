package usecase

import (
	"context"

	"github.com/aradovic23/drinks-viewer/internal/domain"
)

type ImageSearchInfra interface {
	SearchImages(ctx context.Context, term string) ([]domain.Image, error)
}

type ImagesInfra interface {
	// MirrorImage скачивает изображение по внешнему URL и сохраняет копию в S3.
	// Возвращает публичный URL зеркалированной копии и ключ объекта.
	MirrorImage(ctx context.Context, req *MirrorImageReq) (*MirrorImageRes, error)
	CleanupImages(keys []string)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

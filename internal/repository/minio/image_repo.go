package minio

import (
	"bytes"
	"context"

	"github.com/aradovic23/drinks-viewer/internal/cfg"
	"github.com/aradovic23/drinks-viewer/internal/domain"
	"github.com/aradovic23/drinks-viewer/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// ImageRepo хранит зеркалированные изображения продуктов в MinIO.
type ImageRepo struct {
	client *minio.Client
	cfg    *cfg.MinIOCfg
}

func NewImageRepo(client *minio.Client, cfg *cfg.MinIOCfg) *ImageRepo {
	return &ImageRepo{client: client, cfg: cfg}
}

// Upload сохраняет объект и возвращает его ключ.
func (i *ImageRepo) Upload(ctx context.Context, image *domain.StoredImage) (string, error) {
	_, err := i.client.PutObject(
		ctx,
		image.Bucket,
		image.ObjectKey,
		bytes.NewReader(image.Data),
		int64(len(image.Data)),
		minio.PutObjectOptions{ContentType: image.ContentType},
	)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return image.ObjectKey, nil
}

// Delete удаляет объект по ключу.
func (i *ImageRepo) Delete(ctx context.Context, key string) error {
	err := i.client.RemoveObject(ctx, i.cfg.BucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

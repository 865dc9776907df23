package minio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/aradovic23/drinks-viewer/internal/cfg"
	"github.com/aradovic23/drinks-viewer/internal/domain"
	"github.com/aradovic23/drinks-viewer/internal/infrastructure"
	"github.com/aradovic23/drinks-viewer/internal/usecase"
	"github.com/aradovic23/drinks-viewer/pkg/e"
	"github.com/aradovic23/drinks-viewer/pkg/jitter"
	"github.com/aradovic23/drinks-viewer/pkg/logger"

	"github.com/google/uuid"
)

// MinioInfrastructure зеркалирует внешние изображения продуктов в MinIO
// и управляет фоновой зачисткой осиротевших объектов.
type MinioInfrastructure struct {
	imageRepo   usecase.ImageRepository
	cfg         *cfg.MinIOCfg
	httpClient  *http.Client
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
}

func NewMinioInfrastructure(imageRepo usecase.ImageRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *MinioInfrastructure {
	return &MinioInfrastructure{
		imageRepo:   imageRepo,
		cfg:         cfg,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		logger:      logger,
		shutdownCtx: shutdownCtx,
	}
}

// MirrorImage скачивает изображение по внешнему URL и сохраняет копию в бакет,
// чтобы каталог не ссылался на сторонние хосты.
func (m *MinioInfrastructure) MirrorImage(ctx context.Context, req *usecase.MirrorImageReq) (*usecase.MirrorImageRes, error) {
	const op = "MinioInfrastructure.MirrorImage"

	data, mimeType, err := m.fetchImage(ctx, req.SourceURL)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ext, err := infrastructure.GetExtensionFromMIME(mimeType)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	imageID := uuid.NewString()
	objKey := fmt.Sprintf("%s/%s.%s", slug(req.ProductTitle), imageID, ext)

	key, err := m.imageRepo.Upload(ctx, domain.NewStoredImage(imageID, m.cfg.BucketName, objKey, data, mimeType))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	publicURL := fmt.Sprintf("%s/%s/%s", strings.TrimRight(m.cfg.PublicBaseURL, "/"), m.cfg.BucketName, key)

	return usecase.NewMirrorImageRes(publicURL, key), nil
}

// CleanupImages запускает фоновую очистку указанных ключей MinIO
func (m *MinioInfrastructure) CleanupImages(keys []string) {
	if len(keys) == 0 {
		return
	}
	m.wg.Add(1)
	go m.cleanupUploadedKeys(keys)
}

// WaitForCleanup ожидает завершения всех фоновых задач очистки с учётом таймаута завершения приложения.
func (m *MinioInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}

// fetchImage скачивает изображение с ограничением размера.
func (m *MinioInfrastructure) fetchImage(ctx context.Context, srcURL string) ([]byte, string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := m.httpClient.Do(httpReq)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, srcURL)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, m.cfg.MirrorSizeLimit+1))
	if err != nil {
		return nil, "", err
	}
	if int64(len(data)) > m.cfg.MirrorSizeLimit {
		return nil, "", e.ErrImageTooLarge
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data[:min(len(data), 512)])
	}

	return data, mimeType, nil
}

// cleanupUploadedKeys удаляет указанные объекты из MinIO с экспоненциальной задержкой и jitter.
func (m *MinioInfrastructure) cleanupUploadedKeys(keys []string) {
	defer m.wg.Done()
	const (
		op          = "MinioInfrastructure.cleanupUploadedKeys"
		maxAttempts = 3
		baseBackoff = time.Second
		maxBackoff  = 10 * time.Second
	)
	m.logger.Infof("%s: Cleaning up uploaded keys", op)

	ctx, cancel := context.WithTimeout(m.shutdownCtx, 30*time.Second)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < maxAttempts; attempt++ {
			if err := m.imageRepo.Delete(ctx, key); err == nil {
				break
			}

			select {
			case <-ctx.Done():
				m.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
				return
			default:
			}

			if attempt < maxAttempts-1 {
				sleepTime := jitter.ExponentialBackoff(baseBackoff, maxBackoff, attempt, jitter.DefaultJitter)
				select {
				case <-time.After(sleepTime):
				case <-ctx.Done():
					m.logger.Warnf("cleanup interrupted by shutdown during backoff, key=%v", key)
					return
				}
			}
		}
	}
}

// slug приводит название продукта к безопасному префиксу ключа объекта.
func slug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = strings.ReplaceAll(s, " ", "-")
	return url.PathEscape(s)
}

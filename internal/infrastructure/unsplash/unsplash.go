package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/aradovic23/drinks-viewer/internal/cfg"
	"github.com/aradovic23/drinks-viewer/internal/domain"
	"github.com/aradovic23/drinks-viewer/pkg/e"
	"github.com/aradovic23/drinks-viewer/pkg/jitter"
	"github.com/aradovic23/drinks-viewer/pkg/logger"
)

// UnsplashInfrastructure ищет изображения для карточек продуктов через Unsplash API.
type UnsplashInfrastructure struct {
	cfg        *cfg.UnsplashCfg
	httpClient *http.Client
	logger     logger.Logger
}

func NewUnsplashInfrastructure(cfg *cfg.UnsplashCfg, logger logger.Logger) *UnsplashInfrastructure {
	return &UnsplashInfrastructure{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

type searchResponse struct {
	Results []photo `json:"results"`
}

type photo struct {
	ID   string `json:"id"`
	URLs struct {
		Regular string `json:"regular"`
		Thumb   string `json:"thumb"`
	} `json:"urls"`
}

// SearchImages выполняет поиск изображений по запросу с повторами при временных сбоях.
func (u *UnsplashInfrastructure) SearchImages(ctx context.Context, term string) ([]domain.Image, error) {
	const (
		op          = "UnsplashInfrastructure.SearchImages"
		baseBackoff = 500 * time.Millisecond
		maxBackoff  = 5 * time.Second
	)

	var lastErr error
	for attempt := 0; attempt < u.cfg.MaxRetries; attempt++ {
		images, err := u.search(ctx, term)
		if err == nil {
			return images, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return nil, e.Wrap(op, err)
		}

		u.logger.Warnf("image search attempt %d failed: %v", attempt+1, err)

		if attempt < u.cfg.MaxRetries-1 {
			sleepTime := jitter.ExponentialBackoff(baseBackoff, maxBackoff, attempt, jitter.DefaultJitter)
			select {
			case <-time.After(sleepTime):
			case <-ctx.Done():
				return nil, e.Wrap(op, ctx.Err())
			}
		}
	}

	return nil, e.Wrap(op, lastErr)
}

func (u *UnsplashInfrastructure) search(ctx context.Context, term string) ([]domain.Image, error) {
	q := url.Values{}
	q.Set("query", term)
	q.Set("per_page", strconv.Itoa(u.cfg.PerPage))

	reqURL := fmt.Sprintf("%s/search/photos?%s", u.cfg.BaseURL, q.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Client-ID "+u.cfg.AccessKey)
	httpReq.Header.Set("Accept-Version", "v1")

	resp, err := u.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &apiError{status: resp.StatusCode, body: string(body)}
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, err
	}

	images := make([]domain.Image, 0, len(sr.Results))
	for _, p := range sr.Results {
		images = append(images, *domain.NewImage(p.ID, p.URLs.Thumb, p.URLs.Regular))
	}

	return images, nil
}

type apiError struct {
	status int
	body   string
}

func (a *apiError) Error() string {
	return fmt.Sprintf("unsplash api returned %d: %s", a.status, a.body)
}

// isRetryable определяет, имеет ли смысл повторять запрос.
// Ошибки клиента (4xx, кроме 429) повторять бесполезно.
func isRetryable(err error) bool {
	if apiErr, ok := err.(*apiError); ok {
		if apiErr.status == http.StatusTooManyRequests {
			return true
		}
		return apiErr.status >= 500
	}

	return true
}

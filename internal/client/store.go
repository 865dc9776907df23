package client

import (
	"context"
	"sync"
	"time"

	"github.com/aradovic23/drinks-viewer/internal/domain"
	"github.com/aradovic23/drinks-viewer/pkg/e"
	"github.com/aradovic23/drinks-viewer/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// catalogKey — единственный ключ кэша: снимок всегда заменяется целиком.
const catalogKey = "catalog"

// Snapshot — последняя успешно загруженная пара (категории, продукты).
type Snapshot struct {
	Categories []domain.Category
	Products   []domain.Product
	FetchedAt  time.Time
}

// CategoryByID находит категорию в снимке.
func (s *Snapshot) CategoryByID(id int64) (*domain.Category, bool) {
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			return &s.Categories[i], true
		}
	}
	return nil, false
}

// ProductByID находит продукт в снимке.
func (s *Snapshot) ProductByID(id string) (*domain.Product, bool) {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return &s.Products[i], true
		}
	}
	return nil, false
}

// CatalogStore хранит последний снимок каталога и управляет его обновлением.
// Одновременно выполняется не более одного запроса на загрузку: конкурентные
// Invalidate сливаются в уже летящий запрос. Неудачная загрузка сохраняет
// предыдущий снимок и выставляет флаг устаревания вместо очистки данных.
type CatalogStore struct {
	gateway      Gateway
	logger       logger.Logger
	fetchTimeout time.Duration

	group singleflight.Group

	mu       sync.RWMutex
	snapshot *Snapshot
	stale    bool
	lastErr  error
	closed   bool
}

func NewCatalogStore(gateway Gateway, logger logger.Logger, fetchTimeout time.Duration) *CatalogStore {
	return &CatalogStore{
		gateway:      gateway,
		logger:       logger,
		fetchTimeout: fetchTimeout,
		stale:        true,
	}
}

// FetchAll загружает категории и продукты и заменяет снимок целиком.
// Конкурентные вызовы сливаются в один сетевой запрос.
func (s *CatalogStore) FetchAll(ctx context.Context) (*Snapshot, error) {
	const op = "CatalogStore.FetchAll"

	v, err, _ := s.group.Do(catalogKey, func() (interface{}, error) {
		return s.fetch(ctx)
	})
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.stale = true
		s.mu.Unlock()
		return nil, e.Wrap(op, err)
	}

	snap := v.(*Snapshot)

	s.mu.Lock()
	if !s.closed {
		s.snapshot = snap
		s.stale = false
		s.lastErr = nil
	}
	s.mu.Unlock()

	return snap, nil
}

// Current возвращает последний успешно загруженный снимок без блокировки.
// Второе значение сообщает, устарел ли снимок (идёт или требуется обновление).
func (s *CatalogStore) Current() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.stale
}

// LastError возвращает ошибку последней неудачной загрузки, если она была.
func (s *CatalogStore) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Invalidate помечает снимок устаревшим и запускает фоновую перезагрузку.
// Повторные вызовы во время летящего запроса не создают новых запросов.
func (s *CatalogStore) Invalidate() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.stale = true
	s.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.fetchTimeout)
		defer cancel()

		if _, err := s.FetchAll(ctx); err != nil {
			s.logger.Warnf("background catalog refetch failed: %v", err)
		}
	}()
}

// Patch оптимистично заменяет продукт в текущем снимке, не дожидаясь
// перезагрузки. Источник истины остаётся за последующим Invalidate.
func (s *CatalogStore) Patch(product *domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot == nil || s.closed {
		return
	}

	products := make([]domain.Product, len(s.snapshot.Products))
	copy(products, s.snapshot.Products)
	for i := range products {
		if products[i].ID == product.ID {
			products[i] = *product
			break
		}
	}

	s.snapshot = &Snapshot{
		Categories: s.snapshot.Categories,
		Products:   products,
		FetchedAt:  s.snapshot.FetchedAt,
	}
}

// Remove оптимистично удаляет продукт из текущего снимка.
func (s *CatalogStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot == nil || s.closed {
		return
	}

	products := make([]domain.Product, 0, len(s.snapshot.Products))
	for i := range s.snapshot.Products {
		if s.snapshot.Products[i].ID != id {
			products = append(products, s.snapshot.Products[i])
		}
	}

	s.snapshot = &Snapshot{
		Categories: s.snapshot.Categories,
		Products:   products,
		FetchedAt:  s.snapshot.FetchedAt,
	}
}

// Close останавливает обновления снимка: поздние завершения фоновых
// загрузок больше не меняют состояние.
func (s *CatalogStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *CatalogStore) fetch(ctx context.Context) (*Snapshot, error) {
	categories, err := s.gateway.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	products, err := s.gateway.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Categories: categories,
		Products:   products,
		FetchedAt:  time.Now(),
	}, nil
}

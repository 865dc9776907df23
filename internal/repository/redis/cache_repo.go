package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aradovic23/drinks-viewer/internal/cfg"
	"github.com/aradovic23/drinks-viewer/internal/repository/redis/converter"
	"github.com/aradovic23/drinks-viewer/internal/usecase"
	"github.com/aradovic23/drinks-viewer/pkg/clients"
	"github.com/aradovic23/drinks-viewer/pkg/e"
	"github.com/aradovic23/drinks-viewer/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// catalogKey — единственный ключ серверного кэша каталога.
const catalogKey = "catalog:v1"

type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.CatalogConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.CatalogConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetCatalog возвращает закэшированный снапшот каталога.
// Промах кэша — это (nil, nil), а не ошибка.
func (c *CacheRepo) GetCatalog(ctx context.Context) (*usecase.CatalogSnapshot, error) {
	data, err := c.client.Client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, nil // cache miss
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.CatalogRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		c.logger.Warnf("Catalog cache unmarshal failed, dropping key: %v", e.Wrap(whereami.WhereAmI(), err))
		if delErr := c.client.Client.Del(context.Background(), catalogKey).Err(); delErr != nil {
			c.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), delErr))
		}
		return nil, nil // считаем промахом
	}

	return c.conv.ToUseCase(&model), nil
}

// SetCatalog кэширует снапшот каталога с TTL.
func (c *CacheRepo) SetCatalog(ctx context.Context, snapshot *usecase.CatalogSnapshot) error {
	data, err := json.Marshal(c.conv.ToRedisModel(snapshot))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, catalogKey, data, c.cfg.CatalogTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// DeleteCatalog сбрасывает кэш каталога после мутации.
func (c *CacheRepo) DeleteCatalog(ctx context.Context) error {
	if err := c.client.Client.Del(ctx, catalogKey).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"storefront/models"

	"github.com/go-redis/redis/v8"
)

const DefaultCacheTTL = 5 * time.Minute

// Cache keeps adapted search pages in Redis so repeated queries for the same
// term and page skip the upstream.
type Cache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{Redis: client, TTL: ttl}
}

func cacheKey(term string, page int) string {
	return fmt.Sprintf("search:%s:%d", strings.ToLower(strings.TrimSpace(term)), page)
}

// Get reports a miss with ok=false. redis.Nil is a miss, not an error.
func (c *Cache) Get(ctx context.Context, term string, page int) (products []models.Product, ok bool, err error) {
	payload, err := c.Redis.Get(ctx, cacheKey(term, page)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}

	if err = json.Unmarshal([]byte(payload), &products); err != nil {
		return nil, false, err
	}

	return products, true, nil
}

func (c *Cache) Set(ctx context.Context, term string, page int, products []models.Product) error {
	payload, err := json.Marshal(products)
	if err != nil {
		return err
	}

	return c.Redis.Set(ctx, cacheKey(term, page), string(payload), c.TTL).Err()
}

// CachedSearcher puts a Cache in front of another Searcher. Cache failures are
// logged and fall through to the upstream.
type CachedSearcher struct {
	Next  Searcher
	Cache *Cache
}

func (s *CachedSearcher) Search(ctx context.Context, term string, page, pageSize int) ([]models.Product, error) {
	products, ok, err := s.Cache.Get(ctx, term, page)
	if err != nil {
		log.Println(err)
	}

	if ok {
		return products, nil
	}

	products, err = s.Next.Search(ctx, term, page, pageSize)
	if err != nil {
		return nil, err
	}

	if err := s.Cache.Set(ctx, term, page, products); err != nil {
		log.Println(err)
	}

	return products, nil
}

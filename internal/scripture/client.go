package scripture

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"sanctify-api/internal/logger"
	"sanctify-api/internal/models"
)

const cacheTTL = 5 * time.Minute

// Cache is the chapter cache. Get returns an error on miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisCache backs Cache with Redis.
type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.rdb.Get(ctx, key).Result()
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Client fetches scripture chapters from the public text source and
// caches them. The cache is best-effort: a cache failure is logged and
// the chapter is served from the source.
type Client struct {
	base  string
	http  *http.Client
	cache Cache
}

func NewClient(base string, cache Cache) *Client {
	return &Client{
		base:  base,
		http:  &http.Client{Timeout: 15 * time.Second},
		cache: cache,
	}
}

// Chapter returns the ordered verses of book/chapter in the given
// translation.
func (c *Client) Chapter(ctx context.Context, version, book string, chapter int) ([]models.Verse, error) {
	if !VersionSupported(version) {
		return nil, fmt.Errorf("unsupported version %q", version)
	}
	idx := BookIndex(book)
	if idx == 0 {
		return nil, fmt.Errorf("unknown book %q", book)
	}
	if chapter < 1 {
		return nil, fmt.Errorf("invalid chapter %d", chapter)
	}

	key := fmt.Sprintf("chapter:%s:%d:%d", version, idx, chapter)
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, key); err == nil {
			var verses []models.Verse
			if err := json.Unmarshal([]byte(cached), &verses); err == nil {
				return verses, nil
			}
		}
	}

	url := fmt.Sprintf("%s/get-text/%s/%d/%d/", c.base, version, idx, chapter)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build chapter request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch chapter: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch chapter: unexpected status %d", resp.StatusCode)
	}

	var verses []models.Verse
	if err := json.NewDecoder(resp.Body).Decode(&verses); err != nil {
		return nil, fmt.Errorf("decode chapter: %w", err)
	}

	if c.cache != nil {
		if payload, err := json.Marshal(verses); err == nil {
			if err := c.cache.Set(ctx, key, string(payload), cacheTTL); err != nil {
				logger.Warn("chapter cache write failed", "key", key, "error", err)
			}
		}
	}
	return verses, nil
}

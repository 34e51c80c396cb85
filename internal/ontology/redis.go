package ontology

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vvka-141/mztabm/internal/logging"
	"github.com/vvka-141/mztabm/pkg/mztab"
)

// DefaultCachePrefix namespaces cache keys in a shared Redis.
const DefaultCachePrefix = "mztabm:ontology:"

// RedisCache stores the children and ancestor listings of another lookup in
// Redis. Cache failures are logged and fall through to the wrapped lookup.
type RedisCache struct {
	next   mztab.TermLookup
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger mztab.Logger
}

type CacheOption func(*RedisCache)

func WithTTL(ttl time.Duration) CacheOption {
	return func(c *RedisCache) { c.ttl = ttl }
}

func WithPrefix(prefix string) CacheOption {
	return func(c *RedisCache) { c.prefix = prefix }
}

func WithCacheLogger(l mztab.Logger) CacheOption {
	return func(c *RedisCache) { c.logger = l }
}

// NewRedisCache decorates next with client.
func NewRedisCache(next mztab.TermLookup, client *redis.Client, opts ...CacheOption) *RedisCache {
	c := &RedisCache{
		next:   next,
		client: client,
		ttl:    mztab.DefaultCacheTTL,
		prefix: DefaultCachePrefix,
		logger: logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DialRedis opens a client for addr (host:port or a redis:// URL) and pings it.
func DialRedis(ctx context.Context, addr string) (*redis.Client, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{Addr: addr}
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return client, nil
}

func (c *RedisCache) ResolveChildren(ctx context.Context, term mztab.Term) ([]mztab.Term, error) {
	return c.cached(ctx, "children:"+term.Accession, func() ([]mztab.Term, error) {
		return c.next.ResolveChildren(ctx, term)
	})
}

func (c *RedisCache) ResolveParents(ctx context.Context, term mztab.Term, maxDepth int) ([]mztab.Term, error) {
	key := "parents:" + term.Accession + ":" + strconv.Itoa(maxDepth)
	return c.cached(ctx, key, func() ([]mztab.Term, error) {
		return c.next.ResolveParents(ctx, term, maxDepth)
	})
}

func (c *RedisCache) Compare(ctx context.Context, reference, candidate mztab.Term, maxDepth int) (mztab.Relation, error) {
	return Relate(ctx, c, reference, candidate, maxDepth)
}

// Invalidate drops every cached listing under the prefix.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *RedisCache) cached(ctx context.Context, key string, load func() ([]mztab.Term, error)) ([]mztab.Term, error) {
	key = c.prefix + key

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var terms []mztab.Term
		if jsonErr := json.Unmarshal(raw, &terms); jsonErr == nil {
			return terms, nil
		}
		c.logger.Verbose("discarding corrupt cache entry %s", key)
	case !errors.Is(err, redis.Nil):
		c.logger.Verbose("cache read %s failed: %v", key, err)
	}

	terms, err := load()
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(terms); err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.logger.Verbose("cache write %s failed: %v", key, err)
		}
	}
	return terms, nil
}

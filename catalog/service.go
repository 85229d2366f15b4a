// Package catalog is the read side of the product catalog: newest-first
// listings, category and tag filtering, and an optional Redis list cache.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/maisonthread/storefront/entity"
	"github.com/maisonthread/storefront/repository"
)

const cacheKeyPrefix = "catalog:"

// Cache is the slice of the Redis client the catalog uses. Get must return
// a non-nil error on a miss.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// categoryAliases maps storefront filter labels to the category value
// actually stored on products. Lookups happen on normalized tokens.
var categoryAliases = map[string]string{
	"hats & caps": "headwear",
}

type Service struct {
	products repository.ProductRepository
	cache    Cache
	cacheTTL time.Duration
}

// NewService builds the query layer. cache may be nil, in which case every
// listing goes straight to the repository.
func NewService(products repository.ProductRepository, cache Cache, cacheTTL time.Duration) *Service {
	return &Service{
		products: products,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// ListAll returns the full catalog, newest first.
func (s *Service) ListAll(ctx context.Context) ([]entity.Product, error) {
	return s.listCached(ctx, cacheKeyPrefix+"all", func(p entity.Product) bool {
		return true
	})
}

// ListByCategory filters case-insensitively on trimmed category names and
// resolves storefront aliases. Unknown categories yield an empty listing.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	target := normalize(category)
	if alias, ok := categoryAliases[target]; ok {
		target = alias
	}
	return s.listCached(ctx, cacheKeyPrefix+"category:"+target, func(p entity.Product) bool {
		return normalize(p.Category) == target
	})
}

// ListByTag filters on the promotional tag with the same normalization as
// categories but no alias table.
func (s *Service) ListByTag(ctx context.Context, tag string) ([]entity.Product, error) {
	target := normalize(tag)
	return s.listCached(ctx, cacheKeyPrefix+"tag:"+target, func(p entity.Product) bool {
		return normalize(p.Tag) == target
	})
}

// InvalidateCache drops every cached listing. Called after any catalog
// mutation; a no-op without a cache client.
func (s *Service) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.DeleteByPattern(ctx, cacheKeyPrefix+"*")
}

func (s *Service) listCached(ctx context.Context, key string, match func(entity.Product) bool) ([]entity.Product, error) {
	if s.cache != nil {
		var cached []entity.Product
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	all, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	// The repository enumerates in ascending creation order; prepending each
	// matching record yields the newest-first listing. Only the first record
	// per id is kept.
	products := make([]entity.Product, 0, len(all))
	seen := make(map[string]struct{}, len(all))
	for _, p := range all {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		if match(p) {
			products = append([]entity.Product{p}, products...)
		}
	}

	if s.cache != nil {
		// Best effort: a failed cache write never fails the listing.
		_ = s.cache.Set(ctx, key, products, s.cacheTTL)
	}
	return products, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/maisonthread/storefront/entity"
	"github.com/maisonthread/storefront/infra"
	"github.com/maisonthread/storefront/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Cache = (*infra.RedisClient)(nil)

// stubRepo serves a fixed slice in ascending creation order, the same
// contract the real repositories honor. getAllCalls counts repository reads
// so cache tests can tell a hit from a miss.
type stubRepo struct {
	products    []entity.Product
	err         error
	getAllCalls int
}

func (s *stubRepo) Insert(ctx context.Context, product *entity.Product) error { return nil }

func (s *stubRepo) GetAll(ctx context.Context) ([]entity.Product, error) {
	s.getAllCalls++
	return s.products, s.err
}

func (s *stubRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return nil, repository.ErrNotFound
}

func (s *stubRepo) Delete(ctx context.Context, id string) error { return nil }

func catalogProduct(id, name, category, tag string, offset time.Duration) entity.Product {
	return entity.Product{
		ID:        id,
		Name:      name,
		Category:  category,
		Tag:       tag,
		Price:     1500,
		CreatedAt: time.Unix(0, 0).Add(offset),
	}
}

func newTestService(products ...entity.Product) *Service {
	return NewService(&stubRepo{products: products}, nil, 0)
}

func TestListAllNewestFirst(t *testing.T) {
	svc := newTestService(
		catalogProduct("1", "A", "shirts", "", 0),
		catalogProduct("2", "B", "shirts", "", time.Second),
		catalogProduct("3", "C", "shirts", "", 2*time.Second),
	)

	products, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, "C", products[0].Name)
	assert.Equal(t, "B", products[1].Name)
	assert.Equal(t, "A", products[2].Name)
}

func TestListAllEmptyCatalog(t *testing.T) {
	svc := newTestService()

	products, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products, "an empty catalog serializes as [], not null")
	assert.Empty(t, products)
}

func TestListAllDropsDuplicateIDs(t *testing.T) {
	svc := newTestService(
		catalogProduct("1", "first", "shirts", "", 0),
		catalogProduct("1", "ghost", "shirts", "", time.Second),
		catalogProduct("2", "second", "shirts", "", 2*time.Second),
	)

	products, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "second", products[0].Name)
	assert.Equal(t, "first", products[1].Name)
}

func TestListByCategoryNormalizes(t *testing.T) {
	svc := newTestService(
		catalogProduct("1", "Tee", "TSHIRTS", "", 0),
		catalogProduct("2", "Beanie", "headwear", "", time.Second),
	)

	for _, query := range []string{"tshirts", "TSHIRTS", "  TShirts  "} {
		products, err := svc.ListByCategory(context.Background(), query)
		require.NoError(t, err, query)
		require.Len(t, products, 1, query)
		assert.Equal(t, "Tee", products[0].Name, query)
	}
}

func TestListByCategoryAlias(t *testing.T) {
	svc := newTestService(
		catalogProduct("1", "Beanie", "headwear", "", 0),
		catalogProduct("2", "Cap", "HEADWEAR", "", time.Second),
		catalogProduct("3", "Tee", "tshirts", "", 2*time.Second),
	)

	for _, query := range []string{"hats & caps", "Hats & Caps", " HATS & CAPS "} {
		products, err := svc.ListByCategory(context.Background(), query)
		require.NoError(t, err, query)
		require.Len(t, products, 2, query)
		assert.Equal(t, "Cap", products[0].Name, query)
		assert.Equal(t, "Beanie", products[1].Name, query)
	}
}

func TestListByCategoryUnknownIsEmpty(t *testing.T) {
	svc := newTestService(catalogProduct("1", "Tee", "tshirts", "", 0))

	products, err := svc.ListByCategory(context.Background(), "furniture")
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestListByTag(t *testing.T) {
	svc := newTestService(
		catalogProduct("1", "Tee", "tshirts", "NEW ARRIVAL", 0),
		catalogProduct("2", "Hoodie", "hoodies", "", time.Second),
		catalogProduct("3", "Cap", "headwear", "new arrival", 2*time.Second),
	)

	products, err := svc.ListByTag(context.Background(), "New Arrival")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Cap", products[0].Name)
	assert.Equal(t, "Tee", products[1].Name)
}

func TestListPropagatesRepositoryError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewService(&stubRepo{err: boom}, nil, 0)

	_, err := svc.ListAll(context.Background())
	assert.ErrorIs(t, err, boom)
}

// fakeCache stores marshalled listings in memory, mirroring the Redis
// client's JSON round-trip and glob-pattern delete.
type fakeCache struct {
	data   map[string][]byte
	setErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, ok := f.data[key]
	if !ok {
		return infra.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = data
	return nil
}

func (f *fakeCache) DeleteByPattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range f.data {
		if strings.HasPrefix(key, prefix) {
			delete(f.data, key)
		}
	}
	return nil
}

func TestListCacheHitSkipsRepository(t *testing.T) {
	repo := &stubRepo{products: []entity.Product{
		catalogProduct("1", "Tee", "tshirts", "", 0),
		catalogProduct("2", "Cap", "headwear", "", time.Second),
	}}
	cache := newFakeCache()
	svc := NewService(repo, cache, time.Minute)

	first, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 1, repo.getAllCalls)

	second, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.getAllCalls, "second listing must be served from cache")
}

func TestInvalidateCacheDropsCachedListings(t *testing.T) {
	repo := &stubRepo{products: []entity.Product{
		catalogProduct("1", "Cap", "headwear", "", 0),
	}}
	cache := newFakeCache()
	svc := NewService(repo, cache, time.Minute)

	_, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	_, err = svc.ListByCategory(context.Background(), "headwear")
	require.NoError(t, err)
	require.Equal(t, 2, repo.getAllCalls)
	require.Len(t, cache.data, 2)

	svc.InvalidateCache(context.Background())
	assert.Empty(t, cache.data)

	_, err = svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, repo.getAllCalls, "invalidated listing must hit the repository again")
}

func TestListCacheSetFailureDoesNotFailListing(t *testing.T) {
	repo := &stubRepo{products: []entity.Product{
		catalogProduct("1", "Tee", "tshirts", "", 0),
	}}
	cache := newFakeCache()
	cache.setErr = errors.New("redis down")
	svc := NewService(repo, cache, time.Minute)

	products, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Empty(t, cache.data)
}

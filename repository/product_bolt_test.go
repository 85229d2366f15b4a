package repository

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/maisonthread/storefront/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func newBoltRepo(t *testing.T) *ProductBoltRepository {
	t.Helper()
	db, err := bolt.Open(filepath.Join(t.TempDir(), "test.db"), 0o600, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := NewProductBoltRepository(db)
	require.NoError(t, err)
	return repo
}

func testProduct(id string, createdAt time.Time) *entity.Product {
	return &entity.Product{
		ID:        id,
		Name:      "Product " + id,
		Price:     999,
		Category:  "shirts",
		Tag:       "NEW ARRIVAL",
		ImagePath: "/images/" + id + ".png",
		CreatedAt: createdAt,
	}
}

func TestBoltInsertAndGetByID(t *testing.T) {
	repo := newBoltRepo(t)
	ctx := context.Background()

	want := testProduct("100", time.Now().UTC().Truncate(time.Millisecond))
	require.NoError(t, repo.Insert(ctx, want))

	got, err := repo.GetByID(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.ImagePath, got.ImagePath)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
}

func TestBoltInsertDuplicateIDConflicts(t *testing.T) {
	repo := newBoltRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testProduct("42", time.Now())))
	err := repo.Insert(ctx, testProduct("42", time.Now()))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestBoltGetByIDNotFound(t *testing.T) {
	repo := newBoltRepo(t)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoltGetAllAscendingByCreation(t *testing.T) {
	repo := newBoltRepo(t)
	ctx := context.Background()
	base := time.Now().UTC()

	// Insert out of creation order; ids chosen so byte order of keys would
	// disagree with creation order.
	require.NoError(t, repo.Insert(ctx, testProduct("9", base.Add(2*time.Second))))
	require.NoError(t, repo.Insert(ctx, testProduct("100", base)))
	require.NoError(t, repo.Insert(ctx, testProduct("50", base.Add(time.Second))))

	products, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)

	var ids []string
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"100", "50", "9"}, ids)
}

func TestBoltDelete(t *testing.T) {
	repo := newBoltRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testProduct("7", time.Now())))
	require.NoError(t, repo.Delete(ctx, "7"))

	_, err := repo.GetByID(ctx, "7")
	assert.ErrorIs(t, err, ErrNotFound)

	// Second delete surfaces NotFound so handlers can short-circuit.
	assert.ErrorIs(t, repo.Delete(ctx, "7"), ErrNotFound)
}

func TestBoltGetAllEmpty(t *testing.T) {
	repo := newBoltRepo(t)

	products, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestBoltMillisecondIDs(t *testing.T) {
	repo := newBoltRepo(t)
	ctx := context.Background()

	now := time.Now()
	id := strconv.FormatInt(now.UnixMilli(), 10)
	require.NoError(t, repo.Insert(ctx, testProduct(id, now)))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
}

package repository

import (
	"context"
	"errors"

	"github.com/maisonthread/storefront/entity"
	"github.com/maisonthread/storefront/infra"
)

var (
	// ErrNotFound is returned by point lookups and deletes on an absent id.
	ErrNotFound = errors.New("product not found")
	// ErrConflict is returned by Insert when the id already exists. Ids are
	// wall-clock milliseconds, so this is only reachable by two uploads
	// landing in the same millisecond.
	ErrConflict = errors.New("product id already exists")
)

// ProductRepository is the single-record catalog store. GetAll enumerates in
// ascending created_at order; the read side prepends to get newest-first.
type ProductRepository interface {
	Insert(ctx context.Context, product *entity.Product) error
	GetAll(ctx context.Context) ([]entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
}

type Repository struct {
	Products ProductRepository
}

func InitRepository(infra *infra.Infra) (*Repository, error) {
	var products ProductRepository
	var err error

	switch {
	case infra.Postgres != nil:
		products, err = NewProductGormRepository(infra.Postgres.DB)
	case infra.Bolt != nil:
		products, err = NewProductBoltRepository(infra.Bolt.DB)
	default:
		err = errors.New("no database client initialized")
	}
	if err != nil {
		return nil, err
	}

	return &Repository{Products: products}, nil
}

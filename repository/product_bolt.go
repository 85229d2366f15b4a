package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/maisonthread/storefront/entity"
	bolt "go.etcd.io/bbolt"
)

var productBucket = []byte("products")

// ProductBoltRepository backs the catalog with an embedded bbolt file,
// one JSON value per product keyed by id. It is the standalone-mode store
// and needs no external database.
type ProductBoltRepository struct {
	db *bolt.DB
}

func NewProductBoltRepository(db *bolt.DB) (*ProductBoltRepository, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(productBucket)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create products bucket: %w", err)
	}
	return &ProductBoltRepository{db: db}, nil
}

func (r *ProductBoltRepository) Insert(ctx context.Context, product *entity.Product) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(productBucket)
		if b.Get([]byte(product.ID)) != nil {
			return ErrConflict
		}
		data, err := json.Marshal(product)
		if err != nil {
			return err
		}
		return b.Put([]byte(product.ID), data)
	})
}

func (r *ProductBoltRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(productBucket).ForEach(func(_, v []byte) error {
			var product entity.Product
			if err := json.Unmarshal(v, &product); err != nil {
				return err
			}
			products = append(products, product)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	// Keys iterate in byte order; reorder by creation time to keep the
	// ascending contract independent of id formatting.
	sort.Slice(products, func(i, j int) bool {
		if products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].ID < products[j].ID
		}
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})
	return products, nil
}

func (r *ProductBoltRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(productBucket).Get([]byte(id))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &product)
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductBoltRepository) Delete(ctx context.Context, id string) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(productBucket)
		if b.Get([]byte(id)) == nil {
			return ErrNotFound
		}
		return b.Delete([]byte(id))
	})
}

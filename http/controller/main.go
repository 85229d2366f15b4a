package controller

import (
	"time"

	"github.com/maisonthread/storefront/catalog"
	"github.com/maisonthread/storefront/config"
	"github.com/maisonthread/storefront/infra"
	"github.com/maisonthread/storefront/repository"
	"github.com/maisonthread/storefront/storage"
)

type Controller struct {
	Config     *config.Config
	Infra      *infra.Infra
	Repository *repository.Repository
	Store      storage.Store
	Catalog    *catalog.Service
}

func NewController(config *config.Config, infra *infra.Infra, repo *repository.Repository, store storage.Store) *Controller {
	if repo == nil {
		panic("Failed to initialize Repository")
	}
	if store == nil {
		panic("Failed to initialize image store")
	}

	cacheTTL := time.Duration(config.EnvConfig.Redis.CacheTTL) * time.Second

	// A nil *RedisClient must stay a nil Cache, not a typed-nil interface.
	var cache catalog.Cache
	if infra.Redis != nil {
		cache = infra.Redis
	}

	return &Controller{
		Config:     config,
		Infra:      infra,
		Repository: repo,
		Store:      store,
		Catalog:    catalog.NewService(repo.Products, cache, cacheTTL),
	}
}

package controller

import (
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maisonthread/storefront/entity"
	"github.com/maisonthread/storefront/http/controller/dto"
	"github.com/maisonthread/storefront/infra/produce"
	"github.com/maisonthread/storefront/repository"
	"github.com/maisonthread/storefront/storage"
	"github.com/maisonthread/storefront/utils"
)

// UploadProduct accepts one multipart request with a single image file plus
// the product fields, writes the blob before the record so the record never
// references a missing image, and returns the created product.
func (ctrl *Controller) UploadProduct(c *gin.Context) {
	ctx := c.Request.Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Product] Upload rejected: no file field")
		utils.JSON400(c, "No file uploaded")
		return
	}

	var form dto.UploadProductForm
	if err := c.ShouldBind(&form); err != nil {
		utils.JSON400(c, "Invalid form data: "+err.Error())
		return
	}

	if form.Name == "" {
		utils.JSON400(c, "Product name is required")
		return
	}

	price, err := strconv.ParseInt(form.Price, 10, 64)
	if err != nil || price < 0 {
		utils.JSON400(c, "Price must be a non-negative integer")
		return
	}

	// Reject oversized uploads before buffering the body.
	if fileHeader.Size > storage.MaxImageBytes {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Product] Upload rejected: file %s is %d bytes", fileHeader.Filename, fileHeader.Size)
		utils.JSON413(c, "File too large. Maximum size is 500KB")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.JSON500(c, "Failed to read uploaded file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.JSON500(c, "Failed to read uploaded file", err)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")

	imagePath, err := ctrl.Store.Put(ctx, data, contentType, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrImageTooLarge):
			utils.JSON413(c, "File too large. Maximum size is 500KB")
		case errors.Is(err, storage.ErrUnsupportedImageType):
			utils.JSON400(c, "Only image files (JPEG, PNG, WebP, GIF) are allowed")
		default:
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Product] Failed to store image %s", fileHeader.Filename)
			utils.JSON500(c, "Failed to upload product", err)
		}
		return
	}

	now := time.Now()
	product := &entity.Product{
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		Name:        form.Name,
		Price:       price,
		Category:    form.Category,
		Tag:         form.Tag,
		Description: form.Description,
		ImagePath:   imagePath,
		CreatedAt:   now.UTC(),
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Product] Uploading product %q (%d bytes image) as id %s", product.Name, len(data), product.ID)

	if err := ctrl.Repository.Products.Insert(ctx, product); err != nil {
		// The blob was written first; drop it so a failed insert leaves
		// nothing behind.
		_ = ctrl.Store.Delete(ctx, imagePath)
		if errors.Is(err, repository.ErrConflict) {
			utils.JSON409(c, "A product with this id already exists, retry the upload")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Product] Failed to insert product %s", product.ID)
		utils.JSON500(c, "Failed to upload product", err)
		return
	}

	ctrl.Catalog.InvalidateCache(ctx)
	ctrl.publishEvent(c, func(svc *produce.CatalogEventService) error {
		return svc.PublishProductCreated(ctx, product)
	})

	utils.JSON200(c, dto.UploadProductResponse{
		Success: true,
		Message: "Product uploaded successfully",
		Product: product,
	})
}

// DeleteProduct removes the record first and the image second: a crash in
// between leaves a harmless orphaned blob rather than a record pointing at a
// missing image.
func (ctrl *Controller) DeleteProduct(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	product, err := ctrl.Repository.Products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.JSON404(c, "Product not found")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Product] Failed to look up product %s", id)
		utils.JSON500(c, "Failed to delete product", err)
		return
	}

	if err := ctrl.Repository.Products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.JSON404(c, "Product not found")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Product] Failed to delete product %s", id)
		utils.JSON500(c, "Failed to delete product", err)
		return
	}

	// Best effort: the record is already gone, an image-removal failure
	// must not fail the request.
	if err := ctrl.Store.Delete(ctx, product.ImagePath); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Product] Orphaned image %s after deleting product %s: %v", product.ImagePath, id, err)
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Product] Deleted product %s and image %s", id, product.ImagePath)

	ctrl.Catalog.InvalidateCache(ctx)
	ctrl.publishEvent(c, func(svc *produce.CatalogEventService) error {
		return svc.PublishProductDeleted(ctx, id, product.ImagePath)
	})

	utils.JSON200(c, dto.DeleteProductResponse{
		Success:          true,
		Message:          "Product and image deleted successfully",
		DeletedProductID: id,
	})
}

// ListProducts returns the catalog newest-first, optionally filtered by the
// tag query parameter.
func (ctrl *Controller) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()

	var products []entity.Product
	var err error
	if tag := c.Query("tag"); tag != "" {
		products, err = ctrl.Catalog.ListByTag(ctx, tag)
	} else {
		products, err = ctrl.Catalog.ListAll(ctx)
	}
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Product] Failed to list products")
		utils.JSON500(c, "Failed to fetch products", err)
		return
	}

	utils.JSON200(c, products)
}

func (ctrl *Controller) ListProductsByCategory(c *gin.Context) {
	ctx := c.Request.Context()

	products, err := ctrl.Catalog.ListByCategory(ctx, c.Param("category"))
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Product] Failed to list products by category")
		utils.JSON500(c, "Failed to fetch products", err)
		return
	}

	utils.JSON200(c, products)
}

// publishEvent emits a catalog event when the producer is configured.
// Publishing is advisory and never fails the request.
func (ctrl *Controller) publishEvent(c *gin.Context, publish func(*produce.CatalogEventService) error) {
	if ctrl.Infra.Produce == nil {
		return
	}
	if err := publish(ctrl.Infra.Produce.CatalogService); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(c.Request.Context(), "[Product] Failed to publish catalog event: %v", err)
	}
}

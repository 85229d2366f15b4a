package dto

import "github.com/maisonthread/storefront/entity"

// UploadProductForm carries the multipart fields of an upload request.
// Price stays a string here; the handler parses and validates it.
type UploadProductForm struct {
	Name        string `form:"name"`
	Price       string `form:"price"`
	Category    string `form:"category"`
	Tag         string `form:"tag"`
	Description string `form:"description"`
}

type UploadProductResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Product *entity.Product `json:"product"`
}

type DeleteProductResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	DeletedProductID string `json:"deletedProductId"`
}

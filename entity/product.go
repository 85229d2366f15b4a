package entity

import "time"

// Product is a catalog entry. The id is assigned from the creation timestamp
// in milliseconds and never changes; image_path points at the blob owned by
// this record for its whole lifetime.
type Product struct {
	ID          string    `json:"id" gorm:"type:varchar(32);primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Price       int64     `json:"price" gorm:"not null"`
	Category    string    `json:"category" gorm:"type:varchar(64);index"`
	Tag         string    `json:"tag" gorm:"type:varchar(64)"`
	Description string    `json:"description" gorm:"type:text"`
	ImagePath   string    `json:"image_path" gorm:"type:varchar(512);not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;index"`
}

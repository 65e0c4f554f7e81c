package model

import "time"

type ListingImage struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	ListingID uint64    `gorm:"column:listing_id;not null;index:idx_listing_images_listing_id" json:"-"`
	ImageURL  string    `gorm:"column:image_url;size:512;not null" json:"imageUrl"`
	Position  int       `gorm:"column:position;not null;default:0" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (ListingImage) TableName() string {
	return "listing_images"
}

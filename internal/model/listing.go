package model

import "time"

type ListingStatus string

const (
	StatusPending  ListingStatus = "pending"
	StatusActive   ListingStatus = "active"
	StatusRejected ListingStatus = "rejected"
	StatusSold     ListingStatus = "sold"
)

type Condition string

const (
	ConditionNew  Condition = "new"
	ConditionUsed Condition = "used"
)

type Listing struct {
	ID              uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerUID        string         `gorm:"column:owner_uid;size:128;index;not null" json:"ownerUid"`
	OwnerName       string         `gorm:"column:owner_name;size:120" json:"ownerName"`
	Title           string         `gorm:"size:120;not null" json:"title"`
	Description     string         `gorm:"type:text;not null" json:"description"`
	Price           uint           `gorm:"not null" json:"price"`
	Category        string         `gorm:"size:64;not null;index" json:"category"`
	Subcategory     string         `gorm:"size:64" json:"subcategory"`
	City            string         `gorm:"size:120;not null;index" json:"city"`
	Condition       Condition      `gorm:"size:16;not null" json:"condition"`
	ContactInfo     string         `gorm:"size:255" json:"contactInfo"`
	Status          ListingStatus  `gorm:"size:16;not null;index;default:pending" json:"status"`
	RejectionReason *string        `gorm:"size:512" json:"rejectionReason,omitempty"`
	Images          []ListingImage `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"images"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Listing) TableName() string {
	return "listings"
}

// ImageURLs flattens the image rows in position order for API responses.
func (l *Listing) ImageURLs() []string {
	urls := make([]string, 0, len(l.Images))
	for _, img := range l.Images {
		urls = append(urls, img.ImageURL)
	}
	return urls
}

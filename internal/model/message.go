package model

import "time"

type Message struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ListingID   uint64    `gorm:"column:listing_id;index;not null" json:"listingId"`
	SenderUID   string    `gorm:"column:sender_uid;size:128;index;not null" json:"senderUid"`
	ReceiverUID string    `gorm:"column:receiver_uid;size:128;index;not null" json:"receiverUid"`
	SenderName  string    `gorm:"column:sender_name;size:120" json:"senderName"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	Read        bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Message) TableName() string {
	return "messages"
}

package repository

import (
	"context"

	"github.com/scrazdxvf/baraholka-backend/internal/model"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	FindByListingAndUser(ctx context.Context, listingID uint64, uid string) ([]model.Message, error)
	ListingIDsForUser(ctx context.Context, uid string) ([]uint64, error)
	CountUnread(ctx context.Context, uid string) (int64, error)
	MarkThreadRead(ctx context.Context, listingID uint64, readerUID string) error
	SetDB(db *gorm.DB)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *messageRepository) Create(ctx context.Context, msg *model.Message) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *messageRepository) FindByListingAndUser(ctx context.Context, listingID uint64, uid string) ([]model.Message, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var msgs []model.Message
	if err := r.db.WithContext(ctx).
		Where("listing_id = ? AND (sender_uid = ? OR receiver_uid = ?)", listingID, uid, uid).
		Order("id ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *messageRepository) ListingIDsForUser(ctx context.Context, uid string) ([]uint64, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var ids []uint64
	if err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("sender_uid = ? OR receiver_uid = ?", uid, uid).
		Distinct("listing_id").
		Order("listing_id DESC").
		Pluck("listing_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *messageRepository) CountUnread(ctx context.Context, uid string) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("receiver_uid = ? AND `read` = ?", uid, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MarkThreadRead flips every message addressed to readerUID within one
// listing's thread. There is no inverse operation.
func (r *messageRepository) MarkThreadRead(ctx context.Context, listingID uint64, readerUID string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("listing_id = ? AND receiver_uid = ? AND `read` = ?", listingID, readerUID, false).
		Update("read", true).Error
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/scrazdxvf/baraholka-backend/internal/model"
	"github.com/scrazdxvf/baraholka-backend/internal/repository"
	"gorm.io/gorm"
)

type ChatService interface {
	Send(ctx context.Context, listingID uint64, senderUID, senderName, receiverUID, text string) (*model.Message, error)
	Thread(ctx context.Context, listingID uint64, uid string) ([]model.Message, error)
	ChatsFor(ctx context.Context, uid string) ([]uint64, error)
	UnreadCount(ctx context.Context, uid string) (int64, error)
	MarkThreadRead(ctx context.Context, listingID uint64, readerUID string) error
}

type chatService struct {
	msgRepo     repository.MessageRepository
	listingRepo repository.ListingRepository
}

func NewChatService(msgRepo repository.MessageRepository, listingRepo repository.ListingRepository) ChatService {
	return &chatService{msgRepo: msgRepo, listingRepo: listingRepo}
}

// Send appends a message to a listing's thread. When the sender is not the
// listing owner the receiver defaults to the owner, so buyers never have to
// name the counterparty explicitly.
func (s *chatService) Send(ctx context.Context, listingID uint64, senderUID, senderName, receiverUID, text string) (*model.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message text is required", ErrInvalidArgument)
	}
	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if receiverUID == "" && senderUID != listing.OwnerUID {
		receiverUID = listing.OwnerUID
	}
	if receiverUID == "" {
		return nil, fmt.Errorf("%w: receiver is required", ErrInvalidArgument)
	}
	if senderUID == receiverUID {
		return nil, fmt.Errorf("%w: cannot message yourself", ErrInvalidArgument)
	}
	msg := &model.Message{
		ListingID:   listingID,
		SenderUID:   senderUID,
		ReceiverUID: receiverUID,
		SenderName:  senderName,
		Body:        text,
	}
	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *chatService) Thread(ctx context.Context, listingID uint64, uid string) ([]model.Message, error) {
	return s.msgRepo.FindByListingAndUser(ctx, listingID, uid)
}

func (s *chatService) ChatsFor(ctx context.Context, uid string) ([]uint64, error) {
	return s.msgRepo.ListingIDsForUser(ctx, uid)
}

func (s *chatService) UnreadCount(ctx context.Context, uid string) (int64, error) {
	return s.msgRepo.CountUnread(ctx, uid)
}

func (s *chatService) MarkThreadRead(ctx context.Context, listingID uint64, readerUID string) error {
	return s.msgRepo.MarkThreadRead(ctx, listingID, readerUID)
}

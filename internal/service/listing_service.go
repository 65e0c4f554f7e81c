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

// ListingInput carries the owner-editable fields of a listing. Submit and
// Edit validate the same structural rules; there are no cross-field checks.
type ListingInput struct {
	Title       string
	Description string
	Price       uint
	Category    string
	Subcategory string
	City        string
	Condition   model.Condition
	ContactInfo string
	Images      []string
}

type ListingService interface {
	Submit(ctx context.Context, ownerUID, ownerName string, in ListingInput) (*model.Listing, error)
	Edit(ctx context.Context, id uint64, actorUID string, in ListingInput) (*model.Listing, error)
	Approve(ctx context.Context, id uint64) (*model.Listing, error)
	Reject(ctx context.Context, id uint64, reason string) (*model.Listing, error)
	MarkSold(ctx context.Context, id uint64, actorUID string) (*model.Listing, error)
	Remove(ctx context.Context, id uint64, actorUID string, isModerator bool) error
	Get(ctx context.Context, id uint64) (*model.Listing, error)
	ListByOwner(ctx context.Context, ownerUID string) ([]model.Listing, error)
	ListByStatus(ctx context.Context, status model.ListingStatus) ([]model.Listing, error)
	ActiveListings(ctx context.Context) ([]model.Listing, error)
}

type listingService struct {
	repo     repository.ListingRepository
	notifier NotificationService
}

func NewListingService(repo repository.ListingRepository, notifier NotificationService) ListingService {
	return &listingService{repo: repo, notifier: notifier}
}

func (in *ListingInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Subcategory = strings.TrimSpace(in.Subcategory)
	in.City = strings.TrimSpace(in.City)
	in.ContactInfo = strings.TrimSpace(in.ContactInfo)
	images := in.Images[:0]
	for _, img := range in.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	in.Images = images
}

func (in *ListingInput) validate() error {
	if in.Title == "" || len(in.Title) > 120 {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.Description == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if in.Price == 0 {
		return fmt.Errorf("%w: price must be greater than zero", ErrValidation)
	}
	if in.Category == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	if in.City == "" {
		return fmt.Errorf("%w: city is required", ErrValidation)
	}
	if in.Condition != model.ConditionNew && in.Condition != model.ConditionUsed {
		return fmt.Errorf("%w: condition must be new or used", ErrValidation)
	}
	if len(in.Images) == 0 {
		return fmt.Errorf("%w: at least one image is required", ErrValidation)
	}
	if in.ContactInfo == "" {
		return fmt.Errorf("%w: contact info is required", ErrValidation)
	}
	return nil
}

func imageRows(urls []string) []model.ListingImage {
	rows := make([]model.ListingImage, 0, len(urls))
	for i, u := range urls {
		rows = append(rows, model.ListingImage{ImageURL: u, Position: i})
	}
	return rows
}

func (s *listingService) Submit(ctx context.Context, ownerUID, ownerName string, in ListingInput) (*model.Listing, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	listing := &model.Listing{
		OwnerUID:    ownerUID,
		OwnerName:   ownerName,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Subcategory: in.Subcategory,
		City:        in.City,
		Condition:   in.Condition,
		ContactInfo: in.ContactInfo,
		Status:      model.StatusPending,
		Images:      imageRows(in.Images),
	}
	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// Edit replaces the owner-editable fields and sends the listing back through
// moderation: whatever the prior status was, the result is Pending with no
// rejection reason. Sold listings cannot be edited.
func (s *listingService) Edit(ctx context.Context, id uint64, actorUID string, in ListingInput) (*model.Listing, error) {
	listing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.OwnerUID != actorUID {
		return nil, fmt.Errorf("%w: only the owner can edit a listing", ErrForbidden)
	}
	if listing.Status == model.StatusSold {
		return nil, fmt.Errorf("%w: sold listings cannot be edited", ErrInvalidState)
	}
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	listing.Title = in.Title
	listing.Description = in.Description
	listing.Price = in.Price
	listing.Category = in.Category
	listing.Subcategory = in.Subcategory
	listing.City = in.City
	listing.Condition = in.Condition
	listing.ContactInfo = in.ContactInfo
	listing.Status = model.StatusPending
	listing.RejectionReason = nil
	if err := s.repo.Update(ctx, listing, imageRows(in.Images)); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *listingService) Approve(ctx context.Context, id uint64) (*model.Listing, error) {
	listing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.Status != model.StatusPending {
		return nil, fmt.Errorf("%w: only pending listings can be approved", ErrInvalidState)
	}
	if err := s.repo.UpdateStatus(ctx, id, model.StatusActive, nil); err != nil {
		return nil, err
	}
	listing.Status = model.StatusActive
	listing.RejectionReason = nil
	if s.notifier != nil {
		s.notifier.Notify(ctx, listing.OwnerUID, model.NotificationListingApproved,
			"Объявление одобрено", fmt.Sprintf("«%s» прошло модерацию и опубликовано.", listing.Title), &listing.ID)
	}
	return listing, nil
}

func (s *listingService) Reject(ctx context.Context, id uint64, reason string) (*model.Listing, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrInvalidArgument)
	}
	listing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.Status != model.StatusPending {
		return nil, fmt.Errorf("%w: only pending listings can be rejected", ErrInvalidState)
	}
	if err := s.repo.UpdateStatus(ctx, id, model.StatusRejected, &reason); err != nil {
		return nil, err
	}
	listing.Status = model.StatusRejected
	listing.RejectionReason = &reason
	if s.notifier != nil {
		s.notifier.Notify(ctx, listing.OwnerUID, model.NotificationListingRejected,
			"Объявление отклонено", reason, &listing.ID)
	}
	return listing, nil
}

func (s *listingService) MarkSold(ctx context.Context, id uint64, actorUID string) (*model.Listing, error) {
	listing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.OwnerUID != actorUID {
		return nil, fmt.Errorf("%w: only the owner can mark a listing sold", ErrForbidden)
	}
	if listing.Status != model.StatusActive {
		return nil, fmt.Errorf("%w: only active listings can be marked sold", ErrInvalidState)
	}
	if err := s.repo.UpdateStatus(ctx, id, model.StatusSold, nil); err != nil {
		return nil, err
	}
	listing.Status = model.StatusSold
	return listing, nil
}

// Remove deletes unconditionally regardless of status; moderators may remove
// any listing, owners only their own.
func (s *listingService) Remove(ctx context.Context, id uint64, actorUID string, isModerator bool) error {
	listing, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !isModerator && listing.OwnerUID != actorUID {
		return fmt.Errorf("%w: only the owner or a moderator can remove a listing", ErrForbidden)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *listingService) Get(ctx context.Context, id uint64) (*model.Listing, error) {
	return s.find(ctx, id)
}

func (s *listingService) ListByOwner(ctx context.Context, ownerUID string) ([]model.Listing, error) {
	return s.repo.FindByOwner(ctx, ownerUID)
}

func (s *listingService) ListByStatus(ctx context.Context, status model.ListingStatus) ([]model.Listing, error) {
	switch status {
	case model.StatusPending, model.StatusActive, model.StatusRejected, model.StatusSold:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, status)
	}
	return s.repo.FindByStatus(ctx, status)
}

func (s *listingService) ActiveListings(ctx context.Context) ([]model.Listing, error) {
	return s.repo.FindByStatus(ctx, model.StatusActive)
}

func (s *listingService) find(ctx context.Context, id uint64) (*model.Listing, error) {
	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return listing, nil
}

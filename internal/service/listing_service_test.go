package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/scrazdxvf/baraholka-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeListingRepo struct {
	mu       sync.Mutex
	nextID   uint64
	listings map[uint64]model.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[uint64]model.Listing)}
}

func (r *fakeListingRepo) Create(ctx context.Context, listing *model.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	listing.ID = r.nextID
	listing.CreatedAt = time.Unix(int64(1700000000+r.nextID), 0)
	for i := range listing.Images {
		listing.Images[i].ListingID = listing.ID
	}
	r.listings[listing.ID] = *listing
	return nil
}

func (r *fakeListingRepo) FindByID(ctx context.Context, id uint64) (*model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &l, nil
}

func (r *fakeListingRepo) FindByStatus(ctx context.Context, status model.ListingStatus) ([]model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Listing
	for _, l := range r.listings {
		if l.Status == status {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeListingRepo) FindByOwner(ctx context.Context, ownerUID string) ([]model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Listing
	for _, l := range r.listings {
		if l.OwnerUID == ownerUID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeListingRepo) Update(ctx context.Context, listing *model.Listing, images []model.ListingImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[listing.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if images != nil {
		for i := range images {
			images[i].ListingID = listing.ID
			images[i].Position = i
		}
		listing.Images = images
	}
	r.listings[listing.ID] = *listing
	return nil
}

func (r *fakeListingRepo) UpdateStatus(ctx context.Context, id uint64, status model.ListingStatus, rejectionReason *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	l.Status = status
	l.RejectionReason = rejectionReason
	r.listings[id] = l
	return nil
}

func (r *fakeListingRepo) Delete(ctx context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.listings, id)
	return nil
}

func (r *fakeListingRepo) SetDB(db *gorm.DB) {}

type notice struct {
	userUID string
	typ     string
	body    string
}

type fakeNotifier struct {
	mu      sync.Mutex
	notices []notice
}

func (n *fakeNotifier) Notify(ctx context.Context, userUID, typ, title, body string, listingID *uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice{userUID: userUID, typ: typ, body: body})
}

func (n *fakeNotifier) List(ctx context.Context, userUID string, unreadOnly bool, limit int) ([]model.Notification, int64, error) {
	return nil, 0, nil
}

func (n *fakeNotifier) MarkAllRead(ctx context.Context, userUID string) error { return nil }

func validInput() ListingInput {
	return ListingInput{
		Title:       "Кроссовки Nike Air",
		Description: "Почти новые, размер 42",
		Price:       1000,
		Category:    "clothing",
		Subcategory: "shoes",
		City:        "Киев",
		Condition:   model.ConditionNew,
		ContactInfo: "@seller",
		Images:      []string{"https://example.com/1.jpg"},
	}
}

func newTestService(t *testing.T) (ListingService, *fakeListingRepo, *fakeNotifier) {
	t.Helper()
	repo := newFakeListingRepo()
	notifier := &fakeNotifier{}
	return NewListingService(repo, notifier), repo, notifier
}

func submitListing(t *testing.T, svc ListingService, owner string) *model.Listing {
	t.Helper()
	l, err := svc.Submit(context.Background(), owner, "Owner", validInput())
	require.NoError(t, err)
	return l
}

func TestSubmitCreatesPending(t *testing.T) {
	svc, _, _ := newTestService(t)
	l := submitListing(t, svc, "o1")
	assert.Equal(t, model.StatusPending, l.Status)
	assert.Nil(t, l.RejectionReason)
	assert.Equal(t, "o1", l.OwnerUID)
	assert.NotZero(t, l.ID)
}

func TestSubmitValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	tests := []struct {
		name string
		mut  func(*ListingInput)
	}{
		{"missing title", func(in *ListingInput) { in.Title = "  " }},
		{"missing description", func(in *ListingInput) { in.Description = "" }},
		{"zero price", func(in *ListingInput) { in.Price = 0 }},
		{"missing category", func(in *ListingInput) { in.Category = "" }},
		{"missing city", func(in *ListingInput) { in.City = "" }},
		{"bad condition", func(in *ListingInput) { in.Condition = "refurbished" }},
		{"no images", func(in *ListingInput) { in.Images = []string{" ", ""} }},
		{"missing contact info", func(in *ListingInput) { in.ContactInfo = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mut(&in)
			_, err := svc.Submit(ctx, "o1", "Owner", in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestApproveLifecycle(t *testing.T) {
	svc, _, notifier := newTestService(t)
	ctx := context.Background()
	l := submitListing(t, svc, "o1")

	approved, err := svc.Approve(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, approved.Status)
	assert.Nil(t, approved.RejectionReason)

	// Re-approving an already-active listing re-signals, never silently
	// succeeds twice.
	_, err = svc.Approve(ctx, l.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	require.Len(t, notifier.notices, 1)
	assert.Equal(t, "o1", notifier.notices[0].userUID)
	assert.Equal(t, model.NotificationListingApproved, notifier.notices[0].typ)
}

func TestRejectLifecycle(t *testing.T) {
	svc, repo, notifier := newTestService(t)
	ctx := context.Background()
	l := submitListing(t, svc, "o1")

	_, err := svc.Reject(ctx, l.ID, "   ")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	stored, _ := repo.FindByID(ctx, l.ID)
	assert.Equal(t, model.StatusPending, stored.Status, "failed reject must not change state")

	rejected, err := svc.Reject(ctx, l.ID, "спам")
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "спам", *rejected.RejectionReason)

	_, err = svc.Reject(ctx, l.ID, "снова")
	assert.ErrorIs(t, err, ErrInvalidState)

	require.Len(t, notifier.notices, 1)
	assert.Equal(t, model.NotificationListingRejected, notifier.notices[0].typ)
	assert.Equal(t, "спам", notifier.notices[0].body)
}

func TestRejectionReasonIffRejected(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()
	l := submitListing(t, svc, "o1")

	_, err := svc.Reject(ctx, l.ID, "плохие фото")
	require.NoError(t, err)
	stored, _ := repo.FindByID(ctx, l.ID)
	require.NotNil(t, stored.RejectionReason)

	// Owner edit re-submits for moderation and clears the reason.
	in := validInput()
	in.Title = "Кроссовки Nike Air, торг"
	edited, err := svc.Edit(ctx, l.ID, "o1", in)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, edited.Status)
	assert.Nil(t, edited.RejectionReason)

	_, err = svc.Approve(ctx, l.ID)
	require.NoError(t, err)
	stored, _ = repo.FindByID(ctx, l.ID)
	assert.Nil(t, stored.RejectionReason)
}

func TestEditResetsActiveToPending(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	l := submitListing(t, svc, "o1")
	_, err := svc.Approve(ctx, l.ID)
	require.NoError(t, err)

	edited, err := svc.Edit(ctx, l.ID, "o1", validInput())
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, edited.Status, "editing an active listing requires re-moderation")
}

func TestEditAuthorizationAndState(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	l := submitListing(t, svc, "o1")

	_, err := svc.Edit(ctx, l.ID, "someone-else", validInput())
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Approve(ctx, l.ID)
	require.NoError(t, err)
	_, err = svc.MarkSold(ctx, l.ID, "o1")
	require.NoError(t, err)

	_, err = svc.Edit(ctx, l.ID, "o1", validInput())
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.Edit(ctx, 999, "o1", validInput())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkSold(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	l := submitListing(t, svc, "o1")

	_, err := svc.MarkSold(ctx, l.ID, "o1")
	assert.ErrorIs(t, err, ErrInvalidState, "pending listing cannot be sold")

	_, err = svc.Approve(ctx, l.ID)
	require.NoError(t, err)

	_, err = svc.MarkSold(ctx, l.ID, "buyer")
	assert.ErrorIs(t, err, ErrForbidden)

	sold, err := svc.MarkSold(ctx, l.ID, "o1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusSold, sold.Status)

	_, err = svc.MarkSold(ctx, l.ID, "o1")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSoldListingLeavesActiveSet(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	l := submitListing(t, svc, "o1")
	_, err := svc.Approve(ctx, l.ID)
	require.NoError(t, err)

	active, err := svc.ActiveListings(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)

	_, err = svc.MarkSold(ctx, l.ID, "o1")
	require.NoError(t, err)

	active, err = svc.ActiveListings(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestRemove(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	l := submitListing(t, svc, "o1")
	err := svc.Remove(ctx, l.ID, "someone-else", false)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Remove(ctx, l.ID, "o1", false))
	_, err = svc.Get(ctx, l.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Moderators can remove regardless of ownership or status.
	l2 := submitListing(t, svc, "o1")
	_, err = svc.Approve(ctx, l2.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, l2.ID, "moderator", true))

	err = svc.Remove(ctx, 999, "o1", true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByStatusRejectsUnknown(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.ListByStatus(context.Background(), "archived")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

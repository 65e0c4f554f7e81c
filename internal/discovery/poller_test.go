package discovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/scrazdxvf/baraholka-backend/internal/model"
)

func TestPollerSnapshotBeforeFirstFetch(t *testing.T) {
	p := NewPoller(func(ctx context.Context) ([]model.Listing, error) {
		return nil, errors.New("db not ready")
	}, time.Minute)
	if _, ok := p.Snapshot(); ok {
		t.Fatal("snapshot reported ok before any successful fetch")
	}
	if err := p.Refresh(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}
	if _, ok := p.Snapshot(); ok {
		t.Fatal("failed fetch must not install a snapshot")
	}
}

func TestPollerRefreshInstallsSnapshot(t *testing.T) {
	p := NewPoller(func(ctx context.Context) ([]model.Listing, error) {
		return []model.Listing{{ID: 1}, {ID: 2}}, nil
	}, time.Minute)
	if err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	got, ok := p.Snapshot()
	if !ok || len(got) != 2 {
		t.Fatalf("ok=%v len=%d, want 2 listings", ok, len(got))
	}
}

func TestPollerDiscardsStaleResponse(t *testing.T) {
	slowStarted := make(chan struct{})
	slowRelease := make(chan struct{})
	calls := 0
	p := NewPoller(func(ctx context.Context) ([]model.Listing, error) {
		calls++
		if calls == 1 {
			close(slowStarted)
			<-slowRelease
			return []model.Listing{{ID: 1, Title: "stale"}}, nil
		}
		return []model.Listing{{ID: 2, Title: "fresh"}}, nil
	}, time.Minute)

	done := make(chan error, 1)
	go func() { done <- p.Refresh(context.Background()) }()
	<-slowStarted

	// A younger refresh starts and finishes while the first is in flight.
	if err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	close(slowRelease)
	if err := <-done; err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	got, ok := p.Snapshot()
	if !ok || len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("stale response overwrote the fresher snapshot: %+v", got)
	}
}

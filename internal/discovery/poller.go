package discovery

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/scrazdxvf/baraholka-backend/internal/model"
)

type FetchFunc func(ctx context.Context) ([]model.Listing, error)

// Poller keeps the latest active-listing snapshot, refreshing it on a fixed
// interval. Refreshes may overlap; each fetch takes a sequence number before
// it starts and a completed fetch only installs its result if no
// later-started fetch has installed one already, so a stale response is
// discarded rather than written.
type Poller struct {
	fetch    FetchFunc
	interval time.Duration

	mu        sync.RWMutex
	snapshot  []model.Listing
	fetched   bool
	nextSeq   uint64
	installed uint64
}

func NewPoller(fetch FetchFunc, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Poller{fetch: fetch, interval: interval}
}

// Run blocks until ctx is done, refreshing once immediately and then on
// every tick. Ticks do not wait for an in-flight refresh.
func (p *Poller) Run(ctx context.Context) {
	if err := p.Refresh(ctx); err != nil {
		log.Printf("discovery: initial refresh failed: %v", err)
	}
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go func() {
				if err := p.Refresh(ctx); err != nil {
					log.Printf("discovery: refresh failed: %v", err)
				}
			}()
		}
	}
}

// Refresh fetches the active set once and installs it unless a younger
// refresh already finished.
func (p *Poller) Refresh(ctx context.Context) error {
	p.mu.Lock()
	p.nextSeq++
	seq := p.nextSeq
	p.mu.Unlock()

	listings, err := p.fetch(ctx)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if seq <= p.installed {
		return nil
	}
	p.snapshot = listings
	p.fetched = true
	p.installed = seq
	return nil
}

// Snapshot returns the last installed active set. ok is false until the
// first fetch completes so callers can fall back to a direct query.
func (p *Poller) Snapshot() (listings []model.Listing, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot, p.fetched
}

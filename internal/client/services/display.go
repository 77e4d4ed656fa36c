// Package services contains the display client's application logic.
package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/signage/internal/client/models"
	"github.com/dmitrijs2005/signage/internal/client/repositories/mirror"
	"github.com/dmitrijs2005/signage/internal/common"
	"github.com/dmitrijs2005/signage/internal/logging"
)

// MenuResolver resolves the authoritative content reference for a screen.
// *api.Client satisfies it.
type MenuResolver interface {
	ResolveMenu(ctx context.Context, screenID string) (string, error)
}

// Renderer receives display updates. Implementations draw to whatever output
// the device has; tests record the calls.
type Renderer interface {
	// ShowMenu displays the menu image at ref. fromCache marks renders
	// served from the local mirror before (or instead of) a remote answer.
	ShowMenu(screenID, ref string, fromCache bool)

	// ShowPlaceholder displays the "no menu uploaded" state.
	ShowPlaceholder(screenID string)

	// ShowClock updates the time-of-day display.
	ShowClock(now time.Time)
}

// DisplayService drives a single screen: it resolves the screen's menu
// against the server, falls back to the local mirror during outages, and
// keeps the mirror in sync with what the server last answered.
type DisplayService struct {
	resolver MenuResolver
	mirror   mirror.Repository
	renderer Renderer
	logger   logging.Logger

	screenID        string
	refreshInterval time.Duration
	clockInterval   time.Duration
	requestTimeout  time.Duration
}

func NewDisplayService(resolver MenuResolver, repo mirror.Repository, renderer Renderer,
	logger logging.Logger, screenID string,
	refreshInterval, clockInterval, requestTimeout time.Duration) *DisplayService {
	return &DisplayService{
		resolver:        resolver,
		mirror:          repo,
		renderer:        renderer,
		logger:          logger,
		screenID:        screenID,
		refreshInterval: refreshInterval,
		clockInterval:   clockInterval,
		requestTimeout:  requestTimeout,
	}
}

// RefreshOnce performs one resolve cycle.
//
// The mirror is consulted first and rendered optimistically, so the screen
// shows the last known menu while the network round-trip is in flight. The
// remote answer then wins:
//   - a resolved reference is rendered and written back to the mirror;
//   - an authoritative "nothing uploaded" deletes the mirror entry and
//     renders the placeholder;
//   - any other failure leaves the mirror untouched and keeps the
//     optimistic render (or the placeholder when the mirror was empty too).
func (s *DisplayService) RefreshOnce(ctx context.Context) {
	cached, err := s.mirror.Get(ctx, s.screenID)
	if err != nil {
		s.logger.Warn(ctx, "cache read failed", "screen_id", s.screenID, "error", err)
		cached = nil
	}
	if cached != nil {
		s.renderer.ShowMenu(s.screenID, cached.ContentRef, true)
	}

	rctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	ref, err := s.resolver.ResolveMenu(rctx, s.screenID)
	switch {
	case err == nil:
		s.renderer.ShowMenu(s.screenID, ref, false)
		entry := &models.CacheEntry{ScreenID: s.screenID, ContentRef: ref, UploadedAt: time.Now()}
		if err := s.mirror.Put(ctx, entry); err != nil {
			s.logger.Warn(ctx, "cache write failed", "screen_id", s.screenID, "error", err)
		}

	case errors.Is(err, common.ErrNotFound):
		// the server is authoritative: a stale mirror entry must not
		// outlive a confirmed deletion
		if err := s.mirror.Delete(ctx, s.screenID); err != nil {
			s.logger.Warn(ctx, "cache delete failed", "screen_id", s.screenID, "error", err)
		}
		s.renderer.ShowPlaceholder(s.screenID)

	default:
		s.logger.Warn(ctx, "resolve failed, serving cached menu", "screen_id", s.screenID, "error", err)
		if cached == nil {
			s.renderer.ShowPlaceholder(s.screenID)
		}
	}
}

// Run refreshes immediately and then keeps the screen current until ctx is
// cancelled. Refresh cycles and clock updates run in separate goroutines
// sharing the renderer as the single sink, so a slow resolve never stalls
// the time-of-day display.
func (s *DisplayService) Run(ctx context.Context) {
	s.renderer.ShowClock(time.Now())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.runRefreshLoop(ctx)
	}()

	clock := time.NewTicker(s.clockInterval)
	defer clock.Stop()

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			s.logger.Info(ctx, "display loop stopped", "screen_id", s.screenID)
			return
		case now := <-clock.C:
			s.renderer.ShowClock(now)
		}
	}
}

// runRefreshLoop drives refresh cycles sequentially. The timer is re-armed
// only after a cycle completes, so cycles never overlap or pile up.
func (s *DisplayService) runRefreshLoop(ctx context.Context) {
	s.RefreshOnce(ctx)

	refresh := time.NewTimer(s.refreshInterval)
	defer refresh.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-refresh.C:
			s.RefreshOnce(ctx)
			refresh.Reset(s.refreshInterval)
		}
	}
}

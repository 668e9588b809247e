package store

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/soukbid/soukbid-cli/internal/client/api"
	"github.com/soukbid/soukbid-cli/internal/client/models"
	"github.com/soukbid/soukbid-cli/internal/client/repositories/timers"
)

// tokenExpired inspects the stored access token's exp claim without
// verifying the signature; verification is the server's job, the client only
// wants to skip a round-trip that is guaranteed to 401.
func tokenExpired(access string, now time.Time) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}

// Restore rebuilds session state at startup: if a token pair is stored, the
// access token is refreshed when expired, the user record is fetched, and
// the persisted participation cache is loaded. A missing or rejected token
// leaves the store logged out; stale tokens are cleared.
func (s *Store) Restore(ctx context.Context, tokens api.TokenStore) {
	access, refresh, err := tokens.Tokens(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to load stored tokens", "error", err)
		return
	}
	if access == "" {
		return
	}

	if refresh != "" && tokenExpired(access, s.now()) {
		if _, err := s.api.RefreshTokens(ctx); err != nil {
			s.log.Warn(ctx, "token refresh failed", "error", err)
		}
	}

	u, err := s.api.CurrentUser(ctx)
	if err != nil {
		s.log.Warn(ctx, "stored session rejected", "error", err)
		if cerr := tokens.Clear(ctx); cerr != nil {
			s.log.Warn(ctx, "failed to clear stale tokens", "error", cerr)
		}
		return
	}
	s.applyUser(u)

	records, err := s.parts.All(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to load participation cache", "error", err)
		return
	}

	s.mu.Lock()
	for id, rec := range records {
		if rec.Joined {
			s.joined[id] = struct{}{}
		}
		if rec.BidAmount > 0 {
			s.bids[id] = rec.BidAmount
		}
	}
	s.mu.Unlock()
}

// LoadAuctions populates all three buckets from the backend. A failed list
// fetch for a bucket falls back to static placeholder content so screens
// never render empty; the error is logged, not surfaced. Countdowns for
// upcoming auctions are derived from absolute start timestamps and then
// corrected by any persisted countdown snapshots.
func (s *Store) LoadAuctions(ctx context.Context) {
	now := s.now()

	for _, status := range []models.Status{models.StatusUpcoming, models.StatusLive, models.StatusEnded} {
		auctions, err := s.api.ListAuctions(ctx, api.ListAuctionsParams{Status: status, Limit: s.listCap()})
		if err != nil {
			s.log.Warn(ctx, "auction list fetch failed, using fallback", "status", status, "error", err)
			auctions = models.DemoAuctions(status, now)
		}

		s.mu.Lock()
		for _, a := range auctions {
			if !a.Status.Valid() {
				a.Status = status
			}
			s.cols.Upsert(a)
		}
		s.mu.Unlock()
	}

	s.initCountdowns(ctx, now)
}

func (s *Store) listCap() int {
	return s.cols.cap
}

func (s *Store) initCountdowns(ctx context.Context, now time.Time) {
	snapshots, err := s.timers.All(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to load timer snapshots", "error", err)
	}
	resumed := make(map[string]int, len(snapshots))
	for _, snap := range snapshots {
		resumed[snap.AuctionID] = snap.RemainingAt(now)
	}

	s.mu.Lock()
	for _, a := range s.cols.Upcoming {
		if v, ok := resumed[a.ID]; ok {
			s.countdowns[a.ID] = v
			continue
		}
		s.countdowns[a.ID] = a.SecondsUntilStart(now)
	}
	s.mu.Unlock()

	// Drop snapshots for auctions that are no longer upcoming.
	for _, snap := range snapshots {
		if _, _, ok := s.findUpcoming(snap.AuctionID); !ok {
			if err := s.timers.Delete(ctx, snap.AuctionID); err != nil {
				s.log.Warn(ctx, "failed to prune timer snapshot", "auction", snap.AuctionID, "error", err)
			}
		}
	}
}

func (s *Store) findUpcoming(id string) (*models.Auction, models.Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, status, ok := s.cols.Find(id)
	if !ok || status != models.StatusUpcoming {
		return nil, "", false
	}
	return a, status, true
}

// Track merges an auction fetched outside the list flow (a direct detail
// fetch) into the collections, so derived values like the next bid amount
// see it. An upcoming auction gets a countdown if it has none yet.
func (s *Store) Track(a *models.Auction) {
	if a == nil || a.ID == "" {
		return
	}

	s.mu.Lock()
	s.cols.Upsert(a)
	if merged, status, ok := s.cols.Find(a.ID); ok && status == models.StatusUpcoming {
		if _, known := s.countdowns[a.ID]; !known {
			s.countdowns[a.ID] = merged.SecondsUntilStart(s.now())
		}
	}
	s.mu.Unlock()
}

// MoveToLive promotes an auction to the live bucket.
func (s *Store) MoveToLive(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.countdowns, id)
	return s.cols.MoveStatus(id, models.StatusLive)
}

// MoveToEnded retires an auction to the ended bucket.
func (s *Store) MoveToEnded(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.countdowns, id)
	return s.cols.MoveStatus(id, models.StatusEnded)
}

// UpdateCountdown sets the remaining-seconds value for an upcoming auction.
// Reaching zero promotes the auction to live immediately, without waiting
// for server confirmation; a later push event may correct the transition.
func (s *Store) UpdateCountdown(id string, seconds int) {
	if seconds <= 0 {
		s.MoveToLive(id)
		return
	}
	s.mu.Lock()
	s.countdowns[id] = seconds
	s.mu.Unlock()
}

// Tick decrements every countdown by one second and promotes auctions whose
// countdown reached zero. Snapshots are persisted so countdowns survive a
// restart. Returns the ids promoted on this tick.
func (s *Store) Tick(ctx context.Context) []string {
	now := s.now()

	s.mu.Lock()
	var promoted []string
	snapshots := make([]timers.Snapshot, 0, len(s.countdowns))
	for id, v := range s.countdowns {
		v--
		if v <= 0 {
			promoted = append(promoted, id)
			continue
		}
		s.countdowns[id] = v
		snapshots = append(snapshots, timers.Snapshot{AuctionID: id, RemainingSeconds: v, CapturedAt: now})
	}
	s.mu.Unlock()

	for _, id := range promoted {
		s.MoveToLive(id)
		if err := s.timers.Delete(ctx, id); err != nil {
			s.log.Warn(ctx, "failed to delete timer snapshot", "auction", id, "error", err)
		}
		s.log.Info(ctx, "countdown reached zero, promoting", "auction", id)
	}
	for _, snap := range snapshots {
		if err := s.timers.Save(ctx, snap); err != nil {
			s.log.Warn(ctx, "failed to save timer snapshot", "auction", snap.AuctionID, "error", err)
		}
	}
	return promoted
}

// RunCountdowns drives Tick once per second until the context is canceled.
func (s *Store) RunCountdowns(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Tick(ctx)
		case <-ctx.Done():
			return
		}
	}
}

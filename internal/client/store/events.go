package store

import (
	"context"
	"encoding/json"

	"github.com/soukbid/soukbid-cli/internal/client/models"
	"github.com/soukbid/soukbid-cli/internal/client/push"
)

// auctionEnvelope matches both payload shapes the backend uses: a bare
// auction object, or the auction wrapped under an "auction" key.
type auctionEnvelope struct {
	Auction *models.Auction `json:"auction"`
}

func decodeAuction(raw json.RawMessage) *models.Auction {
	var env auctionEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Auction != nil && env.Auction.ID != "" {
		return env.Auction
	}
	var a models.Auction
	if err := json.Unmarshal(raw, &a); err == nil && a.ID != "" {
		return &a
	}
	return nil
}

// deletePayload tolerates both id spellings observed on the wire.
type deletePayload struct {
	ID        string `json:"id"`
	AuctionID string `json:"auctionId"`
}

func (p deletePayload) id() string {
	if p.ID != "" {
		return p.ID
	}
	return p.AuctionID
}

// bidUpdate is the bid_placed payload. The push service reports these fields
// camelCase, unlike the REST API.
type bidUpdate struct {
	AuctionID    string `json:"auctionId"`
	NewBid       int    `json:"newBid"`
	Bidder       string `json:"bidder"`
	TotalBidders int    `json:"totalBidders"`
	TimeLeft     int    `json:"timeLeft"`
}

// timeUpdate is the auction_time_update payload.
type timeUpdate struct {
	AuctionID string `json:"auctionId"`
	TimeLeft  int    `json:"timeLeft"`
}

// listUpdate is the bulk auctions_updated payload.
type listUpdate struct {
	Auctions []*models.Auction `json:"auctions"`
}

// HandleAuctionUpsert merges a created/updated event into the collections.
// Unknown ids are inserted (uniform upsert policy); a fresh upcoming auction
// also gets a countdown derived from its start timestamp.
func (s *Store) HandleAuctionUpsert(raw json.RawMessage) {
	if a := decodeAuction(raw); a != nil {
		s.Track(a)
	}
}

// HandleAuctionDeleted removes the auction from view state entirely.
func (s *Store) HandleAuctionDeleted(ctx context.Context, raw json.RawMessage) {
	var p deletePayload
	if err := json.Unmarshal(raw, &p); err != nil || p.id() == "" {
		return
	}
	id := p.id()

	s.mu.Lock()
	s.cols.Remove(id)
	delete(s.countdowns, id)
	s.mu.Unlock()

	if err := s.timers.Delete(ctx, id); err != nil {
		s.log.Warn(ctx, "failed to delete timer snapshot", "auction", id, "error", err)
	}
}

// HandleAuctionStarted promotes the auction to live, inserting it first if
// the client has never seen it.
func (s *Store) HandleAuctionStarted(raw json.RawMessage) {
	a := decodeAuction(raw)
	if a == nil {
		return
	}
	a.Status = models.StatusLive

	s.mu.Lock()
	s.cols.Upsert(a)
	delete(s.countdowns, a.ID)
	s.mu.Unlock()
}

// HandleAuctionEnded retires the auction, carrying the winner and final bid
// from the payload.
func (s *Store) HandleAuctionEnded(raw json.RawMessage) {
	a := decodeAuction(raw)
	if a == nil {
		return
	}
	a.Status = models.StatusEnded

	s.mu.Lock()
	s.cols.Upsert(a)
	delete(s.countdowns, a.ID)
	s.mu.Unlock()
}

// HandleStatusChanged applies a server-pushed lifecycle transition.
func (s *Store) HandleStatusChanged(raw json.RawMessage) {
	a := decodeAuction(raw)
	if a == nil || !a.Status.Valid() {
		return
	}

	s.mu.Lock()
	if _, _, ok := s.cols.Find(a.ID); ok {
		s.cols.MoveStatus(a.ID, a.Status)
		if existing, _, ok := s.cols.Find(a.ID); ok {
			existing.Merge(a)
		}
	} else {
		s.cols.Upsert(a)
	}
	if a.Status != models.StatusUpcoming {
		delete(s.countdowns, a.ID)
	}
	s.mu.Unlock()
}

// HandleBidPlaced merges a bid notification into the live record. The push
// payload and the HTTP response to the user's own bid may arrive in either
// order; both are plain merge-patches, so the last writer wins.
func (s *Store) HandleBidPlaced(raw json.RawMessage) {
	var b bidUpdate
	if err := json.Unmarshal(raw, &b); err != nil || b.AuctionID == "" {
		return
	}

	s.mu.Lock()
	if a, _, ok := s.cols.Find(b.AuctionID); ok {
		if b.NewBid > 0 {
			a.CurrentBid = b.NewBid
		}
		if b.TotalBidders > 0 {
			a.Bidders = b.TotalBidders
		}
		if b.TimeLeft > 0 {
			a.TimeLeft = b.TimeLeft
		}
	}
	s.mu.Unlock()
}

// HandleTimeUpdate applies a server-supplied countdown correction. One
// critical section end to end, so a concurrent delete cannot slip between
// the lookup and the write.
func (s *Store) HandleTimeUpdate(raw json.RawMessage) {
	var t timeUpdate
	if err := json.Unmarshal(raw, &t); err != nil || t.AuctionID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, status, ok := s.cols.Find(t.AuctionID)
	if !ok {
		return
	}

	if status == models.StatusUpcoming {
		if t.TimeLeft <= 0 {
			delete(s.countdowns, t.AuctionID)
			s.cols.MoveStatus(t.AuctionID, models.StatusLive)
		} else {
			s.countdowns[t.AuctionID] = t.TimeLeft
		}
		return
	}

	a.TimeLeft = t.TimeLeft
}

// HandleAuctionsUpdated applies a bulk list update.
func (s *Store) HandleAuctionsUpdated(raw json.RawMessage) {
	var l listUpdate
	if err := json.Unmarshal(raw, &l); err != nil {
		return
	}
	for _, a := range l.Auctions {
		if a == nil || a.ID == "" {
			continue
		}
		s.mu.Lock()
		s.cols.Upsert(a)
		s.mu.Unlock()
	}
}

// BindPush subscribes the store's handlers to the full event taxonomy.
// Events flow through the same reconciliation functions as fetch responses.
func (s *Store) BindPush(ctx context.Context, p *push.Client) {
	p.On(push.EventAuctionCreated, s.HandleAuctionUpsert)
	p.On(push.EventAuctionUpdated, s.HandleAuctionUpsert)
	p.On(push.EventAuctionDeleted, func(raw json.RawMessage) { s.HandleAuctionDeleted(ctx, raw) })
	p.On(push.EventAuctionStarted, s.HandleAuctionStarted)
	p.On(push.EventAuctionEnded, s.HandleAuctionEnded)
	p.On(push.EventBidPlaced, s.HandleBidPlaced)
	p.On(push.EventAuctionStatusChanged, s.HandleStatusChanged)
	p.On(push.EventAuctionTimeUpdate, s.HandleTimeUpdate)
	p.On(push.EventAuctionsUpdated, s.HandleAuctionsUpdated)
	p.On(push.EventMaxAttemptsReached, func(json.RawMessage) {
		s.log.Warn(ctx, "push channel gave up reconnecting; live updates paused")
	})
}

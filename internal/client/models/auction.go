// Package models defines the domain types the client works with. The backend
// speaks snake_case JSON; the tags here resolve those field names once, so the
// rest of the application never sees `entry_fee` vs `entryFee` again.
package models

import (
	"time"
)

// Status is the lifecycle state of an auction. An auction lives in exactly
// one of the three store buckets, and the bucket is fully determined by this
// value.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusLive     Status = "live"
	StatusEnded    Status = "ended"
)

// Valid reports whether s is one of the three known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusLive, StatusEnded:
		return true
	}
	return false
}

// Auction is a single auction as the backend reports it. CurrentBid and the
// winner fields are authoritative on the server; the client only mirrors them.
type Auction struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Category    string    `json:"category,omitempty"`
	CurrentBid  int       `json:"current_bid"`
	MarketPrice int       `json:"market_price"`
	EntryFee    int       `json:"entry_fee"`
	MinWallet   int       `json:"min_wallet"`
	StartingBid int       `json:"starting_bid,omitempty"`
	Bidders     int       `json:"bidder_count"`
	Status      Status    `json:"status"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	TimeLeft    int       `json:"time_left,omitempty"`
	Winner      string    `json:"winner,omitempty"`
	FinalBid    int       `json:"final_bid,omitempty"`
}

// SecondsUntilStart computes the countdown value for an upcoming auction
// from its absolute start timestamp. Never negative.
func (a *Auction) SecondsUntilStart(now time.Time) int {
	d := a.StartTime.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(d / time.Second)
}

// SecondsUntilEnd computes the remaining bidding time for a live auction.
// Never negative.
func (a *Auction) SecondsUntilEnd(now time.Time) int {
	d := a.EndTime.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(d / time.Second)
}

// Savings is the difference between market price and the current highest bid,
// shown on auction cards as the potential saving for the next bidder.
func (a *Auction) Savings() int {
	s := a.MarketPrice - a.CurrentBid
	if s < 0 {
		return 0
	}
	return s
}

// Merge applies a partial update onto a, field-wise, skipping zero values in
// the patch. The id is never changed. Status is applied only when valid, so a
// malformed event cannot knock an auction out of every bucket.
func (a *Auction) Merge(patch *Auction) {
	if patch.Title != "" {
		a.Title = patch.Title
	}
	if patch.Description != "" {
		a.Description = patch.Description
	}
	if patch.ImageURL != "" {
		a.ImageURL = patch.ImageURL
	}
	if patch.Category != "" {
		a.Category = patch.Category
	}
	if patch.CurrentBid != 0 {
		a.CurrentBid = patch.CurrentBid
	}
	if patch.MarketPrice != 0 {
		a.MarketPrice = patch.MarketPrice
	}
	if patch.EntryFee != 0 {
		a.EntryFee = patch.EntryFee
	}
	if patch.MinWallet != 0 {
		a.MinWallet = patch.MinWallet
	}
	if patch.Bidders != 0 {
		a.Bidders = patch.Bidders
	}
	if patch.Status.Valid() {
		a.Status = patch.Status
	}
	if !patch.StartTime.IsZero() {
		a.StartTime = patch.StartTime
	}
	if !patch.EndTime.IsZero() {
		a.EndTime = patch.EndTime
	}
	if patch.TimeLeft != 0 {
		a.TimeLeft = patch.TimeLeft
	}
	if patch.Winner != "" {
		a.Winner = patch.Winner
	}
	if patch.FinalBid != 0 {
		a.FinalBid = patch.FinalBid
	}
}

// Bid is one row of an auction's leaderboard, highest first.
type Bid struct {
	ID        string    `json:"id"`
	AuctionID string    `json:"auction_id"`
	UserID    string    `json:"user_id"`
	Bidder    string    `json:"bidder_name"`
	Amount    int       `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

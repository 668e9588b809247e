// Package participation persists which auctions the user has joined and the
// user's own highest bid per auction. This is a client-local cache of a
// subset of backend truth; it is never treated as authoritative.
package participation

import "context"

// Record is one auction the user participates in.
type Record struct {
	AuctionID string
	Joined    bool
	BidAmount int
}

type Repository interface {
	// All returns every stored record, keyed by auction id.
	All(ctx context.Context) (map[string]Record, error)

	// MarkJoined upserts the auction as joined, keeping any recorded bid.
	MarkJoined(ctx context.Context, auctionID string) error

	// SetBid upserts the user's bid amount for the auction.
	SetBid(ctx context.Context, auctionID string, amount int) error

	// Clear wipes all records (logout, account switch).
	Clear(ctx context.Context) error
}

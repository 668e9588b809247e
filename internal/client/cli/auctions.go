package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/soukbid/soukbid-cli/internal/client/models"
	"github.com/soukbid/soukbid-cli/internal/client/push"
)

// Home shows the storefront landing view: banners, live auctions, then
// upcoming ones.
func (a *App) Home(ctx context.Context) error {
	banners, err := a.api.ListBanners(ctx)
	if err != nil {
		a.log.Debug(ctx, "banner fetch failed", "error", err)
	}
	for _, b := range banners {
		if !b.IsActive {
			continue
		}
		fmt.Printf("*** %s — %s\n", b.Title, b.Description)
	}

	fmt.Println("\nLive now:")
	a.printBucket(models.StatusLive)
	fmt.Println("Starting soon:")
	a.printBucket(models.StatusUpcoming)
	return nil
}

// List shows one bucket.
func (a *App) List(ctx context.Context, bucket string) error {
	status := models.Status(bucket)
	if !status.Valid() {
		return fmt.Errorf("unknown bucket %q", bucket)
	}
	a.printBucket(status)
	return nil
}

func (a *App) printBucket(status models.Status) {
	auctions := a.store.Auctions(status)
	if len(auctions) == 0 {
		fmt.Println("  (nothing here)")
		return
	}
	for i := range auctions {
		fmt.Print(auctionCard(&auctions[i], a.store.Countdown(auctions[i].ID)))
	}
}

// Watch shows the bidding detail view for one auction: the record itself,
// the user's standing, the next-bid amount and the leaderboard. It also
// joins the auction's push room for per-auction updates.
func (a *App) Watch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: watch <auction-id>")
	}
	id := args[0]

	auction, ok := a.store.Auction(id)
	if !ok {
		fetched, err := a.api.GetAuction(ctx, id)
		if err != nil {
			return fmt.Errorf("auction %s: %w", id, err)
		}
		a.store.Track(fetched)
		auction = *fetched
	}

	if a.watching != "" && a.watching != id {
		if err := a.push.LeaveRoom(a.watching); err != nil {
			a.log.Debug(ctx, "leave room failed", "auction", a.watching, "error", err)
		}
	}
	if err := a.push.JoinRoom(id); err != nil {
		a.log.Debug(ctx, "join room failed", "auction", id, "error", err)
	}
	a.watching = id

	fmt.Print(auctionCard(&auction, a.store.Countdown(id)))
	if a.store.IsParticipating(id) {
		fmt.Printf("  your bid: %dc | next bid: %dc\n", a.store.UserBidFor(id), a.store.NextBidAmount(id))
	} else if auction.Status == models.StatusLive {
		fmt.Printf("  join to bid (entry %dc) | next bid would be %dc\n", auction.EntryFee, a.store.NextBidAmount(id))
	}

	bids, err := a.api.ListBids(ctx, id)
	if err != nil {
		a.log.Debug(ctx, "leaderboard fetch failed", "auction", id, "error", err)
		return nil
	}
	if len(bids) > 0 {
		fmt.Println("  leaderboard:")
		for i, b := range bids {
			fmt.Printf("   %2d. %s — %dc\n", i+1, b.Bidder, b.Amount)
		}
	}
	return nil
}

// Join pays the entry fee for an auction. If the wallet cannot cover the
// fee, the top-up flow opens instead of calling the backend.
func (a *App) Join(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: join <auction-id>")
	}
	id := args[0]

	auction, ok := a.store.Auction(id)
	if !ok {
		return fmt.Errorf("unknown auction %s", id)
	}

	if a.store.LoggedIn() && a.store.Coins() < auction.EntryFee {
		fmt.Printf("Not enough coins for the %dc entry fee.\n", auction.EntryFee)
		return a.TopUp(ctx)
	}

	if !a.store.JoinAuction(ctx, id, auction.EntryFee) {
		fmt.Println("Join failed:", a.store.Err())
		return nil
	}

	fmt.Printf("Joined %q. Wallet: %d coins\n", auction.Title, a.store.Coins())
	return nil
}

// Bid places the next incremental bid. The amount is the current highest
// plus the fixed step; an explicit amount argument overrides it. A wallet
// that cannot cover the amount opens the top-up flow instead of calling the
// backend.
func (a *App) Bid(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: bid <auction-id> [amount]")
	}
	id := args[0]

	amount := a.store.NextBidAmount(id)
	if len(args) > 1 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}
		amount = parsed
	}

	if a.store.LoggedIn() && a.store.Coins() < amount {
		fmt.Printf("Not enough coins to bid %dc.\n", amount)
		return a.TopUp(ctx)
	}

	if !a.store.PlaceBid(ctx, id, amount) {
		fmt.Println("Bid failed:", a.store.Err())
		return nil
	}

	fmt.Printf("Bid placed: %dc. Wallet: %d coins\n", amount, a.store.Coins())
	return nil
}

// bindAnnouncements prints user-facing notifications for push events that
// deserve attention even while the user is on another screen.
func (a *App) bindAnnouncements(ctx context.Context) {
	a.push.On(push.EventAuctionEnded, func(raw json.RawMessage) {
		var env struct {
			Auction *models.Auction `json:"auction"`
		}
		if err := json.Unmarshal(raw, &env); err != nil || env.Auction == nil {
			return
		}
		if env.Auction.Winner != "" {
			fmt.Printf("\n*** %q ended — won by %s at %dc\n", env.Auction.Title, env.Auction.Winner, env.Auction.FinalBid)
		}
	})
}

package cli

import (
	"fmt"
	"strings"

	"github.com/soukbid/soukbid-cli/internal/client/models"
)

// formatSeconds renders a countdown the way the auction cards show it:
// "2h 5m", "3m 12s" or "45s".
func formatSeconds(seconds int) string {
	if seconds <= 0 {
		return "0s"
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, secs)
	}
	return fmt.Sprintf("%ds", secs)
}

// auctionCard renders one auction as a compact text card.
func auctionCard(a *models.Auction, countdown int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s\n", a.ID, a.Title)
	if a.Category != "" {
		fmt.Fprintf(&b, "  category: %s\n", a.Category)
	}

	switch a.Status {
	case models.StatusUpcoming:
		fmt.Fprintf(&b, "  starts in %s | entry %dc | min wallet %dc\n",
			formatSeconds(countdown), a.EntryFee, a.MinWallet)
	case models.StatusLive:
		fmt.Fprintf(&b, "  bid %dc (market %dc, save %dc) | %d bidders | entry %dc\n",
			a.CurrentBid, a.MarketPrice, a.Savings(), a.Bidders, a.EntryFee)
		if a.TimeLeft > 0 {
			fmt.Fprintf(&b, "  ends in %s\n", formatSeconds(a.TimeLeft))
		}
	case models.StatusEnded:
		winner := a.Winner
		if winner == "" {
			winner = "n/a"
		}
		fmt.Fprintf(&b, "  won by %s at %dc (market %dc)\n", winner, a.FinalBid, a.MarketPrice)
	}

	return b.String()
}

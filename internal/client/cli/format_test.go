package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soukbid/soukbid-cli/internal/client/models"
)

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0s"},
		{-5, "0s"},
		{45, "45s"},
		{192, "3m 12s"},
		{7500, "2h 5m"},
		{3600, "1h 0m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSeconds(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestAuctionCard_Upcoming(t *testing.T) {
	a := &models.Auction{
		ID:       "u1",
		Title:    "Sony WH-1000XM5",
		Status:   models.StatusUpcoming,
		EntryFee: 15,
	}

	card := auctionCard(a, 192)

	assert.Contains(t, card, "Sony WH-1000XM5")
	assert.Contains(t, card, "starts in 3m 12s")
	assert.Contains(t, card, "entry 15c")
}

func TestAuctionCard_Live(t *testing.T) {
	a := &models.Auction{
		ID:          "l1",
		Title:       "iPhone 15 Pro Max",
		Status:      models.StatusLive,
		CurrentBid:  47,
		MarketPrice: 3750,
		Bidders:     25,
		EntryFee:    20,
		TimeLeft:    118,
	}

	card := auctionCard(a, 0)

	assert.Contains(t, card, "bid 47c")
	assert.Contains(t, card, "save 3703c")
	assert.Contains(t, card, "25 bidders")
	assert.Contains(t, card, "ends in 1m 58s")
}

func TestAuctionCard_Ended(t *testing.T) {
	a := &models.Auction{
		ID:          "e1",
		Title:       "Apple Watch",
		Status:      models.StatusEnded,
		Winner:      "Sara",
		FinalBid:    89,
		MarketPrice: 1500,
	}

	card := auctionCard(a, 0)

	assert.Contains(t, card, "won by Sara at 89c")
}

func TestAuctionCard_EndedWithoutWinner(t *testing.T) {
	a := &models.Auction{ID: "e1", Title: "Apple Watch", Status: models.StatusEnded}

	card := auctionCard(a, 0)

	assert.Contains(t, card, "won by n/a")
}

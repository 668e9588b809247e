package models

import (
	"time"

	"github.com/google/uuid"
)

// DemoAuctions returns static placeholder auctions for one status bucket,
// used when a list fetch fails so screens never render empty. The ids are
// synthetic and regenerated per call; demo entries are never sent back to
// the server.
func DemoAuctions(status Status, now time.Time) []*Auction {
	switch status {
	case StatusLive:
		return []*Auction{
			{
				ID:          "demo-" + uuid.NewString(),
				Title:       "iPhone 15 Pro Max",
				ImageURL:    "https://images.pexels.com/photos/788946/pexels-photo-788946.jpeg",
				CurrentBid:  45,
				MarketPrice: 3750,
				Bidders:     24,
				EntryFee:    20,
				MinWallet:   100,
				Description: "Latest iPhone 15 Pro Max with 256GB storage in Titanium Blue",
				Category:    "Electronics",
				Status:      StatusLive,
				StartTime:   now.Add(-10 * time.Minute),
				EndTime:     now.Add(20 * time.Minute),
				TimeLeft:    1200,
			},
			{
				ID:          "demo-" + uuid.NewString(),
				Title:       "Nike Air Max 90",
				ImageURL:    "https://images.pexels.com/photos/2529148/pexels-photo-2529148.jpeg",
				CurrentBid:  28,
				MarketPrice: 450,
				Bidders:     18,
				EntryFee:    15,
				MinWallet:   75,
				Description: "Classic Nike Air Max 90 sneakers in premium white colorway",
				Category:    "Fashion",
				Status:      StatusLive,
				StartTime:   now.Add(-5 * time.Minute),
				EndTime:     now.Add(30 * time.Minute),
				TimeLeft:    1800,
			},
		}
	case StatusUpcoming:
		return []*Auction{
			{
				ID:          "demo-" + uuid.NewString(),
				Title:       "Sony WH-1000XM5",
				ImageURL:    "https://images.pexels.com/photos/3394650/pexels-photo-3394650.jpeg",
				MarketPrice: 1400,
				Bidders:     9,
				EntryFee:    10,
				MinWallet:   50,
				Description: "Industry-leading noise cancelling wireless headphones",
				Category:    "Audio",
				Status:      StatusUpcoming,
				StartTime:   now.Add(15 * time.Minute),
				EndTime:     now.Add(45 * time.Minute),
			},
		}
	case StatusEnded:
		return []*Auction{
			{
				ID:          "demo-" + uuid.NewString(),
				Title:       "Apple Watch Series 9",
				ImageURL:    "https://images.pexels.com/photos/437037/pexels-photo-437037.jpeg",
				CurrentBid:  61,
				MarketPrice: 1650,
				Bidders:     31,
				EntryFee:    15,
				MinWallet:   75,
				Category:    "Wearables",
				Status:      StatusEnded,
				StartTime:   now.Add(-2 * time.Hour),
				EndTime:     now.Add(-1 * time.Hour),
				Winner:      "Sara M",
				FinalBid:    61,
			},
		}
	}
	return nil
}

package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soukbid/soukbid-cli/internal/client/models"
)

func TestCollections_UpsertInsertsUnknownID(t *testing.T) {
	c := NewCollections(0)

	c.Upsert(liveAuction("a1", 45))

	require.Len(t, c.Live, 1)
	assert.Equal(t, "a1", c.Live[0].ID)
	assert.Empty(t, c.Upcoming)
	assert.Empty(t, c.Ended)
}

func TestCollections_UpsertIsIdempotent(t *testing.T) {
	c := NewCollections(0)
	patch := liveAuction("a1", 45)
	patch.Bidders = 24

	c.Upsert(patch)
	c.Upsert(patch)

	require.Len(t, c.Live, 1)
	assert.Equal(t, 45, c.Live[0].CurrentBid)
	assert.Equal(t, 24, c.Live[0].Bidders)
	assert.Equal(t, 1, c.Len())
}

func TestCollections_UpsertMergesFields(t *testing.T) {
	c := NewCollections(0)
	c.Upsert(&models.Auction{ID: "a1", Title: "iPhone", Status: models.StatusLive, CurrentBid: 45, MarketPrice: 3750})

	// Partial patch: only the bid moves.
	c.Upsert(&models.Auction{ID: "a1", Status: models.StatusLive, CurrentBid: 47})

	require.Len(t, c.Live, 1)
	assert.Equal(t, 47, c.Live[0].CurrentBid)
	assert.Equal(t, "iPhone", c.Live[0].Title)
	assert.Equal(t, 3750, c.Live[0].MarketPrice)
}

func TestCollections_UpsertMovesBucketOnStatusChange(t *testing.T) {
	c := NewCollections(0)
	c.Upsert(&models.Auction{ID: "a1", Status: models.StatusUpcoming, Title: "Watch"})

	c.Upsert(&models.Auction{ID: "a1", Status: models.StatusLive})

	assert.Empty(t, c.Upcoming)
	require.Len(t, c.Live, 1)
	assert.Equal(t, "Watch", c.Live[0].Title)
}

func TestCollections_UpsertDropsUnknownIDWithoutStatus(t *testing.T) {
	c := NewCollections(0)

	c.Upsert(&models.Auction{ID: "ghost", CurrentBid: 10})

	assert.Equal(t, 0, c.Len())
}

func TestCollections_CapDropsOldestEntries(t *testing.T) {
	c := NewCollections(3)

	for i := 0; i < 5; i++ {
		c.Upsert(liveAuction(fmt.Sprintf("a%d", i), i))
	}

	require.Len(t, c.Live, 3)
	// Prepend order: newest first, oldest dropped from the tail.
	assert.Equal(t, "a4", c.Live[0].ID)
	assert.Equal(t, "a2", c.Live[2].ID)
}

func TestCollections_MoveStatus(t *testing.T) {
	c := NewCollections(0)
	c.Upsert(liveAuction("x", 50))
	c.Upsert(liveAuction("y", 10))

	moved := c.MoveStatus("x", models.StatusEnded)

	require.True(t, moved)
	require.Len(t, c.Ended, 1)
	assert.Equal(t, models.StatusEnded, c.Ended[0].Status)
	require.Len(t, c.Live, 1)
	assert.Equal(t, "y", c.Live[0].ID)
}

func TestCollections_MoveStatusTwiceIsNoOp(t *testing.T) {
	c := NewCollections(0)
	c.Upsert(liveAuction("x", 50))

	require.True(t, c.MoveStatus("x", models.StatusEnded))
	assert.False(t, c.MoveStatus("x", models.StatusEnded))

	assert.Len(t, c.Ended, 1)
	assert.Equal(t, 1, c.Len())
}

func TestCollections_MoveStatusUnknownID(t *testing.T) {
	c := NewCollections(0)
	assert.False(t, c.MoveStatus("nope", models.StatusLive))
}

func TestCollections_Remove(t *testing.T) {
	c := NewCollections(0)
	c.Upsert(liveAuction("a1", 45))

	assert.True(t, c.Remove("a1"))
	assert.False(t, c.Remove("a1"))
	assert.Equal(t, 0, c.Len())
}

func TestCollections_StatusAlwaysMatchesBucket(t *testing.T) {
	c := NewCollections(0)
	c.Upsert(&models.Auction{ID: "u1", Status: models.StatusUpcoming})
	c.Upsert(liveAuction("l1", 5))
	c.Upsert(&models.Auction{ID: "e1", Status: models.StatusEnded})
	c.MoveStatus("u1", models.StatusLive)
	c.Upsert(&models.Auction{ID: "l1", Status: models.StatusEnded})

	for _, a := range c.Upcoming {
		assert.Equal(t, models.StatusUpcoming, a.Status)
	}
	for _, a := range c.Live {
		assert.Equal(t, models.StatusLive, a.Status)
	}
	for _, a := range c.Ended {
		assert.Equal(t, models.StatusEnded, a.Status)
	}
}

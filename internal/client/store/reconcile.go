package store

import (
	"github.com/soukbid/soukbid-cli/internal/client/models"
)

// DefaultListCap bounds each display bucket; inserts beyond the cap drop the
// oldest entries from the tail.
const DefaultListCap = 50

// Collections holds the three status buckets. An auction id appears in at
// most one bucket, and the bucket always matches the auction's Status. All
// mutation goes through Upsert, Remove and MoveStatus, which keep that
// invariant by construction, so redundant events are harmless.
type Collections struct {
	cap      int
	Upcoming []*models.Auction
	Live     []*models.Auction
	Ended    []*models.Auction
}

func NewCollections(cap int) Collections {
	if cap <= 0 {
		cap = DefaultListCap
	}
	return Collections{cap: cap}
}

func (c *Collections) bucket(s models.Status) *[]*models.Auction {
	switch s {
	case models.StatusUpcoming:
		return &c.Upcoming
	case models.StatusLive:
		return &c.Live
	case models.StatusEnded:
		return &c.Ended
	}
	return nil
}

// Find returns the auction with the given id and the bucket it lives in.
func (c *Collections) Find(id string) (*models.Auction, models.Status, bool) {
	for _, s := range []models.Status{models.StatusUpcoming, models.StatusLive, models.StatusEnded} {
		for _, a := range *c.bucket(s) {
			if a.ID == id {
				return a, s, true
			}
		}
	}
	return nil, "", false
}

func (c *Collections) removeFrom(s models.Status, id string) *models.Auction {
	b := c.bucket(s)
	for i, a := range *b {
		if a.ID == id {
			*b = append((*b)[:i], (*b)[i+1:]...)
			return a
		}
	}
	return nil
}

func (c *Collections) prepend(s models.Status, a *models.Auction) {
	b := c.bucket(s)
	*b = append([]*models.Auction{a}, *b...)
	if len(*b) > c.cap {
		*b = (*b)[:c.cap]
	}
}

// Upsert applies a merge-patch. If the id is already known anywhere, the
// patch is merged field-wise into the existing record, which then moves to
// the bucket matching its resulting status. Unknown ids are inserted into
// the bucket matching the patch's status; a patch with no valid status and
// no existing record is dropped, since there is no bucket for it.
//
// Applying the same patch twice leaves the collections unchanged.
func (c *Collections) Upsert(patch *models.Auction) {
	if patch == nil || patch.ID == "" {
		return
	}

	existing, from, ok := c.Find(patch.ID)
	if !ok {
		if !patch.Status.Valid() {
			return
		}
		cp := *patch
		c.prepend(patch.Status, &cp)
		return
	}

	existing.Merge(patch)
	if existing.Status != from {
		c.removeFrom(from, existing.ID)
		c.prepend(existing.Status, existing)
	}
}

// Remove drops the auction from whichever bucket holds it.
func (c *Collections) Remove(id string) bool {
	_, from, ok := c.Find(id)
	if !ok {
		return false
	}
	return c.removeFrom(from, id) != nil
}

// MoveStatus realizes a status transition: the record leaves its source
// bucket and is prepended to the destination with the new status applied.
// Moving to the bucket the auction is already in is a no-op, so a handler
// firing twice for the same transition does not duplicate the entry.
func (c *Collections) MoveStatus(id string, to models.Status) bool {
	if !to.Valid() {
		return false
	}
	a, from, ok := c.Find(id)
	if !ok {
		return false
	}
	if from == to {
		return false
	}
	c.removeFrom(from, id)
	a.Status = to
	c.prepend(to, a)
	return true
}

// Len returns the total number of tracked auctions across buckets.
func (c *Collections) Len() int {
	return len(c.Upcoming) + len(c.Live) + len(c.Ended)
}

// Package timers persists countdown snapshots so a countdown resumes
// correctly after the app is reopened: the remaining seconds are stored
// together with the wall-clock capture time, and the elapsed interval is
// subtracted on load.
package timers

import (
	"context"
	"time"
)

// Snapshot is one persisted countdown.
type Snapshot struct {
	AuctionID        string
	RemainingSeconds int
	CapturedAt       time.Time
}

// RemainingAt recomputes the countdown for the given moment. Never negative.
func (s Snapshot) RemainingAt(now time.Time) int {
	elapsed := int(now.Sub(s.CapturedAt) / time.Second)
	remaining := s.RemainingSeconds - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

type Repository interface {
	All(ctx context.Context) ([]Snapshot, error)
	Save(ctx context.Context, s Snapshot) error
	Delete(ctx context.Context, auctionID string) error
	Clear(ctx context.Context) error
}

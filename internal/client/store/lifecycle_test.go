package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soukbid/soukbid-cli/internal/client/api"
	"github.com/soukbid/soukbid-cli/internal/client/models"
	"github.com/soukbid/soukbid-cli/internal/client/repositories/timers"
	"github.com/soukbid/soukbid-cli/internal/logging"
)

// memTokens is an in-memory api.TokenStore.
type memTokens struct {
	access  string
	refresh string
	cleared bool
}

func (m *memTokens) Tokens(ctx context.Context) (string, string, error) {
	return m.access, m.refresh, nil
}

func (m *memTokens) Save(ctx context.Context, access, refresh string) error {
	m.access, m.refresh = access, refresh
	return nil
}

func (m *memTokens) Clear(ctx context.Context) error {
	m.access, m.refresh = "", ""
	m.cleared = true
	return nil
}

var _ api.TokenStore = (*memTokens)(nil)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()

	assert.False(t, tokenExpired(signedToken(t, now.Add(time.Hour)), now))
	assert.True(t, tokenExpired(signedToken(t, now.Add(-time.Hour)), now))
	assert.True(t, tokenExpired("garbage", now))
}

func TestRestore_NoStoredTokens(t *testing.T) {
	client := &fakeAPI{}
	s := newTestStore(t, client)

	s.Restore(context.Background(), &memTokens{})

	assert.False(t, s.LoggedIn())
	assert.Equal(t, 0, client.CurrentUserCalls)
}

func TestRestore_ValidSession(t *testing.T) {
	client := &fakeAPI{
		CurrentUserResult: &models.User{Name: "Ann A", WalletBalance: 480},
	}
	s := newTestStore(t, client)
	tokens := &memTokens{access: signedToken(t, time.Now().Add(time.Hour)), refresh: "rt"}

	s.Restore(context.Background(), tokens)

	assert.True(t, s.LoggedIn())
	assert.Equal(t, 480, s.Coins())
	assert.Equal(t, "AA", s.Initials())
	assert.False(t, tokens.cleared)
}

func TestRestore_RejectedSessionClearsTokens(t *testing.T) {
	client := &fakeAPI{CurrentUserErr: api.ErrUnauthorized}
	s := newTestStore(t, client)
	tokens := &memTokens{access: signedToken(t, time.Now().Add(time.Hour))}

	s.Restore(context.Background(), tokens)

	assert.False(t, s.LoggedIn())
	assert.True(t, tokens.cleared)
}

func TestRestore_LoadsParticipationCache(t *testing.T) {
	client := &fakeAPI{CurrentUserResult: &models.User{Name: "Ann A", WalletBalance: 480}}
	parts := newMemParts()
	require.NoError(t, parts.MarkJoined(context.Background(), "a1"))
	require.NoError(t, parts.SetBid(context.Background(), "a2", 47))
	s := New(client, nil, parts, newMemTimers(), 0, logging.NewNoopLogger())

	s.Restore(context.Background(), &memTokens{access: signedToken(t, time.Now().Add(time.Hour))})

	assert.True(t, s.IsParticipating("a1"))
	assert.Equal(t, 47, s.UserBidFor("a2"))
}

func TestLoadAuctions_PopulatesBuckets(t *testing.T) {
	client := &fakeAPI{
		Auctions: map[models.Status][]*models.Auction{
			models.StatusLive:     {liveAuction("l1", 45)},
			models.StatusUpcoming: {{ID: "u1", Status: models.StatusUpcoming}},
			models.StatusEnded:    {{ID: "e1", Status: models.StatusEnded}},
		},
	}
	s := newTestStore(t, client)

	s.LoadAuctions(context.Background())

	assert.Len(t, s.Auctions(models.StatusLive), 1)
	assert.Len(t, s.Auctions(models.StatusUpcoming), 1)
	assert.Len(t, s.Auctions(models.StatusEnded), 1)
}

func TestLoadAuctions_FallsBackToPlaceholders(t *testing.T) {
	client := &fakeAPI{AuctionsErr: errors.New("connection refused")}
	s := newTestStore(t, client)

	s.LoadAuctions(context.Background())

	// Screens must never render empty buckets.
	assert.NotEmpty(t, s.Auctions(models.StatusLive))
	assert.NotEmpty(t, s.Auctions(models.StatusUpcoming))
	assert.NotEmpty(t, s.Auctions(models.StatusEnded))
}

func TestLoadAuctions_DerivesCountdownsFromStartTime(t *testing.T) {
	now := time.Now()
	client := &fakeAPI{
		Auctions: map[models.Status][]*models.Auction{
			models.StatusUpcoming: {{ID: "u1", Status: models.StatusUpcoming, StartTime: now.Add(2 * time.Minute)}},
		},
	}
	s := newTestStore(t, client)
	s.now = func() time.Time { return now }

	s.LoadAuctions(context.Background())

	assert.Equal(t, 120, s.Countdown("u1"))
}

func TestLoadAuctions_ResumesPersistedCountdowns(t *testing.T) {
	now := time.Now()
	client := &fakeAPI{
		Auctions: map[models.Status][]*models.Auction{
			models.StatusUpcoming: {{ID: "u1", Status: models.StatusUpcoming, StartTime: now.Add(time.Hour)}},
		},
	}
	tm := newMemTimers()
	// Snapshot taken 10s ago with 60s remaining.
	require.NoError(t, tm.Save(context.Background(), timers.Snapshot{
		AuctionID:        "u1",
		RemainingSeconds: 60,
		CapturedAt:       now.Add(-10 * time.Second),
	}))
	s := New(client, nil, newMemParts(), tm, 0, logging.NewNoopLogger())
	s.now = func() time.Time { return now }

	s.LoadAuctions(context.Background())

	assert.Equal(t, 50, s.Countdown("u1"))
}

func TestLoadAuctions_PrunesStaleSnapshots(t *testing.T) {
	client := &fakeAPI{
		Auctions: map[models.Status][]*models.Auction{
			models.StatusEnded: {{ID: "gone", Status: models.StatusEnded}},
		},
	}
	tm := newMemTimers()
	require.NoError(t, tm.Save(context.Background(), timers.Snapshot{AuctionID: "gone", RemainingSeconds: 30, CapturedAt: time.Now()}))
	s := New(client, nil, newMemParts(), tm, 0, logging.NewNoopLogger())

	s.LoadAuctions(context.Background())

	snaps, err := tm.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snaps)
}

func TestTick_DecrementsCountdowns(t *testing.T) {
	s := newTestStore(t, &fakeAPI{})
	s.HandleAuctionUpsert([]byte(`{"id":"u1","status":"upcoming"}`))
	s.UpdateCountdown("u1", 10)

	promoted := s.Tick(context.Background())

	assert.Empty(t, promoted)
	assert.Equal(t, 9, s.Countdown("u1"))
}

func TestTick_CountdownNeverGoesBelowZero(t *testing.T) {
	s := newTestStore(t, &fakeAPI{})
	s.HandleAuctionUpsert([]byte(`{"id":"u1","status":"upcoming"}`))
	s.UpdateCountdown("u1", 3)

	for i := 0; i < 10; i++ {
		s.Tick(context.Background())
		assert.GreaterOrEqual(t, s.Countdown("u1"), 0)
	}
}

func TestTick_PromotesAtZero(t *testing.T) {
	s := newTestStore(t, &fakeAPI{})
	s.HandleAuctionUpsert([]byte(`{"id":"u1","title":"Watch","status":"upcoming"}`))
	s.UpdateCountdown("u1", 2)

	assert.Empty(t, s.Tick(context.Background()))
	promoted := s.Tick(context.Background())

	require.Equal(t, []string{"u1"}, promoted)
	assert.Empty(t, s.Auctions(models.StatusUpcoming))
	require.Len(t, s.Auctions(models.StatusLive), 1)
	a, _ := s.Auction("u1")
	assert.Equal(t, models.StatusLive, a.Status)
}

func TestTick_PersistsSnapshots(t *testing.T) {
	tm := newMemTimers()
	s := New(&fakeAPI{}, nil, newMemParts(), tm, 0, logging.NewNoopLogger())
	s.HandleAuctionUpsert([]byte(`{"id":"u1","status":"upcoming"}`))
	s.UpdateCountdown("u1", 10)

	s.Tick(context.Background())

	snaps, err := tm.All(context.Background())
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, 9, snaps[0].RemainingSeconds)
}

func TestTick_DeletesSnapshotOnPromotion(t *testing.T) {
	tm := newMemTimers()
	s := New(&fakeAPI{}, nil, newMemParts(), tm, 0, logging.NewNoopLogger())
	s.HandleAuctionUpsert([]byte(`{"id":"u1","status":"upcoming"}`))
	s.UpdateCountdown("u1", 1)

	s.Tick(context.Background())

	snaps, err := tm.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snaps)
}

func TestUpdateCountdown_ZeroPromotesImmediately(t *testing.T) {
	s := newTestStore(t, &fakeAPI{})
	s.HandleAuctionUpsert([]byte(`{"id":"u1","status":"upcoming"}`))

	s.UpdateCountdown("u1", 0)

	assert.Len(t, s.Auctions(models.StatusLive), 1)
}

func TestTrack_InsertsFetchedAuction(t *testing.T) {
	s := newTestStore(t, &fakeAPI{})

	s.Track(liveAuction("a1", 45))

	a, ok := s.Auction("a1")
	require.True(t, ok)
	assert.Equal(t, 45, a.CurrentBid)
	// Derived values see the tracked record, not the unknown-id fallback.
	assert.Equal(t, 47, s.NextBidAmount("a1"))
}

func TestTrack_UpcomingGetsCountdown(t *testing.T) {
	now := time.Now()
	s := newTestStore(t, &fakeAPI{})
	s.now = func() time.Time { return now }

	s.Track(&models.Auction{ID: "u1", Status: models.StatusUpcoming, StartTime: now.Add(time.Minute)})

	assert.Equal(t, 60, s.Countdown("u1"))
}

func TestTrack_NilAndBlankIgnored(t *testing.T) {
	s := newTestStore(t, &fakeAPI{})

	s.Track(nil)
	s.Track(&models.Auction{Status: models.StatusLive})

	assert.Empty(t, s.Auctions(models.StatusLive))
}

func TestMoveToEnded(t *testing.T) {
	s := newTestStore(t, &fakeAPI{})
	seedLive(s, liveAuction("a1", 45))

	require.True(t, s.MoveToEnded("a1"))

	assert.Empty(t, s.Auctions(models.StatusLive))
	assert.Len(t, s.Auctions(models.StatusEnded), 1)
}

// Package store holds the process-wide application state: the authenticated
// user, the coin wallet, the three auction buckets, per-auction countdowns
// and the user's participation. Screens read from it; every mutation goes
// through one of its operations.
//
// Consistency rule: the local wallet value is never the source of truth
// after a server-backed mutation. Every successful join or bid refetches the
// user record and overwrites the local balance with whatever the backend
// says.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/soukbid/soukbid-cli/internal/client/api"
	"github.com/soukbid/soukbid-cli/internal/client/models"
	"github.com/soukbid/soukbid-cli/internal/client/repositories/participation"
	"github.com/soukbid/soukbid-cli/internal/client/repositories/timers"
	"github.com/soukbid/soukbid-cli/internal/logging"
	"github.com/soukbid/soukbid-cli/internal/validx"
)

// defaultCoins is the wallet value shown before any server state is known.
const defaultCoins = 500

// bidStep is the fixed increment over the current highest bid.
const bidStep = 2

// Emitter is the slice of the push client the store uses for outbound
// signals. Nil is allowed; emission is best-effort anyway.
type Emitter interface {
	PlaceBid(auctionID string, amount int) error
}

// Store is the shared state container. One instance is created at startup
// and lives until process exit. All fields behind mu; push events arrive on
// the read-loop goroutine, so access is synchronized even though the UI
// itself is sequential.
type Store struct {
	api     api.Client
	emitter Emitter
	parts   participation.Repository
	timers  timers.Repository
	log     logging.Logger
	now     func() time.Time

	mu         sync.Mutex
	user       *models.User
	coins      int
	initials   string
	loggedIn   bool
	lastErr    string
	cols       Collections
	countdowns map[string]int
	joined     map[string]struct{}
	bids       map[string]int
}

// New wires a store. emitter may be nil.
func New(client api.Client, emitter Emitter, parts participation.Repository, tm timers.Repository, listCap int, log logging.Logger) *Store {
	return &Store{
		api:        client,
		emitter:    emitter,
		parts:      parts,
		timers:     tm,
		log:        log.With("component", "store"),
		now:        time.Now,
		coins:      defaultCoins,
		cols:       NewCollections(listCap),
		countdowns: make(map[string]int),
		joined:     make(map[string]struct{}),
		bids:       make(map[string]int),
	}
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type registerInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func (s *Store) setErr(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

// applyUser replaces the session identity wholesale: user record, wallet
// coins and derived initials.
func (s *Store) applyUser(u *models.User) {
	s.mu.Lock()
	s.user = u
	s.coins = u.WalletBalance
	s.initials = u.Initials()
	s.loggedIn = true
	s.mu.Unlock()
}

// clearParticipation wipes the local join/bid cache, both in memory and on
// disk. Called on login, register and logout so records from a previous
// account never leak into the next session.
func (s *Store) clearParticipation(ctx context.Context) {
	s.mu.Lock()
	s.joined = make(map[string]struct{})
	s.bids = make(map[string]int)
	s.mu.Unlock()

	if err := s.parts.Clear(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear participation cache", "error", err)
	}
	if err := s.timers.Clear(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear timer snapshots", "error", err)
	}
}

// Login authenticates and, on success, replaces the session state. On
// failure the store is left untouched apart from the error string.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	if err := validx.Get().Struct(loginInput{Email: email, Password: password}); err != nil {
		s.setErr("invalid credentials: email and password are required")
		return false
	}

	result, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.setErr(err.Error())
		return false
	}

	s.applyUser(&result.User)
	s.clearParticipation(ctx)
	s.setErr("")
	s.log.Info(ctx, "logged in", "email", email)
	return true
}

// Register creates an account and logs the new user in.
func (s *Store) Register(ctx context.Context, name, email, password, phone string) bool {
	if err := validx.Get().Struct(registerInput{Name: name, Email: email, Password: password}); err != nil {
		s.setErr("invalid registration data: " + err.Error())
		return false
	}

	result, err := s.api.Register(ctx, name, email, password, phone)
	if err != nil {
		s.setErr(err.Error())
		return false
	}

	s.applyUser(&result.User)
	s.clearParticipation(ctx)
	s.setErr("")
	s.log.Info(ctx, "registered", "email", email)
	return true
}

// Logout revokes the session server-side (best effort, errors swallowed)
// and resets user, wallet, participation and error state to defaults.
func (s *Store) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Warn(ctx, "logout call failed", "error", err)
	}

	s.mu.Lock()
	s.user = nil
	s.coins = defaultCoins
	s.initials = ""
	s.loggedIn = false
	s.lastErr = ""
	s.mu.Unlock()

	s.clearParticipation(ctx)
}

// refetchUser overwrites local wallet state with the server's copy. Failures
// are logged and otherwise ignored; the next mutation refetches again.
func (s *Store) refetchUser(ctx context.Context) {
	u, err := s.api.CurrentUser(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to refresh user after mutation", "error", err)
		return
	}
	s.applyUser(u)
}

// JoinAuction pays the entry fee and registers the user as a participant.
// Joining an auction twice is a silent success with no network call.
func (s *Store) JoinAuction(ctx context.Context, auctionID string, entryFee int) bool {
	s.mu.Lock()
	loggedIn := s.loggedIn
	_, already := s.joined[auctionID]
	s.mu.Unlock()

	if !loggedIn {
		s.setErr("must be logged in to join auction")
		return false
	}
	if already {
		return true
	}

	if err := s.api.JoinAuction(ctx, auctionID); err != nil {
		s.setErr(err.Error())
		return false
	}

	s.mu.Lock()
	s.joined[auctionID] = struct{}{}
	s.lastErr = ""
	s.mu.Unlock()

	if err := s.parts.MarkJoined(ctx, auctionID); err != nil {
		s.log.Warn(ctx, "failed to persist join", "auction", auctionID, "error", err)
	}

	s.refetchUser(ctx)
	return true
}

// PlaceBid submits a bid for an auction the user already joined. Not being
// logged in or not participating fails fast without touching the network.
func (s *Store) PlaceBid(ctx context.Context, auctionID string, amount int) bool {
	s.mu.Lock()
	loggedIn := s.loggedIn
	_, participating := s.joined[auctionID]
	s.mu.Unlock()

	if !loggedIn {
		s.setErr("must be logged in to place bid")
		return false
	}
	if !participating {
		s.setErr("must join auction before bidding")
		return false
	}

	if err := s.api.PlaceBid(ctx, auctionID, amount); err != nil {
		s.setErr(err.Error())
		return false
	}

	s.mu.Lock()
	s.bids[auctionID] = amount
	s.lastErr = ""
	s.mu.Unlock()

	if err := s.parts.SetBid(ctx, auctionID, amount); err != nil {
		s.log.Warn(ctx, "failed to persist bid", "auction", auctionID, "error", err)
	}

	if s.emitter != nil {
		if err := s.emitter.PlaceBid(auctionID, amount); err != nil {
			s.log.Debug(ctx, "push bid emit failed", "auction", auctionID, "error", err)
		}
	}

	s.refetchUser(ctx)
	return true
}

// AddCoins credits the wallet locally with no backend call. Used only to
// reflect a completed top-up after the payment-confirmation step; the next
// server round-trip overwrites it with the authoritative balance.
func (s *Store) AddCoins(amount int) {
	s.mu.Lock()
	s.coins += amount
	s.mu.Unlock()
}

// IsParticipating reports whether the user joined the auction.
func (s *Store) IsParticipating(auctionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.joined[auctionID]
	return ok
}

// UserBidFor returns the user's own recorded bid for the auction, 0 if none.
func (s *Store) UserBidFor(auctionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bids[auctionID]
}

// NextBidAmount is the amount the user would pay next: the current highest
// bid plus the fixed step, floored at the user's own recorded bid so a stale
// highest value never quotes the user less than they already stand at.
func (s *Store) NextBidAmount(auctionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := bidStep
	if a, _, ok := s.cols.Find(auctionID); ok {
		next = a.CurrentBid + bidStep
	}
	if own := s.bids[auctionID]; own > next {
		next = own
	}
	return next
}

// LoggedIn reports whether a user session is active.
func (s *Store) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

// Coins returns the displayed wallet balance.
func (s *Store) Coins() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coins
}

// Initials returns the derived avatar initials, "" when logged out.
func (s *Store) Initials() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initials
}

// User returns a copy of the authenticated user, nil when logged out.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Err returns the last operation error, "" when the last operation
// succeeded.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func copyAuctions(in []*models.Auction) []models.Auction {
	out := make([]models.Auction, 0, len(in))
	for _, a := range in {
		out = append(out, *a)
	}
	return out
}

// Auctions returns a copy of one status bucket.
func (s *Store) Auctions(status models.Status) []models.Auction {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.cols.bucket(status)
	if b == nil {
		return nil
	}
	return copyAuctions(*b)
}

// Auction returns a copy of one auction, wherever it lives.
func (s *Store) Auction(id string) (models.Auction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, _, ok := s.cols.Find(id)
	if !ok {
		return models.Auction{}, false
	}
	return *a, true
}

// Countdown returns the remaining seconds until start for an upcoming
// auction, 0 when unknown.
func (s *Store) Countdown(auctionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countdowns[auctionID]
}

// Package push maintains the persistent websocket connection to the auction
// backend and fans incoming named events out to local listeners.
//
// Delivery is best-effort: no acknowledgements, no replay after a reconnect.
// A client that was briefly disconnected may miss updates until the next full
// list re-fetch.
package push

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sethvargo/go-retry"

	"github.com/soukbid/soukbid-cli/internal/logging"
)

// Server-sent event names.
const (
	EventAuctionCreated       = "auction:created"
	EventAuctionUpdated       = "auction:updated"
	EventAuctionDeleted       = "auction:deleted"
	EventAuctionStarted       = "auction_started"
	EventAuctionEnded         = "auction_ended"
	EventBidPlaced            = "bid_placed"
	EventAuctionStatusChanged = "auction_status_changed"
	EventAuctionTimeUpdate    = "auction_time_update"
	EventAuctionsUpdated      = "auctions_updated"
)

// Locally synthesized event names.
const (
	EventConnected          = "connected"
	EventDisconnected       = "disconnected"
	EventMaxAttemptsReached = "max_reconnect_attempts_reached"
)

// Client-sent event names.
const (
	eventPlaceBid     = "place_bid"
	eventJoinAuction  = "join_auction"
	eventLeaveAuction = "leave_auction"
)

// frame is the wire format in both directions: a named event plus an
// untyped JSON payload.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Handler receives the raw payload of one event occurrence.
type Handler func(data json.RawMessage)

type subscription struct {
	id int
	fn Handler
}

// Client is the push-event client. Listener registration is many-to-many:
// one event fans out to every registered handler in registration order.
type Client struct {
	url         string
	dialTimeout time.Duration
	maxAttempts int
	baseDelay   time.Duration
	log         logging.Logger

	mu        sync.Mutex
	conn      *websocket.Conn
	listeners map[string][]subscription
	nextID    int
	closed    bool
}

// Options bound the connection behavior. Zero values fall back to the
// original client's constants: 20s dial timeout, 5 attempts, 1s base delay.
type Options struct {
	DialTimeout time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
}

func NewClient(wsURL string, opts Options, log logging.Logger) *Client {
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 20 * time.Second
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 5
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = time.Second
	}
	return &Client{
		url:         wsURL,
		dialTimeout: opts.DialTimeout,
		maxAttempts: opts.MaxAttempts,
		baseDelay:   opts.BaseDelay,
		log:         log.With("component", "push"),
		listeners:   make(map[string][]subscription),
	}
}

// On registers a handler for the named event and returns a subscription id
// usable with Off.
func (c *Client) On(event string, h Handler) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	c.listeners[event] = append(c.listeners[event], subscription{id: c.nextID, fn: h})
	return c.nextID
}

// Off removes one subscription. Unknown ids are ignored.
func (c *Client) Off(event string, id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	subs := c.listeners[event]
	for i, s := range subs {
		if s.id == id {
			c.listeners[event] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// OffAll drops every handler for the named event.
func (c *Client) OffAll(event string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.listeners, event)
}

// dispatch fans the event out to a snapshot of the current handlers, in
// registration order.
func (c *Client) dispatch(event string, data json.RawMessage) {
	c.mu.Lock()
	subs := make([]subscription, len(c.listeners[event]))
	copy(subs, c.listeners[event])
	c.mu.Unlock()

	for _, s := range subs {
		s.fn(data)
	}
}

// Connect dials the endpoint with a guest credential and starts the read
// loop. It returns once the initial connection is established; reconnection
// after later drops happens in the background.
func (c *Client) Connect(ctx context.Context) error {
	if err := c.dial(ctx); err != nil {
		return err
	}
	return nil
}

func (c *Client) dial(ctx context.Context) error {
	u, err := url.Parse(c.url)
	if err != nil {
		return fmt.Errorf("invalid push endpoint: %w", err)
	}
	q := u.Query()
	q.Set("token", "guest")
	u.RawQuery = q.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: c.dialTimeout}
	conn, _, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("push dial failed: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.log.Info(ctx, "push channel connected", "url", c.url)
	c.dispatch(EventConnected, nil)

	go c.readLoop(ctx, conn)
	return nil
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			c.mu.Lock()
			closed := c.closed
			c.mu.Unlock()

			if closed || ctx.Err() != nil {
				return
			}

			c.log.Warn(ctx, "push channel dropped", "error", err)
			c.dispatch(EventDisconnected, nil)
			c.reconnect(ctx)
			return
		}
		if f.Event == "" {
			continue
		}
		c.dispatch(f.Event, f.Data)
	}
}

// reconnect retries the dial with linearly increasing delay
// (attempt × base delay) up to the attempt cap. After exhausting the
// attempts it emits a local event and gives up; no further reconnection
// is attempted automatically.
func (c *Client) reconnect(ctx context.Context) {
	attempt := 0
	backoff := retry.BackoffFunc(func() (time.Duration, bool) {
		if attempt >= c.maxAttempts {
			return 0, true
		}
		return time.Duration(attempt) * c.baseDelay, false
	})

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := c.dial(ctx); err != nil {
			c.log.Warn(ctx, "push reconnect failed", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		c.log.Error(ctx, "push reconnect attempts exhausted", "attempts", c.maxAttempts)
		c.dispatch(EventMaxAttemptsReached, nil)
	}
}

// send writes one frame. Errors are returned to the caller; the read loop
// owns reconnection.
func (c *Client) send(event string, data any) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return fmt.Errorf("push channel not connected")
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", event, err)
	}
	return conn.WriteJSON(frame{Event: event, Data: payload})
}

// PlaceBid emits the user's bid over the push channel, in addition to the
// HTTP call the store makes. The server treats the HTTP call as the source
// of truth.
func (c *Client) PlaceBid(auctionID string, amount int) error {
	return c.send(eventPlaceBid, map[string]any{"auction_id": auctionID, "amount": amount})
}

// JoinRoom subscribes to per-auction updates for one auction.
func (c *Client) JoinRoom(auctionID string) error {
	return c.send(eventJoinAuction, map[string]string{"auction_id": auctionID})
}

// LeaveRoom unsubscribes from per-auction updates.
func (c *Client) LeaveRoom(auctionID string) error {
	return c.send(eventLeaveAuction, map[string]string{"auction_id": auctionID})
}

// Connected reports whether a connection is currently open.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil && !c.closed
}

// Close shuts the connection down for good; no reconnection follows.
func (c *Client) Close() error {
	c.mu.Lock()
	c.closed = true
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		return conn.Close()
	}
	return nil
}

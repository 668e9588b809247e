package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soukbid/soukbid-cli/internal/logging"
)

var upgrader = websocket.Upgrader{}

// pushServer is a scripted websocket endpoint for client tests.
type pushServer struct {
	srv *httptest.Server

	mu        sync.Mutex
	rejecting bool
	rejected  int
	conns     []*websocket.Conn
	tokens    []string
	frames    []frame
}

func newPushServer(t *testing.T) *pushServer {
	t.Helper()
	ps := &pushServer{}
	ps.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ps.mu.Lock()
		if ps.rejecting {
			ps.rejected++
			ps.mu.Unlock()
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		ps.mu.Unlock()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		ps.mu.Lock()
		ps.conns = append(ps.conns, conn)
		ps.tokens = append(ps.tokens, r.URL.Query().Get("token"))
		ps.mu.Unlock()

		for {
			var f frame
			if err := conn.ReadJSON(&f); err != nil {
				return
			}
			ps.mu.Lock()
			ps.frames = append(ps.frames, f)
			ps.mu.Unlock()
		}
	}))
	t.Cleanup(ps.srv.Close)
	return ps
}

func (ps *pushServer) wsURL() string {
	return "ws" + strings.TrimPrefix(ps.srv.URL, "http")
}

func (ps *pushServer) emit(t *testing.T, event string, data any) {
	t.Helper()
	payload, err := json.Marshal(data)
	require.NoError(t, err)
	ps.mu.Lock()
	conn := ps.conns[len(ps.conns)-1]
	ps.mu.Unlock()
	require.NoError(t, conn.WriteJSON(frame{Event: event, Data: payload}))
}

func (ps *pushServer) dropAll() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for _, conn := range ps.conns {
		conn.Close()
	}
}

func (ps *pushServer) connCount() int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return len(ps.conns)
}

func (ps *pushServer) reject() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.rejecting = true
}

func (ps *pushServer) rejectedDials() int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.rejected
}

func (ps *pushServer) seenTokens() []string {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	out := make([]string, len(ps.tokens))
	copy(out, ps.tokens)
	return out
}

func (ps *pushServer) receivedFrames() []frame {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	out := make([]frame, len(ps.frames))
	copy(out, ps.frames)
	return out
}

func newTestPushClient(url string) *Client {
	return NewClient(url, Options{
		DialTimeout: 2 * time.Second,
		MaxAttempts: 3,
		BaseDelay:   10 * time.Millisecond,
	}, logging.NewNoopLogger())
}

func waitFor(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestOn_FanOutInRegistrationOrder(t *testing.T) {
	c := newTestPushClient("ws://unused")
	var order []string
	c.On("x", func(json.RawMessage) { order = append(order, "first") })
	c.On("x", func(json.RawMessage) { order = append(order, "second") })

	c.dispatch("x", nil)

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestOff_RemovesOneSubscription(t *testing.T) {
	c := newTestPushClient("ws://unused")
	var calls int
	id := c.On("x", func(json.RawMessage) { calls++ })
	c.On("x", func(json.RawMessage) { calls++ })

	c.Off("x", id)
	c.dispatch("x", nil)

	assert.Equal(t, 1, calls)
}

func TestOff_UnknownIDIgnored(t *testing.T) {
	c := newTestPushClient("ws://unused")
	c.On("x", func(json.RawMessage) {})

	c.Off("x", 999)
	c.Off("y", 1)
}

func TestOffAll(t *testing.T) {
	c := newTestPushClient("ws://unused")
	var calls int
	c.On("x", func(json.RawMessage) { calls++ })
	c.On("x", func(json.RawMessage) { calls++ })

	c.OffAll("x")
	c.dispatch("x", nil)

	assert.Equal(t, 0, calls)
}

func TestConnect_DialsWithGuestToken(t *testing.T) {
	ps := newPushServer(t)
	c := newTestPushClient(ps.wsURL())
	defer c.Close()

	connected := make(chan struct{})
	c.On(EventConnected, func(json.RawMessage) { close(connected) })

	require.NoError(t, c.Connect(context.Background()))
	waitFor(t, connected, "connected event")

	assert.True(t, c.Connected())
	require.Eventually(t, func() bool {
		return len(ps.seenTokens()) == 1
	}, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"guest"}, ps.seenTokens())
}

func TestConnect_BadEndpoint(t *testing.T) {
	c := newTestPushClient("ws://127.0.0.1:1")

	err := c.Connect(context.Background())

	assert.Error(t, err)
	assert.False(t, c.Connected())
}

func TestReadLoop_DeliversServerEvents(t *testing.T) {
	ps := newPushServer(t)
	c := newTestPushClient(ps.wsURL())
	defer c.Close()

	got := make(chan json.RawMessage, 1)
	c.On(EventBidPlaced, func(data json.RawMessage) { got <- data })
	require.NoError(t, c.Connect(context.Background()))

	ps.emit(t, EventBidPlaced, map[string]any{"auctionId": "a1", "newBid": 47})

	select {
	case data := <-got:
		assert.Contains(t, string(data), `"newBid":47`)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for bid_placed")
	}
}

func TestPlaceBid_WritesFrame(t *testing.T) {
	ps := newPushServer(t)
	c := newTestPushClient(ps.wsURL())
	defer c.Close()
	require.NoError(t, c.Connect(context.Background()))

	require.NoError(t, c.PlaceBid("a1", 47))

	require.Eventually(t, func() bool {
		return len(ps.receivedFrames()) == 1
	}, 3*time.Second, 10*time.Millisecond)

	f := ps.receivedFrames()[0]
	assert.Equal(t, "place_bid", f.Event)
	assert.Contains(t, string(f.Data), `"auction_id":"a1"`)
	assert.Contains(t, string(f.Data), `"amount":47`)
}

func TestSend_NotConnected(t *testing.T) {
	c := newTestPushClient("ws://unused")

	err := c.JoinRoom("a1")

	assert.Error(t, err)
}

func TestReconnect_AfterDrop(t *testing.T) {
	ps := newPushServer(t)
	c := newTestPushClient(ps.wsURL())
	defer c.Close()

	disconnected := make(chan struct{})
	reconnected := make(chan struct{})
	c.On(EventDisconnected, func(json.RawMessage) { close(disconnected) })
	require.NoError(t, c.Connect(context.Background()))

	c.On(EventConnected, func(json.RawMessage) { close(reconnected) })
	ps.dropAll()

	waitFor(t, disconnected, "disconnected event")
	waitFor(t, reconnected, "reconnect")
	require.Eventually(t, func() bool {
		return ps.connCount() == 2
	}, 3*time.Second, 10*time.Millisecond)
}

func TestReconnect_GivesUpAfterMaxAttempts(t *testing.T) {
	ps := newPushServer(t)
	c := newTestPushClient(ps.wsURL())
	defer c.Close()

	gaveUp := make(chan struct{})
	c.On(EventMaxAttemptsReached, func(json.RawMessage) { close(gaveUp) })
	require.NoError(t, c.Connect(context.Background()))

	// Refuse every dial from now on, then drop the live connection.
	ps.reject()
	ps.dropAll()

	waitFor(t, gaveUp, "max_reconnect_attempts_reached event")
	assert.Equal(t, 3, ps.rejectedDials(), "give up after exactly the configured attempt count")
}

func TestClose_StopsReconnection(t *testing.T) {
	ps := newPushServer(t)
	c := newTestPushClient(ps.wsURL())

	var mu sync.Mutex
	var disconnects int
	c.On(EventDisconnected, func(json.RawMessage) {
		mu.Lock()
		disconnects++
		mu.Unlock()
	})
	require.NoError(t, c.Connect(context.Background()))

	require.NoError(t, c.Close())
	time.Sleep(100 * time.Millisecond)

	assert.False(t, c.Connected())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, disconnects)
	assert.Equal(t, 1, ps.connCount())
}

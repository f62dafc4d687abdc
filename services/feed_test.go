package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

var feedTestUpgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// newFeedServer serves a WebSocket endpoint that subscribes every connection
// to the given game's feed. Returns the ws:// URL to dial.
func newFeedServer(t *testing.T, feed *Feed, gameID string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := feedTestUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		feed.Subscribe(NewFeedClient(feed, gameID, 1, conn))
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func subscriberCount(f *Feed, gameID string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.byGame[gameID])
}

func TestFeedBroadcastReachesSubscriber(t *testing.T) {
	feed := NewFeed()
	url := newFeedServer(t, feed, "G10001")

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return subscriberCount(feed, "G10001") == 1
	}, time.Second, 10*time.Millisecond)

	feed.Broadcast("G10001", map[string]string{"status": "waiting"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Contains(t, string(msg), "waiting")
}

func TestFeedBroadcastSurvivesDisconnects(t *testing.T) {
	feed := NewFeed()
	url := newFeedServer(t, feed, "G10002")

	conns := make([]*websocket.Conn, 0, 8)
	for i := 0; i < 8; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		conns = append(conns, conn)
	}
	require.Eventually(t, func() bool {
		return subscriberCount(feed, "G10002") == 8
	}, time.Second, 10*time.Millisecond)

	// Broadcast continuously while every client disconnects. A send on an
	// unsubscribed client's closed channel would panic the whole process.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			feed.Broadcast("G10002", map[string]int{"draw": i})
		}
	}()
	for _, conn := range conns {
		conn.Close()
	}
	<-done

	require.Eventually(t, func() bool {
		return subscriberCount(feed, "G10002") == 0
	}, time.Second, 10*time.Millisecond)

	// An empty feed broadcast is a no-op, not an error.
	feed.Broadcast("G10002", map[string]string{"status": "finished"})
}

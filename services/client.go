package services

import (
	"sync"

	"github.com/gorilla/websocket"
)

// FeedClient is one WebSocket subscriber of a game feed.
type FeedClient struct {
	gameID string
	userID int64
	conn   *websocket.Conn
	feed   *Feed
	send   chan []byte
	once   sync.Once
}

func NewFeedClient(feed *Feed, gameID string, userID int64, conn *websocket.Conn) *FeedClient {
	return &FeedClient{
		gameID: gameID,
		userID: userID,
		conn:   conn,
		feed:   feed,
		send:   make(chan []byte, 32),
	}
}

func (c *FeedClient) Close() {
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

// readPump drains incoming frames; the feed is one-way, reads only keep the
// connection alive and detect disconnects.
func (c *FeedClient) readPump() {
	defer c.feed.unsubscribe(c)

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.feed.log.Debugf("game %s: user %d read error: %v", c.gameID, c.userID, err)
			}
			return
		}
	}
}

func (c *FeedClient) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			c.feed.log.Debugf("game %s: user %d write error: %v", c.gameID, c.userID, err)
			return
		}
	}
}

package services

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/zebiplay/bingo-backend/utils/logger"
)

// Feed fans game snapshots out to WebSocket subscribers. It is a read-only
// side channel: the game engine stays request-driven and just hands the feed
// a snapshot after each state change.
type Feed struct {
	mu     sync.RWMutex
	byGame map[string]map[*FeedClient]bool
	log    *zap.SugaredLogger
}

func NewFeed() *Feed {
	return &Feed{
		byGame: make(map[string]map[*FeedClient]bool),
		log:    logger.Named("feed"),
	}
}

// Subscribe registers a client for one game's updates and starts its pumps.
func (f *Feed) Subscribe(c *FeedClient) {
	f.mu.Lock()
	clients, ok := f.byGame[c.gameID]
	if !ok {
		clients = make(map[*FeedClient]bool)
		f.byGame[c.gameID] = clients
	}
	clients[c] = true
	f.mu.Unlock()

	go c.writePump()
	go c.readPump()

	f.log.Debugf("game %s: subscriber user=%d joined", c.gameID, c.userID)
}

// unsubscribe removes the client and closes it while still holding the feed
// lock, so a concurrent Broadcast can never send on the closed channel.
func (f *Feed) unsubscribe(c *FeedClient) {
	f.mu.Lock()
	if clients, ok := f.byGame[c.gameID]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(f.byGame, c.gameID)
		}
	}
	c.Close()
	f.mu.Unlock()
}

// Broadcast sends the snapshot to every subscriber of the game. Slow clients
// get dropped messages rather than blocking the engine. Sends stay under the
// read lock: they never block, and the lock keeps them ordered against
// unsubscribe closing the channel.
func (f *Feed) Broadcast(gameID string, snapshot interface{}) {
	b, err := json.Marshal(snapshot)
	if err != nil {
		f.log.Errorf("game %s: marshal snapshot: %v", gameID, err)
		return
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	for c := range f.byGame[gameID] {
		select {
		case c.send <- b:
		default:
			f.log.Debugf("game %s: dropping update to user %d", gameID, c.userID)
		}
	}
}

package services

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	feedWriteWait = 10 * time.Second
	// Must stay under the read side's pong wait or subscribers get
	// disconnected between pings.
	feedPingPeriod = 54 * time.Second
	feedSendBuffer = 16
)

// FeedClient owns all writes to one subscriber connection. Broadcasts are
// queued on send and drained by WritePump, the connection's only writer;
// nothing else may call Write methods on the conn after the pump starts.
type FeedClient struct {
	projectID string
	conn      *websocket.Conn
	send      chan interface{}
}

// Per-project subscriber registry for the live activity feed.
var (
	projectClients   = make(map[string]map[*FeedClient]bool)
	projectClientsMu sync.RWMutex
)

// RegisterFeedClient subscribes a connection to a project's activity feed.
func RegisterFeedClient(projectID string, conn *websocket.Conn) *FeedClient {
	client := &FeedClient{
		projectID: projectID,
		conn:      conn,
		send:      make(chan interface{}, feedSendBuffer),
	}

	projectClientsMu.Lock()
	if projectClients[projectID] == nil {
		projectClients[projectID] = make(map[*FeedClient]bool)
	}
	projectClients[projectID][client] = true
	projectClientsMu.Unlock()

	return client
}

// UnregisterFeedClient removes a subscriber, dropping the project bucket
// once it empties. The send channel is left open; a broadcast racing the
// unregister queues an event nobody will drain, which is fine.
func UnregisterFeedClient(client *FeedClient) {
	projectClientsMu.Lock()
	if clients, exists := projectClients[client.projectID]; exists {
		delete(clients, client)
		if len(clients) == 0 {
			delete(projectClients, client.projectID)
		}
	}
	projectClientsMu.Unlock()
}

// BroadcastEvent queues an event for every subscriber of the project. A
// subscriber whose buffer is full loses the event rather than blocking
// the request that produced it.
func BroadcastEvent(projectID string, event interface{}) {
	projectClientsMu.RLock()
	clients := make([]*FeedClient, 0, len(projectClients[projectID]))
	for client := range projectClients[projectID] {
		clients = append(clients, client)
	}
	projectClientsMu.RUnlock()

	for _, client := range clients {
		select {
		case client.send <- event:
		default:
			log.Printf("Dropping activity event for a slow subscriber on project %s", projectID)
		}
	}
}

// WritePump serializes queued events and keepalive pings onto the
// connection. It exits when done is closed or a write fails; on write
// failure it closes the conn so the read loop unblocks too.
func (c *FeedClient) WritePump(done <-chan struct{}) {
	ticker := time.NewTicker(feedPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(feedWriteWait)); err != nil {
				log.Printf("Failed to set write deadline for project %s: %v", c.projectID, err)
				c.conn.Close()
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				log.Printf("Failed to write event for project %s: %v", c.projectID, err)
				c.conn.Close()
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(feedWriteWait)); err != nil {
				log.Printf("Failed to set write deadline for project %s: %v", c.projectID, err)
				c.conn.Close()
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Ping failed for project %s: %v", c.projectID, err)
				c.conn.Close()
				return
			}
		case <-done:
			return
		}
	}
}

package websocket

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"sync/atomic"

	"messageboard/internal/utils"

	"go.uber.org/zap"
)

const sendBuffer = 16

type ClientConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteJSON(v interface{}) error
	Close() error
}

// Client is one websocket connection. An empty Board receives events of
// every board.
type Client struct {
	hub   *Hub
	conn  ClientConn
	send  chan utils.Event
	ID    string
	Board string
}

func generateClientID() string {
	bytes := make([]byte, 6)
	if _, err := rand.Read(bytes); err != nil {
		return "xxxxx"
	}
	return base64.URLEncoding.EncodeToString(bytes)
}

// Hub fans board events out to the connected clients.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	events     <-chan utils.Event
	done       chan struct{}
	count      atomic.Int64
	logger     *zap.SugaredLogger
}

func NewHub(logger *zap.Logger, eventBus *utils.EventBus) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		events:     eventBus.SubscribeCh(),
		done:       make(chan struct{}),
		logger:     logger.Sugar(),
	}
}

func (h *Hub) Run(ctx context.Context) {
	h.logger.Info("WebSocket Hub started")
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			h.logger.Info("WebSocket Hub stopped")
			return

		case client := <-h.register:
			h.clients[client] = true
			h.count.Store(int64(len(h.clients)))
			h.logger.Infow("Client connected",
				"client_id", client.ID,
				"board", client.Board,
				"clients_count", len(h.clients),
			)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				h.logger.Infow("Client disconnected",
					"client_id", client.ID,
					"clients_count", len(h.clients),
				)
			}

		case event := <-h.events:
			for client := range h.clients {
				if client.Board != "" && client.Board != event.Board {
					continue
				}
				select {
				case client.send <- event:
				default:
					h.logger.Warnw("Dropping slow client", "client_id", client.ID)
					h.drop(client)
				}
			}
		}
	}
}

// Attach registers conn and starts writing events to it.
func (h *Hub) Attach(conn ClientConn, board string) *Client {
	client := &Client{
		hub:   h,
		conn:  conn,
		send:  make(chan utils.Event, sendBuffer),
		ID:    generateClientID(),
		Board: board,
	}
	select {
	case h.register <- client:
		go client.writePump()
	case <-h.done:
		conn.Close()
	}
	return client
}

func (h *Hub) Detach(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	h.count.Store(int64(len(h.clients)))
	close(client.send)
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for event := range c.send {
		if err := c.conn.WriteJSON(event); err != nil {
			c.hub.logger.Debugw("WebSocket write failed", "client_id", c.ID, "error", err)
			return
		}
	}
}

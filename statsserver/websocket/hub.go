// Copyright (c) 2019 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package websocket manages live progress subscribers for the stats
// server, adapted from the teacher's stats_server/websocket package:
// same register/unregister/broadcast client manager shape, broadcasting
// trim-round progress snapshots instead of per-device hashrate rows.
package websocket

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Snapshot is one progress update, broadcast to every connected client
// as it happens.
type Snapshot struct {
	Round      uint   `json:"round"`
	AliveCount uint64 `json:"aliveCount"`
	ElapsedMS  int64  `json:"elapsedMs"`
	Status     string `json:"status,omitempty"`
}

type ClientManager struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
}

type client struct {
	id     string
	socket *websocket.Conn
	send   chan []byte
}

// Manager is the package-level hub, mirroring the teacher's package-level
// websocket.Manager singleton.
var Manager = &ClientManager{
	broadcast:  make(chan []byte),
	register:   make(chan *client),
	unregister: make(chan *client),
	clients:    make(map[*client]bool),
}

// Start runs the hub's event loop; call it once in a goroutine before
// serving /ws.
func (m *ClientManager) Start() {
	for {
		select {
		case c := <-m.register:
			m.clients[c] = true
		case c := <-m.unregister:
			if _, ok := m.clients[c]; ok {
				close(c.send)
				delete(m.clients, c)
			}
		case message := <-m.broadcast:
			for c := range m.clients {
				select {
				case c.send <- message:
				default:
					close(c.send)
					delete(m.clients, c)
				}
			}
		}
	}
}

// Broadcast pushes one progress snapshot to every connected client. It
// never blocks: when the hub loop is not ready to receive (for instance
// because Start has not been called), the snapshot is dropped.
func (m *ClientManager) Broadcast(snap Snapshot) {
	b, err := json.Marshal(snap)
	if err != nil {
		return
	}
	select {
	case m.broadcast <- b:
	default:
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// ServeWS upgrades the request to a websocket and registers it with
// Manager, mirroring the teacher's WsPage.
func ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	c := &client{id: uuid.New().String(), socket: conn, send: make(chan []byte, 8)}
	Manager.register <- c

	go c.write()
	go c.read()
}

func (c *client) write() {
	defer func() { _ = c.socket.Close() }()
	for message := range c.send {
		if err := c.socket.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = c.socket.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *client) read() {
	defer func() {
		Manager.unregister <- c
		_ = c.socket.Close()
	}()
	for {
		if _, _, err := c.socket.ReadMessage(); err != nil {
			return
		}
	}
}

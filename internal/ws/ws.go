// Package ws is the WebSocket session gateway. It owns connections and
// translation between wire messages and room operations; all game logic
// lives behind the room manager.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hokmlab/hokm/internal/engine"
	"github.com/hokmlab/hokm/internal/room"
)

const (
	sendBuffer   = 64
	pingInterval = 15 * time.Second
	writeTimeout = 5 * time.Second
)

// Msg is the wire envelope in both directions: a type tag and a JSON
// payload.
type Msg struct {
	T string          `json:"t"`
	M json.RawMessage `json:"m,omitempty"`
}

// Gateway upgrades HTTP requests and pumps messages between clients and
// the room manager.
type Gateway struct {
	mgr     *room.Manager
	log     *logrus.Logger
	origins []string
}

// New builds a gateway. origins is the allowlist of acceptable Origin
// patterns; empty means same-host only.
func New(mgr *room.Manager, log *logrus.Logger, origins []string) *Gateway {
	return &Gateway{mgr: mgr, log: log, origins: origins}
}

type client struct {
	id   string
	conn *websocket.Conn

	// mu guards send against a concurrent close: room broadcasts enqueue
	// from other goroutines (bot timers included) while the disconnect
	// path tears the client down.
	mu     sync.Mutex
	send   chan []byte
	closed bool

	// Set while the client is a member of a room. Owned by the reader
	// goroutine.
	roomCode string
	playerID string
}

// ServeHTTP upgrades the request and runs the connection until the
// client goes away.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: g.origins,
	})
	if err != nil {
		g.log.WithError(err).Warn("websocket accept failed")
		return
	}
	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	log := g.log.WithField("conn", c.id)
	log.Info("client connected")

	ctx := r.Context()
	go c.writer(ctx)

	c.enqueue(Msg{T: "welcome", M: marshal(map[string]any{
		"connectionId": c.id,
		"serverTime":   time.Now().UTC().Format(time.RFC3339),
	})})

	g.readLoop(ctx, c)

	// Leave first: once LeaveRoom returns the room no longer holds this
	// client's send func, so no broadcast can race the close below.
	g.leaveCurrent(c)
	c.closeSend()
	log.Info("client disconnected")
}

// writer drains the send channel onto the socket and keeps the
// connection alive with pings.
func (c *client) writer(ctx context.Context) {
	ping := time.NewTicker(pingInterval)
	defer func() {
		ping.Stop()
		_ = c.conn.Close(websocket.StatusNormalClosure, "bye")
	}()
	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				return
			}
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.conn.Write(wctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				return
			}
		case <-ping.C:
			if err := c.conn.Ping(ctx); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// enqueue hands a message to the writer without blocking. A client that
// cannot keep up loses messages rather than stalling the room; a client
// already torn down drops the message.
func (c *client) enqueue(m Msg) {
	data, err := json.Marshal(m)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// closeSend shuts the writer down exactly once.
func (c *client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// leaveCurrent detaches the client from its room, if any.
func (g *Gateway) leaveCurrent(c *client) {
	if c.roomCode == "" {
		return
	}
	if err := g.mgr.LeaveRoom(c.roomCode, c.playerID); err != nil &&
		!errors.Is(err, room.ErrRoomNotFound) && !errors.Is(err, room.ErrPlayerNotFound) {
		g.log.WithField("conn", c.id).WithError(err).Warn("leave room failed")
	}
	c.roomCode, c.playerID = "", ""
}

// sendFunc adapts the client to the room layer's fan-out contract.
func (c *client) sendFunc() room.SendFunc {
	return func(ev room.Event) {
		c.enqueue(Msg{T: ev.Type, M: marshal(ev.Payload)})
	}
}

func marshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}

func (g *Gateway) readLoop(ctx context.Context, c *client) {
	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			return
		}
		var m Msg
		if err := json.Unmarshal(data, &m); err != nil {
			c.sendError("BAD_MESSAGE", err)
			continue
		}
		if err := g.dispatch(c, m); err != nil {
			c.sendError(errorCode(err), err)
		}
	}
}

func (g *Gateway) dispatch(c *client, m Msg) error {
	switch m.T {
	case "create-room":
		var req struct {
			Name       string `json:"name"`
			PlayerName string `json:"playerName"`
		}
		if err := json.Unmarshal(m.M, &req); err != nil {
			return err
		}
		g.leaveCurrent(c)
		code, pid := g.mgr.CreateRoom(req.Name, req.PlayerName, c.sendFunc())
		c.roomCode, c.playerID = code, pid
		return nil

	case "create-solo-room":
		var req struct {
			Name       string `json:"name"`
			PlayerName string `json:"playerName"`
			Difficulty string `json:"difficulty"`
		}
		if err := json.Unmarshal(m.M, &req); err != nil {
			return err
		}
		diff, err := parseDifficulty(req.Difficulty)
		if err != nil {
			return err
		}
		g.leaveCurrent(c)
		code, pid := g.mgr.CreateSoloRoom(req.Name, req.PlayerName, diff, c.sendFunc())
		c.roomCode, c.playerID = code, pid
		return nil

	case "join-room":
		var req struct {
			Code       string `json:"code"`
			PlayerName string `json:"playerName"`
		}
		if err := json.Unmarshal(m.M, &req); err != nil {
			return err
		}
		g.leaveCurrent(c)
		pid, err := g.mgr.JoinRoom(req.Code, req.PlayerName, c.sendFunc())
		if err != nil {
			return err
		}
		c.roomCode, c.playerID = req.Code, pid
		return nil

	case "leave-room":
		if c.roomCode == "" {
			return room.ErrRoomNotFound
		}
		err := g.mgr.LeaveRoom(c.roomCode, c.playerID)
		c.roomCode, c.playerID = "", ""
		return err

	case "player-ready":
		var req struct {
			Ready bool `json:"ready"`
		}
		if err := json.Unmarshal(m.M, &req); err != nil {
			return err
		}
		return g.mgr.SetReady(c.roomCode, c.playerID, req.Ready)

	case "set-hokm":
		var req struct {
			Suit string `json:"suit"`
		}
		if err := json.Unmarshal(m.M, &req); err != nil {
			return err
		}
		suit, err := engine.ParseSuit(req.Suit)
		if err != nil {
			return err
		}
		return g.mgr.SetHokm(c.roomCode, c.playerID, suit)

	case "play-card":
		var req struct {
			CardIndex int `json:"cardIndex"`
		}
		if err := json.Unmarshal(m.M, &req); err != nil {
			return err
		}
		return g.mgr.PlayCard(c.roomCode, c.playerID, req.CardIndex)

	case "chat-message":
		var req struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(m.M, &req); err != nil {
			return err
		}
		if req.Text == "" {
			return nil
		}
		return g.mgr.Chat(c.roomCode, c.playerID, req.Text)

	case "get-rooms":
		c.enqueue(Msg{T: "rooms", M: marshal(map[string]any{
			"list": g.mgr.ListRooms(),
		})})
		return nil

	case "pong":
		return nil
	}
	return errUnknownMessage
}

func (c *client) sendError(code string, err error) {
	c.enqueue(Msg{T: "error", M: marshal(map[string]any{
		"code":    code,
		"message": err.Error(),
	})})
}

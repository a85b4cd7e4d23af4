package room

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hokmlab/hokm/internal/bot"
	"github.com/hokmlab/hokm/internal/engine"
	"github.com/hokmlab/hokm/internal/history"
)

// Manager owns the room registry. Rooms are only reachable through its
// command operations; callers never hold engine references.
type Manager struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	log     *logrus.Logger
	history *history.Publisher
	diff    bot.Difficulty

	// botDelay and gameSeed are swappable so tests can run without real
	// timers or shuffles.
	botDelay func(bot.Difficulty) time.Duration
	gameSeed func() int64
}

// NewManager builds an empty registry. hist may be nil to disable action
// history.
func NewManager(log *logrus.Logger, hist *history.Publisher, diff bot.Difficulty) *Manager {
	return &Manager{
		rooms:    make(map[string]*Room),
		log:      log,
		history:  hist,
		diff:     diff,
		botDelay: bot.Difficulty.Delay,
		gameSeed: func() int64 { return 0 },
	}
}

func (m *Manager) register(name string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	code := newRoomCode()
	for m.rooms[code] != nil {
		code = newRoomCode()
	}
	r := &Room{
		id:   code,
		name: name,
		diff: m.diff,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		mgr:  m,
		log:  m.log.WithField("room", code),
	}
	m.rooms[code] = r
	return r
}

func (m *Manager) lookup(code string) (*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r := m.rooms[code]
	if r == nil {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

func (m *Manager) unregister(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, code)
}

// CreateRoom allocates a room with the creator as its unready host.
// Returns the room code and the creator's player id.
func (m *Manager) CreateRoom(roomName, playerName string, send SendFunc) (code, playerID string) {
	r := m.register(roomName)
	p := &Player{ID: uuid.NewString(), Name: playerName, send: send}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.players = append(r.players, p)
	r.hostID = p.ID
	r.sendTo(p, Event{Type: EventRoomCreated, Payload: map[string]any{
		"code": r.id,
		"name": r.name,
	}})
	r.sendTo(p, Event{Type: EventRoomState, Payload: r.roomState()})
	r.afterMutation("create-room", p.ID, map[string]any{"name": roomName})
	r.log.WithField("host", playerName).Info("room created")
	return r.id, p.ID
}

// CreateSoloRoom allocates a started-ready room holding the creator plus
// three ready bots, so the creator's own ready-up triggers the start.
func (m *Manager) CreateSoloRoom(roomName, playerName string, diff bot.Difficulty, send SendFunc) (code, playerID string) {
	r := m.register(roomName)
	p := &Player{ID: uuid.NewString(), Name: playerName, send: send}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.diff = diff
	r.players = append(r.players, p)
	r.hostID = p.ID
	for _, name := range []string{"Bot West", "Bot North", "Bot East"} {
		r.players = append(r.players, &Player{
			ID:    uuid.NewString(),
			Name:  name,
			Ready: true,
			Bot:   true,
		})
	}
	r.sendTo(p, Event{Type: EventRoomCreated, Payload: map[string]any{
		"code": r.id,
		"name": r.name,
	}})
	r.sendTo(p, Event{Type: EventRoomState, Payload: r.roomState()})
	r.afterMutation("create-solo-room", p.ID, map[string]any{
		"name":       roomName,
		"difficulty": string(diff),
	})
	r.log.WithFields(logrus.Fields{"host": playerName, "difficulty": diff}).Info("solo room created")
	return r.id, p.ID
}

// JoinRoom appends an unready, unseated player to the room. The new
// member receives a full room snapshot; everyone else sees player-joined.
func (m *Manager) JoinRoom(code, playerName string, send SendFunc) (playerID string, err error) {
	r, err := m.lookup(code)
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed {
		return "", ErrRoomNotFound
	}
	if r.started {
		return "", ErrGameAlreadyStarted
	}
	if len(r.players) >= MaxPlayers {
		return "", ErrRoomFull
	}
	p := &Player{ID: uuid.NewString(), Name: playerName, send: send}
	r.broadcast(Event{Type: EventPlayerJoined, Payload: map[string]any{
		"player": p.summary(),
	}})
	r.players = append(r.players, p)
	r.sendTo(p, Event{Type: EventRoomState, Payload: r.roomState()})
	r.afterMutation("join-room", p.ID, map[string]any{"name": playerName})
	return p.ID, nil
}

// SetReady flips a player's ready flag. The instant the room holds
// exactly MaxPlayers ready players, the game starts.
func (m *Manager) SetReady(code, playerID string, ready bool) error {
	r, err := m.lookup(code)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return ErrGameAlreadyStarted
	}
	p := r.playerByID(playerID)
	if p == nil {
		return ErrPlayerNotFound
	}
	p.Ready = ready
	r.broadcast(Event{Type: EventPlayerReadyChanged, Payload: map[string]any{
		"playerId": p.ID,
		"ready":    ready,
	}})
	if len(r.players) == MaxPlayers && r.allReady() {
		r.startGame()
	}
	r.afterMutation("player-ready", playerID, map[string]any{"ready": ready})
	return nil
}

func (r *Room) allReady() bool {
	for _, p := range r.players {
		if !p.Ready {
			return false
		}
	}
	return true
}

// LeaveRoom removes the player, explicit or via disconnect. The host role
// moves to the next member in join order. A started game keeps running;
// the departed seat is simply driven by the scheduler from then on. The
// room is destroyed once no live member remains.
func (m *Manager) LeaveRoom(code, playerID string) error {
	r, err := m.lookup(code)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := -1
	for i, p := range r.players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrPlayerNotFound
	}
	departed := r.players[idx]
	r.players = append(r.players[:idx], r.players[idx+1:]...)
	r.broadcast(Event{Type: EventPlayerLeft, Payload: map[string]any{
		"playerId":   departed.ID,
		"playerName": departed.Name,
	}})
	if r.hostID == departed.ID && len(r.players) > 0 {
		r.hostID = r.players[0].ID
		r.broadcast(Event{Type: EventHostChanged, Payload: map[string]any{
			"newHostId": r.hostID,
		}})
	}
	if len(r.players) == 0 || !r.hasLiveMember() {
		r.destroyed = true
		m.unregister(r.id)
		r.log.Info("room destroyed")
		return nil
	}
	r.afterMutation("leave-room", playerID, nil)
	return nil
}

// SetHokm records the trump choice of the round leader and opens play.
// Only the player seated at the current bidding leader may call it.
func (m *Manager) SetHokm(code, playerID string, suit engine.Suit) error {
	r, err := m.lookup(code)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started || r.game == nil {
		return engine.ErrInvalidPhase
	}
	seat, ok := r.game.SeatOf(playerID)
	if !ok {
		return engine.ErrPlayerNotFound
	}
	if r.game.Phase() == engine.PhaseBidding && seat != r.game.CurrentSeat() {
		return engine.ErrTurnViolation
	}
	if err := r.game.SetHokm(suit); err != nil {
		return err
	}
	p := r.playerByID(playerID)
	chosen := playerID
	if p != nil {
		chosen = p.Name
	}
	r.broadcast(Event{Type: EventHokmSet, Payload: map[string]any{
		"suit":   suit.String(),
		"chosen": chosen,
	}})
	r.broadcastGameState()
	r.afterMutation("set-hokm", playerID, map[string]any{"suit": suit.String()})
	return nil
}

// PlayCard routes a human play through the room's engine and broadcasts
// the outcome.
func (m *Manager) PlayCard(code, playerID string, cardIndex int) error {
	r, err := m.lookup(code)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started || r.game == nil {
		return engine.ErrInvalidPhase
	}
	res, err := r.game.PlayCard(playerID, cardIndex)
	if err != nil {
		return err
	}
	r.announcePlay(playerID, cardIndex, res)
	r.afterMutation("play-card", playerID, map[string]any{
		"card":  res.Card.String(),
		"index": cardIndex,
	})
	return nil
}

// Chat relays a message to the whole room with a server-side timestamp.
func (m *Manager) Chat(code, playerID, text string) error {
	r, err := m.lookup(code)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.playerByID(playerID)
	if p == nil {
		return ErrPlayerNotFound
	}
	r.broadcast(Event{Type: EventChatMessage, Payload: map[string]any{
		"text":       text,
		"senderId":   p.ID,
		"senderName": p.Name,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	}})
	r.afterMutation("chat-message", playerID, map[string]any{"text": text})
	return nil
}

// ListRooms returns public summaries of all live rooms, sorted by code
// for stable output.
func (m *Manager) ListRooms() []Summary {
	m.mu.RLock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.RUnlock()

	out := make([]Summary, 0, len(rooms))
	for _, r := range rooms {
		r.mu.Lock()
		if !r.destroyed {
			out = append(out, r.summaryLocked())
		}
		r.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

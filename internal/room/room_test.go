package room

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hokmlab/hokm/internal/bot"
	"github.com/hokmlab/hokm/internal/engine"
)

// newTestManager returns a manager whose bot timers never fire on their
// own; tests drive runBot directly for determinism.
func newTestManager() *Manager {
	log := logrus.New()
	log.SetOutput(io.Discard)
	m := NewManager(log, nil, bot.Medium)
	m.botDelay = func(bot.Difficulty) time.Duration { return time.Hour }
	m.gameSeed = func() int64 { return 42 }
	return m
}

// collector records the events one member receives, in delivery order.
type collector struct {
	mu     sync.Mutex
	events []Event
}

func (c *collector) send(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *collector) types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.events))
	for i, ev := range c.events {
		out[i] = ev.Type
	}
	return out
}

func (c *collector) count(eventType string) int {
	n := 0
	for _, t := range c.types() {
		if t == eventType {
			n++
		}
	}
	return n
}

// fillRoom creates a room and joins three more players, returning the
// code, the player ids in join order and their collectors.
func fillRoom(t *testing.T, m *Manager) (string, []string, []*collector) {
	t.Helper()
	cols := make([]*collector, 4)
	ids := make([]string, 4)
	cols[0] = &collector{}
	code, hostID := m.CreateRoom("table one", "ana", cols[0].send)
	ids[0] = hostID
	for i, name := range []string{"bijan", "cyrus", "dara"} {
		cols[i+1] = &collector{}
		id, err := m.JoinRoom(code, name, cols[i+1].send)
		require.NoError(t, err)
		ids[i+1] = id
	}
	return code, ids, cols
}

func readyAll(t *testing.T, m *Manager, code string, ids []string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, m.SetReady(code, id, true))
	}
}

func TestRoomCapacityAndLifecycle(t *testing.T) {
	m := newTestManager()
	code, ids, _ := fillRoom(t, m)

	_, err := m.JoinRoom(code, "evan", (&collector{}).send)
	assert.ErrorIs(t, err, ErrRoomFull)

	_, err = m.JoinRoom("ZZZZZZ", "evan", (&collector{}).send)
	assert.ErrorIs(t, err, ErrRoomNotFound)

	readyAll(t, m, code, ids)
	_, err = m.JoinRoom(code, "evan", (&collector{}).send)
	assert.ErrorIs(t, err, ErrGameAlreadyStarted)
}

func TestAutoStartExactlyOnce(t *testing.T) {
	m := newTestManager()
	code, ids, cols := fillRoom(t, m)

	// Toggling ready off and on before the table fills must not start.
	require.NoError(t, m.SetReady(code, ids[0], true))
	require.NoError(t, m.SetReady(code, ids[0], false))
	require.NoError(t, m.SetReady(code, ids[0], true))
	for _, id := range ids[1:] {
		require.NoError(t, m.SetReady(code, id, true))
	}

	for _, c := range cols {
		assert.Equal(t, 1, c.count(EventGameStarted))
	}

	r, err := m.lookup(code)
	require.NoError(t, err)
	r.mu.Lock()
	defer r.mu.Unlock()
	require.True(t, r.started)
	require.NotNil(t, r.game)
	// Seats follow join order through the rotation.
	for i, seat := range engine.AllSeats() {
		require.NotNil(t, r.players[i].Seat)
		assert.Equal(t, seat, *r.players[i].Seat)
		assert.Equal(t, ids[i], r.game.PlayerAt(seat).ID)
	}
}

func TestHostTransferAndDestruction(t *testing.T) {
	m := newTestManager()
	code, ids, cols := fillRoom(t, m)

	require.NoError(t, m.LeaveRoom(code, ids[0]))
	assert.Equal(t, 1, cols[1].count(EventHostChanged))

	r, err := m.lookup(code)
	require.NoError(t, err)
	r.mu.Lock()
	assert.Equal(t, ids[1], r.hostID)
	r.mu.Unlock()

	for _, id := range ids[1:] {
		require.NoError(t, m.LeaveRoom(code, id))
	}
	_, err = m.lookup(code)
	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.Empty(t, m.ListRooms())
}

func TestBroadcastOrderIsUniform(t *testing.T) {
	m := newTestManager()
	code, ids, cols := fillRoom(t, m)

	for i := 0; i < 10; i++ {
		require.NoError(t, m.Chat(code, ids[i%4], "hello"))
	}
	want := cols[0].types()
	for _, c := range cols[1:] {
		// Skip each member's private join-time snapshot prefix; from the
		// first chat message on, every member sees the same sequence.
		got := c.types()
		assert.Equal(t, tail(want, EventChatMessage), tail(got, EventChatMessage))
	}
}

func tail(types []string, from string) []string {
	for i, t := range types {
		if t == from {
			return types[i:]
		}
	}
	return nil
}

func TestSetHokmLeaderOnly(t *testing.T) {
	m := newTestManager()
	code, ids, _ := fillRoom(t, m)
	readyAll(t, m, code, ids)

	// ids[0] sits south and leads the first round's bidding.
	err := m.SetHokm(code, ids[1], engine.Spades)
	assert.ErrorIs(t, err, engine.ErrTurnViolation)

	require.NoError(t, m.SetHokm(code, ids[0], engine.Spades))
	err = m.SetHokm(code, ids[0], engine.Hearts)
	assert.ErrorIs(t, err, engine.ErrInvalidPhase)
}

func TestSoloRoomStartsOnHostReady(t *testing.T) {
	m := newTestManager()
	col := &collector{}
	code, hostID := m.CreateSoloRoom("solo", "ana", bot.Hard, col.send)
	require.NoError(t, m.SetReady(code, hostID, true))

	assert.Equal(t, 1, col.count(EventGameStarted))
	r, err := m.lookup(code)
	require.NoError(t, err)
	r.mu.Lock()
	defer r.mu.Unlock()
	require.True(t, r.started)
	assert.Equal(t, bot.Hard, r.diff)
	bots := 0
	for _, p := range r.players {
		if p.Bot {
			bots++
		}
	}
	assert.Equal(t, 3, bots)
}

func TestStaleBotFiringIsDiscarded(t *testing.T) {
	m := newTestManager()
	col := &collector{}
	code, hostID := m.CreateSoloRoom("solo", "ana", bot.Medium, col.send)
	require.NoError(t, m.SetReady(code, hostID, true))
	require.NoError(t, m.SetHokm(code, hostID, engine.Spades))

	r, err := m.lookup(code)
	require.NoError(t, err)

	// The host sits south and leads; after the host plays, west (a bot)
	// is on move and a timer was armed for the current version.
	r.mu.Lock()
	legal := r.game.LegalPlays(engine.South)
	r.mu.Unlock()
	require.NotEmpty(t, legal)
	require.NoError(t, m.PlayCard(code, hostID, legal[0]))

	r.mu.Lock()
	armed := r.version
	engineVer := r.game.Version()
	r.mu.Unlock()

	// A stale stamp is a no-op.
	r.runBot(armed - 1)
	r.mu.Lock()
	assert.Equal(t, engineVer, r.game.Version())
	r.mu.Unlock()

	// The current stamp plays exactly one card.
	r.runBot(armed)
	r.mu.Lock()
	assert.Equal(t, engineVer+1, r.game.Version())
	assert.Equal(t, engine.North, r.game.CurrentSeat())
	r.mu.Unlock()

	// Firing again with the now-stale stamp does nothing.
	r.runBot(armed)
	r.mu.Lock()
	assert.Equal(t, engineVer+1, r.game.Version())
	r.mu.Unlock()
}

func TestSchedulerDrivesNonLiveSeats(t *testing.T) {
	m := newTestManager()
	col := &collector{}
	code, hostID := m.CreateSoloRoom("solo", "ana", bot.Easy, col.send)
	require.NoError(t, m.SetReady(code, hostID, true))
	require.NoError(t, m.SetHokm(code, hostID, engine.Hearts))

	r, err := m.lookup(code)
	require.NoError(t, err)
	r.mu.Lock()
	assert.True(t, r.seatIsLive(engine.South))
	assert.False(t, r.seatIsLive(engine.West))
	assert.False(t, r.seatIsLive(engine.North))
	assert.False(t, r.seatIsLive(engine.East))
	r.mu.Unlock()
}

func TestChatCarriesServerTimestamp(t *testing.T) {
	m := newTestManager()
	code, ids, cols := fillRoom(t, m)
	require.NoError(t, m.Chat(code, ids[2], "salam"))

	var ev *Event
	cols[0].mu.Lock()
	for i := range cols[0].events {
		if cols[0].events[i].Type == EventChatMessage {
			ev = &cols[0].events[i]
		}
	}
	cols[0].mu.Unlock()
	require.NotNil(t, ev)
	assert.Equal(t, "salam", ev.Payload["text"])
	assert.Equal(t, "cyrus", ev.Payload["senderName"])
	ts, ok := ev.Payload["timestamp"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339, ts)
	assert.NoError(t, err)
}

func TestListRooms(t *testing.T) {
	m := newTestManager()
	codeA, _ := m.CreateRoom("alpha", "ana", (&collector{}).send)
	codeB, _ := m.CreateRoom("beta", "bijan", (&collector{}).send)

	rooms := m.ListRooms()
	require.Len(t, rooms, 2)
	byID := map[string]Summary{rooms[0].ID: rooms[0], rooms[1].ID: rooms[1]}
	assert.Equal(t, "alpha", byID[codeA].Name)
	assert.Equal(t, 1, byID[codeB].PlayerCount)
	assert.False(t, byID[codeA].Started)
}

func TestGameViewObfuscatesOtherHands(t *testing.T) {
	m := newTestManager()
	code, ids, _ := fillRoom(t, m)
	readyAll(t, m, code, ids)
	require.NoError(t, m.SetHokm(code, ids[0], engine.Spades))

	r, err := m.lookup(code)
	require.NoError(t, err)
	r.mu.Lock()
	st := r.game.Snapshot()
	r.mu.Unlock()

	view := gameView(st, ids[0])
	players, ok := view["players"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, players, 4)
	for _, pv := range players {
		if pv["id"] == ids[0] {
			assert.Contains(t, pv, "hand")
			assert.Contains(t, pv, "legalPlays")
		} else {
			assert.NotContains(t, pv, "hand")
			assert.Equal(t, engine.HandSize, pv["handCount"])
		}
	}
}

// Package room implements the lobby and session layer: a registry of
// rooms, player lifecycle, one game per started room, message fan-out to
// room members and scheduling of automated moves.
//
// All mutations of a room happen under its single mutex, so every member
// observes the same total order of events. Broadcasts are emitted while
// the lock is held; SendFunc implementations must therefore hand the
// event off without blocking.
package room

import (
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hokmlab/hokm/internal/bot"
	"github.com/hokmlab/hokm/internal/engine"
	"github.com/hokmlab/hokm/internal/history"
)

// MaxPlayers is the fixed table size; a room auto-starts when it holds
// exactly this many ready players.
const MaxPlayers = engine.NumSeats

// Room is one lobby and, once started, one live game.
type Room struct {
	mu sync.Mutex

	id      string
	name    string
	players []*Player // join order
	hostID  string

	started   bool
	destroyed bool
	game      *engine.Game
	strat     bot.Strategy
	diff      bot.Difficulty

	// version counts accepted mutations. Scheduled bot moves are stamped
	// with the version current at scheduling time and discard themselves
	// when it has moved on.
	version uint64

	actionSeq int
	rng       *rand.Rand

	mgr *Manager
	log *logrus.Entry
}

// ID returns the room's 6-character code.
func (r *Room) ID() string { return r.id }

// Name returns the room's display name.
func (r *Room) Name() string { return r.name }

// Summary is a public room listing entry.
type Summary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PlayerCount int    `json:"playerCount"`
	Started     bool   `json:"started"`
}

func (r *Room) summaryLocked() Summary {
	return Summary{
		ID:          r.id,
		Name:        r.name,
		PlayerCount: len(r.players),
		Started:     r.started,
	}
}

func (r *Room) playerByID(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// broadcast fans an event out to every current member, in join order.
// Caller holds r.mu; delivery order across calls is the mutation order.
func (r *Room) broadcast(ev Event) {
	for _, p := range r.players {
		if p.send != nil {
			p.send(ev)
		}
	}
}

// sendTo delivers an event to a single member.
func (r *Room) sendTo(p *Player, ev Event) {
	if p.send != nil {
		p.send(ev)
	}
}

// broadcastGameState sends each member its own obfuscated view of the
// game. Hands other than the recipient's are reduced to counts.
func (r *Room) broadcastGameState() {
	if r.game == nil {
		return
	}
	st := r.game.Snapshot()
	for _, p := range r.players {
		if p.send == nil {
			continue
		}
		p.send(Event{Type: EventGameState, Payload: gameView(st, p.ID)})
	}
}

// afterMutation runs the bookkeeping shared by every accepted mutation:
// bump the version, record the action, and reschedule the bot timer.
// Caller holds r.mu.
func (r *Room) afterMutation(actionType, actorID string, payload map[string]any) {
	r.version++
	r.actionSeq++
	r.mgr.history.PublishAsync(history.Record{
		RoomID:    r.id,
		Index:     r.actionSeq,
		ActorID:   actorID,
		Type:      actionType,
		Payload:   payload,
		Timestamp: time.Now().UnixMilli(),
	})
	r.scheduleBot()
}

// scheduleBot arms a deferred move for the seat on move if that seat is
// not attached to a live connection. The timer captures the room version
// at arm time; a firing under a newer version is a no-op. Caller holds
// r.mu.
func (r *Room) scheduleBot() {
	if !r.started || r.destroyed || r.game == nil {
		return
	}
	if r.game.Phase() == engine.PhaseFinished {
		return
	}
	seat := r.game.CurrentSeat()
	if r.seatIsLive(seat) {
		return
	}
	ver := r.version
	delay := r.mgr.botDelay(r.diff)
	time.AfterFunc(delay, func() { r.runBot(ver) })
}

// seatIsLive reports whether the engine seat belongs to a member with a
// live connection. Seats of bots and of departed players both count as
// not live and are driven by the scheduler.
func (r *Room) seatIsLive(seat engine.Seat) bool {
	p := r.game.PlayerAt(seat)
	member := r.playerByID(p.ID)
	return member != nil && !member.Bot && member.send != nil
}

// runBot executes one scheduled move. The stamped version is compared to
// the live one under the lock; any accepted mutation since scheduling
// invalidates the firing.
func (r *Room) runBot(ver uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed || !r.started || r.version != ver {
		return
	}
	if r.game.Phase() == engine.PhaseFinished {
		return
	}
	seat := r.game.CurrentSeat()
	if r.seatIsLive(seat) {
		return
	}
	st := r.game.Snapshot()
	actor := st.Players[seat]

	switch r.game.Phase() {
	case engine.PhaseBidding:
		suit := r.strat.ChooseHokm(st, seat)
		if err := r.game.SetHokm(suit); err != nil {
			r.log.WithError(err).WithField("seat", seat).Error("scheduled hokm choice rejected")
			return
		}
		r.broadcast(Event{Type: EventHokmSet, Payload: map[string]any{
			"suit":   suit.String(),
			"chosen": actor.Name,
		}})
		r.broadcastGameState()
		r.afterMutation("set-hokm", actor.ID, map[string]any{"suit": suit.String()})

	case engine.PhasePlaying:
		idx := r.strat.SelectCard(st, seat)
		res, err := r.game.PlayCard(actor.ID, idx)
		if err != nil {
			// Strategies only emit indices from LegalPlays, so this is a
			// programming error, not a recoverable condition.
			r.log.WithError(err).WithFields(logrus.Fields{
				"seat":  seat,
				"index": idx,
			}).Error("scheduled play rejected")
			return
		}
		r.announcePlay(actor.ID, idx, res)
		r.afterMutation("play-card", actor.ID, map[string]any{
			"card":  res.Card.String(),
			"index": idx,
		})
	}
}

// announcePlay broadcasts an accepted play and the refreshed game views.
// Caller holds r.mu.
func (r *Room) announcePlay(playerID string, cardIndex int, res engine.PlayResult) {
	payload := map[string]any{
		"playerId":  playerID,
		"cardIndex": cardIndex,
		"seat":      res.Seat.String(),
		"card":      res.Card,
	}
	if res.TrickComplete {
		payload["trickWinner"] = res.TrickWinner.String()
	}
	if res.RoundComplete {
		payload["roundComplete"] = true
	}
	if res.GameOver {
		payload["gameOver"] = true
		payload["winningTeam"] = res.TrickWinner.Team().String()
	}
	r.broadcast(Event{Type: EventCardPlayed, Payload: payload})
	r.broadcastGameState()
}

// startGame assigns the four fixed seats in join order, constructs the
// engine and announces the start. Caller holds r.mu and has verified the
// room holds exactly MaxPlayers ready players.
func (r *Room) startGame() {
	var cfg engine.Config
	cfg.Seed = r.mgr.gameSeed()
	seats := engine.AllSeats()
	for i, p := range r.players {
		seat := seats[i]
		p.Seat = &seat
		cfg.Seats[seat] = engine.SeatConfig{
			ID:    p.ID,
			Name:  p.Name,
			Human: !p.Bot,
		}
	}
	r.game = engine.New(cfg)
	r.strat = bot.New(r.diff, r.rng)
	r.started = true

	seating := make([]map[string]any, 0, len(r.players))
	for _, p := range r.players {
		seating = append(seating, p.summary())
	}
	r.broadcast(Event{Type: EventGameStarted, Payload: map[string]any{
		"players": seating,
		"leader":  r.game.Leader().String(),
	}})
	r.broadcastGameState()
	r.log.WithField("players", len(r.players)).Info("game started")
}

// hasLiveMember reports whether any member still holds a live connection.
// A room with only bots (or only departed seats) left is dead weight and
// gets destroyed.
func (r *Room) hasLiveMember() bool {
	for _, p := range r.players {
		if !p.Bot && p.send != nil {
			return true
		}
	}
	return false
}

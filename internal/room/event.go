package room

import (
	"github.com/hokmlab/hokm/internal/engine"
)

// Server→client event types. Every accepted state change produces exactly
// one of these to all current members of the room, in acceptance order.
const (
	EventRoomCreated        = "room-created"
	EventPlayerJoined       = "player-joined"
	EventPlayerLeft         = "player-left"
	EventPlayerReadyChanged = "player-ready-changed"
	EventHostChanged        = "host-changed"
	EventGameStarted        = "game-started"
	EventHokmSet            = "hokm-set"
	EventCardPlayed         = "card-played"
	EventChatMessage        = "chat-message"
	EventRoomState          = "room-state"
	EventGameState          = "game-state"
)

// Event is one room-scoped message delivered to members.
type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// SendFunc delivers an event to one connected member. Implementations
// must not block: the room lock is held while events are fanned out.
type SendFunc func(Event)

// Player is a room member. Seat is nil until the game starts.
type Player struct {
	ID    string
	Name  string
	Ready bool
	Bot   bool
	Seat  *engine.Seat
	send  SendFunc
}

func (p *Player) summary() map[string]any {
	s := map[string]any{
		"id":      p.ID,
		"name":    p.Name,
		"isReady": p.Ready,
		"isBot":   p.Bot,
	}
	if p.Seat != nil {
		s["seat"] = p.Seat.String()
	}
	return s
}

// roomState is the full lobby snapshot sent to a newly joined client.
func (r *Room) roomState() map[string]any {
	players := make([]map[string]any, 0, len(r.players))
	for _, p := range r.players {
		players = append(players, p.summary())
	}
	return map[string]any{
		"id":      r.id,
		"name":    r.name,
		"players": players,
		"hostId":  r.hostID,
		"started": r.started,
	}
}

// gameView renders the engine snapshot for one recipient. Only the
// recipient's own hand is revealed; other seats appear as counts. The
// client renders this verbatim and never computes legality or winners
// itself.
func gameView(st *engine.State, viewerID string) map[string]any {
	players := make([]map[string]any, 0, engine.NumSeats)
	for _, seat := range engine.AllSeats() {
		p := st.Players[seat]
		pv := map[string]any{
			"id":        p.ID,
			"name":      p.Name,
			"seat":      seat.String(),
			"team":      p.Team.String(),
			"isHuman":   p.Human,
			"tricks":    p.Tricks,
			"handCount": len(p.Hand),
		}
		if p.ID == viewerID {
			pv["hand"] = p.Hand
			if seat == st.Current {
				pv["legalPlays"] = st.LegalPlays(seat)
			}
		}
		players = append(players, pv)
	}
	view := map[string]any{
		"phase":         st.Phase.String(),
		"currentPlayer": st.Current.String(),
		"round":         st.Round,
		"scores":        st.Scores,
		"trick": map[string]any{
			"leader": st.Trick.Leader.String(),
			"plays":  st.Trick.Plays,
		},
		"players": players,
		"version": st.Version,
	}
	if suit, ok := st.HokmSuit(); ok {
		view["hokmSuit"] = suit.String()
	}
	return view
}

package engine

import (
	"math/rand"
	"time"
)

// SeatConfig describes one participant at game creation.
type SeatConfig struct {
	ID    string
	Name  string
	Human bool
}

// Config parameterizes a new game. Seats is indexed by Seat; Seed of 0
// selects a time-based seed.
type Config struct {
	Seats [NumSeats]SeatConfig
	Seed  int64
}

// Game is the per-room state machine. It is not safe for concurrent use;
// the room layer serializes access.
type Game struct {
	players [NumSeats]*Player
	current Seat
	hokm    Suit
	hokmSet bool
	trick   Trick
	scores  Scores
	round   int
	phase   Phase
	version uint64
	rng     *rand.Rand
}

// New builds the four players at their fixed seats and teams, deals a
// fresh shuffle and enters Bidding with south as the first leader.
func New(cfg Config) *Game {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		rng:   rand.New(rand.NewSource(seed)),
		round: 1,
		phase: PhaseBidding,
	}
	for _, seat := range AllSeats() {
		sc := cfg.Seats[seat]
		id := sc.ID
		if id == "" {
			id = seat.String()
		}
		name := sc.Name
		if name == "" {
			name = seat.String()
		}
		g.players[seat] = &Player{
			ID:    id,
			Name:  name,
			Seat:  seat,
			Team:  seat.Team(),
			Human: sc.Human,
		}
	}
	g.trick = Trick{Leader: South}
	g.current = South
	g.deal()
	return g
}

// deal distributes a fresh shuffle round-robin from the current trick
// leader, 13 cards per seat, then sorts each hand for display.
func (g *Game) deal() {
	deck := NewDeck()
	Shuffle(g.rng, deck)
	seat := g.trick.Leader
	for _, c := range deck {
		p := g.players[seat]
		p.Hand = append(p.Hand, c)
		seat = seat.Next()
	}
	for _, p := range g.players {
		SortHand(p.Hand)
	}
}

// SetHokm records the trump suit for the round and moves the game into
// the Playing phase. Legal only while Bidding.
func (g *Game) SetHokm(suit Suit) error {
	if g.phase != PhaseBidding {
		return ErrInvalidPhase
	}
	g.hokm = suit
	g.hokmSet = true
	g.phase = PhasePlaying
	g.current = g.trick.Leader
	g.version++
	return nil
}

// PlayResult describes the consequences of an accepted play.
type PlayResult struct {
	Seat          Seat
	Card          Card
	TrickComplete bool
	TrickWinner   Seat
	RoundComplete bool
	GameOver      bool
}

// PlayCard plays the card at cardIndex from the named player's hand.
// Validation order: phase, player, turn, index, follow-suit. Any failure
// leaves the state unchanged.
func (g *Game) PlayCard(playerID string, cardIndex int) (PlayResult, error) {
	if g.phase != PhasePlaying {
		return PlayResult{}, ErrInvalidPhase
	}
	p := g.playerByID(playerID)
	if p == nil {
		return PlayResult{}, ErrPlayerNotFound
	}
	if p.Seat != g.current {
		return PlayResult{}, ErrTurnViolation
	}
	if cardIndex < 0 || cardIndex >= len(p.Hand) {
		return PlayResult{}, ErrInvalidIndex
	}
	card := p.Hand[cardIndex]
	if !followAllowed(p.Hand, g.trick, card) {
		return PlayResult{}, ErrSuitViolation
	}

	p.Hand = append(p.Hand[:cardIndex], p.Hand[cardIndex+1:]...)
	g.trick.Plays = append(g.trick.Plays, TrickPlay{Seat: p.Seat, Card: card})
	g.current = g.current.Next()

	res := PlayResult{Seat: p.Seat, Card: card}
	if len(g.trick.Plays) == NumSeats {
		res.TrickComplete = true
		res.TrickWinner = g.closeTrick()
		if g.handsEmpty() {
			res.RoundComplete = true
			g.closeRound()
			res.GameOver = g.phase == PhaseFinished
		}
	}
	g.version++
	return res, nil
}

// closeTrick resolves the full trick, credits the winner and re-leaders
// the table. Returns the winning seat.
func (g *Game) closeTrick() Seat {
	winner := g.trick.Plays[WinningPlay(g.trick.Plays, g.hokm)].Seat
	wp := g.players[winner]
	wp.Tricks++
	if wp.Team == TeamRed {
		g.scores.Red++
	} else {
		g.scores.Black++
	}
	g.trick = Trick{Leader: winner}
	g.current = winner
	return winner
}

// closeRound ends the round after all 13 tricks. First team to reach
// WinningScore ends the game; otherwise a fresh round is dealt with the
// leader rotated one seat forward.
func (g *Game) closeRound() {
	g.round++
	if g.scores.Red >= WinningScore || g.scores.Black >= WinningScore {
		g.phase = PhaseFinished
		return
	}
	for _, p := range g.players {
		p.Hand = nil
		p.Tricks = 0
	}
	g.hokmSet = false
	g.phase = PhaseBidding
	g.trick = Trick{Leader: g.trick.Leader.Next()}
	g.current = g.trick.Leader
	g.deal()
}

func (g *Game) handsEmpty() bool {
	for _, p := range g.players {
		if len(p.Hand) > 0 {
			return false
		}
	}
	return true
}

func (g *Game) playerByID(id string) *Player {
	for _, p := range g.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Phase returns the current state-machine phase.
func (g *Game) Phase() Phase { return g.phase }

// CurrentSeat returns the seat on move. During Bidding this is the round
// leader, who owes the hokm choice.
func (g *Game) CurrentSeat() Seat { return g.current }

// Leader returns the current trick's leader.
func (g *Game) Leader() Seat { return g.trick.Leader }

// Hokm returns the trump suit; ok is false during Bidding.
func (g *Game) Hokm() (suit Suit, ok bool) { return g.hokm, g.hokmSet }

// Round returns the 1-based round number.
func (g *Game) Round() int { return g.round }

// Scores returns the team trick scores.
func (g *Game) Scores() Scores { return g.scores }

// Version returns a counter bumped once per accepted mutation. The room
// layer stamps scheduled bot moves with it to discard stale firings.
func (g *Game) Version() uint64 { return g.version }

// PlayerAt returns a copy of the player at the seat, hand included.
func (g *Game) PlayerAt(seat Seat) Player {
	p := *g.players[seat]
	p.Hand = append([]Card(nil), g.players[seat].Hand...)
	return p
}

// SeatOf resolves a player id to its seat.
func (g *Game) SeatOf(playerID string) (Seat, bool) {
	p := g.playerByID(playerID)
	if p == nil {
		return 0, false
	}
	return p.Seat, true
}

// LegalPlays returns the hand indices the seat may legally play now.
// Empty when it is not that seat's turn or the game is not in Playing.
func (g *Game) LegalPlays(seat Seat) []int {
	if g.phase != PhasePlaying || seat != g.current {
		return nil
	}
	return legalIndices(g.players[seat].Hand, g.trick)
}

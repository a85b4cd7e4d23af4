// Package engine implements the Hokm card game rules.
//
// The package is self-contained and performs no I/O: the room layer and
// the bot policies drive it exclusively through its exported operations
// and read-only snapshots. All mutation happens through SetHokm and
// PlayCard; a rejected operation leaves the state untouched.
package engine

import "fmt"

const (
	NumSeats     = 4
	DeckSize     = 52
	HandSize     = 13
	WinningScore = 7
)

// Suit represents a card suit.
type Suit uint8

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

func (s Suit) String() string {
	switch s {
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	case Spades:
		return "spades"
	}
	return "unknown"
}

// ParseSuit converts a wire suit name into a Suit.
func ParseSuit(s string) (Suit, error) {
	switch s {
	case "hearts":
		return Hearts, nil
	case "diamonds":
		return Diamonds, nil
	case "clubs":
		return Clubs, nil
	case "spades":
		return Spades, nil
	}
	return 0, fmt.Errorf("unknown suit %q", s)
}

// Suits lists the four suits in canonical deck order.
func Suits() [4]Suit { return [4]Suit{Hearts, Diamonds, Clubs, Spades} }

// Rank represents a card rank. The numeric value is the rank's strength:
// Two is weakest, Ace is strongest.
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	if r >= Two && r <= Ten {
		return fmt.Sprintf("%d", uint8(r))
	}
	return "?"
}

// Card is an immutable (suit, rank) value.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s-%s", c.Suit, c.Rank)
}

// Seat identifies one of the four fixed table positions. The declaration
// order is the turn rotation order: south leads to west, west to north,
// north to east, east back to south.
type Seat uint8

const (
	South Seat = iota
	West
	North
	East
)

func (s Seat) String() string {
	switch s {
	case South:
		return "south"
	case West:
		return "west"
	case North:
		return "north"
	case East:
		return "east"
	}
	return "unknown"
}

// ParseSeat converts a wire seat name into a Seat.
func ParseSeat(s string) (Seat, error) {
	switch s {
	case "south":
		return South, nil
	case "west":
		return West, nil
	case "north":
		return North, nil
	case "east":
		return East, nil
	}
	return 0, fmt.Errorf("unknown seat %q", s)
}

// Next returns the seat that plays after s in rotation order.
func (s Seat) Next() Seat { return Seat((uint8(s) + 1) % NumSeats) }

// Team returns the fixed partnership of the seat: north and west form the
// red team, east and south the black team. Partners sit two rotation
// steps apart rather than across; this pairing is deliberate and must be
// preserved.
func (s Seat) Team() Team {
	if s == North || s == West {
		return TeamRed
	}
	return TeamBlack
}

// Seats lists the four seats in rotation order starting from south.
func AllSeats() [NumSeats]Seat { return [NumSeats]Seat{South, West, North, East} }

// Team identifies one of the two partnerships.
type Team uint8

const (
	TeamRed Team = iota
	TeamBlack
)

func (t Team) String() string {
	if t == TeamRed {
		return "red"
	}
	return "black"
}

// Scores holds the cumulative trick counts per team for the current game.
type Scores struct {
	Red   int `json:"red"`
	Black int `json:"black"`
}

// ForTeam returns the score of the given team.
func (s Scores) ForTeam(t Team) int {
	if t == TeamRed {
		return s.Red
	}
	return s.Black
}

// Phase is the engine's state-machine phase. Transitions are monotonic
// within a round: Bidding → Playing → (Bidding of the next round |
// Finished). Finished is terminal.
type Phase uint8

const (
	PhaseBidding Phase = iota
	PhasePlaying
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseBidding:
		return "bidding"
	case PhasePlaying:
		return "playing"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

// TrickPlay is one (seat, card) entry of the current trick, in play order.
type TrickPlay struct {
	Seat Seat `json:"seat"`
	Card Card `json:"card"`
}

// Trick holds the cards played so far in the trick on the table.
type Trick struct {
	Plays  []TrickPlay `json:"plays"`
	Leader Seat        `json:"leader"`
}

// LeadSuit returns the suit of the first card played in the trick. The
// second return is false while the trick is empty.
func (t Trick) LeadSuit() (Suit, bool) {
	if len(t.Plays) == 0 {
		return 0, false
	}
	return t.Plays[0].Card.Suit, true
}

// Player is one seat's participant within a game.
type Player struct {
	ID     string
	Name   string
	Seat   Seat
	Team   Team
	Human  bool
	Hand   []Card
	Tricks int
}

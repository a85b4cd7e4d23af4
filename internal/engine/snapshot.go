package engine

// State is a deep-copied, read-only snapshot of a Game. Bot policies
// consume it; the room layer obfuscates it per recipient. Mutating a
// State has no effect on the live game.
type State struct {
	Players [NumSeats]Player
	Current Seat
	Hokm    *Suit
	Trick   Trick
	Scores  Scores
	Round   int
	Phase   Phase
	Version uint64
}

// Snapshot returns a consistent copy of the whole game state.
func (g *Game) Snapshot() *State {
	st := &State{
		Current: g.current,
		Scores:  g.scores,
		Round:   g.round,
		Phase:   g.phase,
		Version: g.version,
	}
	if g.hokmSet {
		h := g.hokm
		st.Hokm = &h
	}
	st.Trick = Trick{
		Leader: g.trick.Leader,
		Plays:  append([]TrickPlay(nil), g.trick.Plays...),
	}
	for _, seat := range AllSeats() {
		st.Players[seat] = g.PlayerAt(seat)
	}
	return st
}

// LegalPlays returns the hand indices the seat could legally play under
// the follow-suit rule, computed identically to the engine's own check.
// Unlike Game.LegalPlays it does not require the seat to be on move, so
// policies can evaluate hypothetical positions.
func (s *State) LegalPlays(seat Seat) []int {
	if s.Phase != PhasePlaying {
		return nil
	}
	return legalIndices(s.Players[seat].Hand, s.Trick)
}

// HokmSuit returns the trump suit, or ok=false while bidding.
func (s *State) HokmSuit() (Suit, bool) {
	if s.Hokm == nil {
		return 0, false
	}
	return *s.Hokm, true
}

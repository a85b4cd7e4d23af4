package engine

import (
	"encoding/json"
	"fmt"
)

// Cards cross the wire by name, not by numeric code.

func (s Suit) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Suit) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseSuit(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (r Rank) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Rank) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "J":
		*r = Jack
	case "Q":
		*r = Queen
	case "K":
		*r = King
	case "A":
		*r = Ace
	default:
		var n uint8
		if _, err := fmt.Sscanf(name, "%d", &n); err != nil || n < 2 || n > 10 {
			return fmt.Errorf("unknown rank %q", name)
		}
		*r = Rank(n)
	}
	return nil
}

func (s Seat) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Seat) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseSeat(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

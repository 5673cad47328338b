package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PlayerTable is a name-keyed player map that remembers insertion
// order. The wire sends players as a JSON object whose key order is
// the seating order, and the active-player calculation depends on it,
// so a plain Go map would lose information.
type PlayerTable struct {
	Order  []string
	ByName map[string]Player
}

// NewPlayerTable creates an empty player table.
func NewPlayerTable() PlayerTable {
	return PlayerTable{ByName: make(map[string]Player)}
}

// Len returns the number of seats.
func (t *PlayerTable) Len() int {
	return len(t.Order)
}

// Get returns the player with the given name.
func (t *PlayerTable) Get(name string) (Player, bool) {
	p, ok := t.ByName[name]
	return p, ok
}

// At returns the player in the i-th seat.
func (t *PlayerTable) At(i int) (Player, bool) {
	if i < 0 || i >= len(t.Order) {
		return Player{}, false
	}
	return t.Get(t.Order[i])
}

// Add appends a player to the last seat, replacing in place if the
// name is already seated.
func (t *PlayerTable) Add(p Player) {
	if t.ByName == nil {
		t.ByName = make(map[string]Player)
	}
	if _, ok := t.ByName[p.Name]; !ok {
		t.Order = append(t.Order, p.Name)
	}
	t.ByName[p.Name] = p
}

// UnmarshalJSON decodes the players object with a token scanner so the
// key order the server emitted survives the round trip.
func (t *PlayerTable) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read players object: %v", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("players: expected object, got %v", tok)
	}

	t.Order = nil
	t.ByName = make(map[string]Player)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read player name: %v", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("players: expected string key, got %v", keyTok)
		}

		var p Player
		if err := dec.Decode(&p); err != nil {
			return fmt.Errorf("failed to decode player %q: %v", name, err)
		}
		if p.Name == "" {
			p.Name = name
		}

		t.Order = append(t.Order, name)
		t.ByName[name] = p
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read players object end: %v", err)
	}

	return nil
}

// MarshalJSON encodes the players back as an object in seating order.
func (t PlayerTable) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBufferString("{")
	for i, name := range t.Order {
		if i > 0 {
			buf.WriteString(",")
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(":")
		val, err := json.Marshal(t.ByName[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteString("}")
	return buf.Bytes(), nil
}

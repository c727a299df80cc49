package models

// RosterPlayer is the persisted identity of a roster slot; runtime accrual
// state is never stored
type RosterPlayer struct {
	// Name is the display name of the player
	Name string `json:"name"`
}

// Roster is a named, saved player lineup that can be loaded into a fresh
// session
type Roster struct {
	// Name is the unique name the roster was saved under
	Name string `json:"name"`

	// Players holds the saved player names, in slot order
	Players []RosterPlayer `json:"players"`

	// NumPlayers is the roster size saved with the lineup
	NumPlayers int `json:"num_players"`

	// OnCourt is the on-court slot count saved with the lineup
	OnCourt int `json:"on_court"`
}

package domain

import "time"

// ColorPalette holds the colors assigned to players in join order.
// When more players join than there are colors, assignment wraps around.
var ColorPalette = []string{
	"#E53935", // red
	"#1E88E5", // blue
	"#43A047", // green
	"#FB8C00", // orange
	"#8E24AA", // purple
	"#00ACC1", // cyan
	"#FDD835", // yellow
	"#D81B60", // pink
	"#6D4C41", // brown
	"#546E7A", // slate
}

// Player represents a connected participant
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Score     int       `json:"score"`
	Submitted bool      `json:"submitted"`
	LastGuess string    `json:"lastGuess,omitempty"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// NewPlayer creates a new player with the given ID, display name and color
func NewPlayer(id, name, color string) *Player {
	return &Player{
		ID:       id,
		Name:     name,
		Color:    color,
		JoinedAt: time.Now(),
	}
}

// ResetForTurn clears the player's per-turn submission state
func (p *Player) ResetForTurn() {
	p.Submitted = false
	p.LastGuess = ""
}

// ResetForGame clears the player's score and per-turn state for a fresh game
func (p *Player) ResetForGame() {
	p.Score = 0
	p.ResetForTurn()
}

// PlayerInfo is a read-only view of player data used in broadcasts
type PlayerInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Score     int    `json:"score"`
	Submitted bool   `json:"submitted"`
}

// ToInfo converts a Player to PlayerInfo
func (p *Player) ToInfo() PlayerInfo {
	return PlayerInfo{
		ID:        p.ID,
		Name:      p.Name,
		Color:     p.Color,
		Score:     p.Score,
		Submitted: p.Submitted,
	}
}

package domain

import (
	"sort"
	"time"
)

// EventType represents the type of game event
type EventType string

const (
	EventPlayerJoined EventType = "PLAYER_JOINED"
	EventPlayerLeft   EventType = "PLAYER_LEFT"
	EventGameStarted  EventType = "GAME_STARTED"
	EventGameState    EventType = "GAME_STATE"
	EventTimerTick    EventType = "TIMER_TICK"
	EventRoundResult  EventType = "ROUND_RESULT"
	EventGameOver     EventType = "GAME_OVER"
	EventError        EventType = "ERROR"
)

// GameEvent represents an event broadcast to connected clients
type GameEvent struct {
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new game event
func NewEvent(eventType EventType, payload interface{}) *GameEvent {
	return &GameEvent{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// Payload types for different events

// LobbyUpdatePayload is sent whenever the roster changes in the lobby
type LobbyUpdatePayload struct {
	Players  []PlayerInfo `json:"players"`
	CanStart bool         `json:"canStart"`
}

// GameStatePayload is a full snapshot of the shared session state
type GameStatePayload struct {
	Status      Status       `json:"status"`
	Turn        int          `json:"turn"`
	MaxTurns    int          `json:"maxTurns"`
	TimeLeft    int          `json:"timeLeft"`
	RoundActive bool         `json:"roundActive"`
	Evaluating  bool         `json:"evaluating"`
	Players     []PlayerInfo `json:"players"`
	Chain       []ChainNode  `json:"chain,omitempty"`
}

// TimerTickPayload is sent once per second while a turn is running
type TimerTickPayload struct {
	Turn     int `json:"turn"`
	TimeLeft int `json:"timeLeft"`
}

// RoundResultPayload is sent when a turn has been evaluated
type RoundResultPayload struct {
	Turn          int                `json:"turn"`
	Summary       string             `json:"summary"`
	Results       []SubmissionResult `json:"results,omitempty"`
	ChainWord     string             `json:"chainWord,omitempty"`
	ChainPlayerID string             `json:"chainPlayerId,omitempty"`
	OracleFailed  bool               `json:"oracleFailed,omitempty"`
	NoSubmissions bool               `json:"noSubmissions,omitempty"`
}

// NewRoundResultPayload builds the broadcast payload for a round outcome
func NewRoundResultPayload(o *RoundOutcome) *RoundResultPayload {
	return &RoundResultPayload{
		Turn:          o.Turn,
		Summary:       o.Summary(),
		Results:       o.Results,
		ChainWord:     o.ChainWord,
		ChainPlayerID: o.ChainPlayerID,
		OracleFailed:  o.OracleFailed,
		NoSubmissions: o.NoSubmissions,
	}
}

// GameOverPayload is sent once the final turn has been evaluated
type GameOverPayload struct {
	Standings []PlayerInfo `json:"standings"`
	Chain     []ChainNode  `json:"chain"`
}

// NewGameOverPayload builds the final standings, best score first
func NewGameOverPayload(g *Game) *GameOverPayload {
	standings := g.GetPlayerInfoList()
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score > standings[j].Score
	})

	payload := &GameOverPayload{Standings: standings}
	if g.Chain != nil {
		payload.Chain = g.Chain.Snapshot()
	}
	return payload
}

// ErrorPayload is sent when an error occurs
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

package ws

import "time"

// MessageType represents the type of WebSocket message
type MessageType string

// Client → Server message types
const (
	MsgStartGame  MessageType = "start_game"
	MsgSubmitWord MessageType = "submit_word"
	MsgPing       MessageType = "ping"
)

// Server → Client message types. These cover direct replies to one client;
// shared state is broadcast as domain.GameEvent envelopes (PLAYER_JOINED,
// GAME_STATE, TIMER_TICK, ROUND_RESULT, GAME_OVER, ...).
const (
	MsgConnected MessageType = "connected"
	MsgError     MessageType = "error"
	MsgPong      MessageType = "pong"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// ServerMessage represents a direct message from server to one client
type ServerMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// NewServerMessage creates a new server message with current timestamp
func NewServerMessage(msgType MessageType, payload interface{}) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// SubmitWordPayload is the payload for submit_word message
type SubmitWordPayload struct {
	Word string `json:"word"`
}

// ConnectedPayload is the payload for connected message
type ConnectedPayload struct {
	PlayerID  string      `json:"playerId"`
	Name      string      `json:"name"`
	Color     string      `json:"color"`
	GameState interface{} `json:"gameState"`
}

// ErrorPayload is the payload for error message
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeInvalidMessage = "INVALID_MESSAGE"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)

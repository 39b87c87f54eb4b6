package domain

// Status represents the current status of the game session
type Status string

const (
	StatusLobby    Status = "LOBBY"    // Waiting for players to join
	StatusPlaying  Status = "PLAYING"  // Timed turns in progress
	StatusFinished Status = "FINISHED" // All turns completed, final standings shown
)

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

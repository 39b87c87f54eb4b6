package domain

import "strings"

// Settings holds configurable game parameters
type Settings struct {
	MaxPlayers      int `json:"maxPlayers"`
	MaxTurns        int `json:"maxTurns"`
	TurnSeconds     int `json:"turnSeconds"`
	ScoreThreshold  int `json:"scoreThreshold"`
	ThresholdPoints int `json:"thresholdPoints"`
	WinnerBonus     int `json:"winnerBonus"`
}

// DefaultSettings returns the default game settings
func DefaultSettings() Settings {
	return Settings{
		MaxPlayers:      50,
		MaxTurns:        10,
		TurnSeconds:     30,
		ScoreThreshold:  57,
		ThresholdPoints: 2,
		WinnerBonus:     5,
	}
}

// Submission is one player's word for the current turn, in arrival order
type Submission struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Word     string `json:"word"`
	Order    int    `json:"order"` // 1-based arrival order within the turn
}

// Game holds the full session state: roster, chain and turn bookkeeping.
// It is not safe for concurrent use; the session controller is its only
// writer and serializes all access.
type Game struct {
	Status      Status
	Turn        int
	Chain       *Chain
	Players     map[string]*Player
	Submissions []Submission // current turn only, arrival order
	RoundActive bool
	Evaluating  bool
	TimeLeft    int
	Settings    Settings

	colorIdx int
}

// NewGame creates a new game in the lobby state
func NewGame(settings Settings) *Game {
	return &Game{
		Status:   StatusLobby,
		Players:  make(map[string]*Player),
		Settings: settings,
	}
}

// AddPlayer adds a player to the roster, assigning the next color in rotation.
// Joins are only accepted in the lobby and below capacity.
func (g *Game) AddPlayer(playerID, name string) (*Player, error) {
	if g.Status != StatusLobby {
		return nil, ErrGameInProgress
	}

	if len(g.Players) >= g.Settings.MaxPlayers {
		return nil, ErrGameFull
	}

	color := ColorPalette[g.colorIdx%len(ColorPalette)]
	g.colorIdx++

	player := NewPlayer(playerID, name, color)
	g.Players[playerID] = player

	return player, nil
}

// RemovePlayer removes a player from the roster. Submissions the player
// already made this turn stay recorded.
func (g *Game) RemovePlayer(playerID string) error {
	if _, ok := g.Players[playerID]; !ok {
		return ErrPlayerNotFound
	}

	delete(g.Players, playerID)
	return nil
}

// GetPlayer returns a player by ID
func (g *Game) GetPlayer(playerID string) (*Player, error) {
	player, ok := g.Players[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return player, nil
}

// CanJoin checks if a new player could join right now
func (g *Game) CanJoin() bool {
	return g.Status == StatusLobby && len(g.Players) < g.Settings.MaxPlayers
}

// Start begins a new game from the lobby: resets every player, seeds the
// chain and opens turn 1.
func (g *Game) Start(seedWord string) error {
	if g.Status != StatusLobby {
		return ErrNotInLobby
	}

	if len(g.Players) == 0 {
		return ErrNoPlayers
	}

	for _, player := range g.Players {
		player.ResetForGame()
	}

	g.Chain = NewChain(seedWord)
	g.Turn = 1
	g.Status = StatusPlaying
	g.RoundActive = true
	g.Evaluating = false
	g.TimeLeft = g.Settings.TurnSeconds
	g.Submissions = nil

	return nil
}

// RecordSubmission records a player's word for the current turn.
// Rejected when the round is not accepting words, the player is unknown,
// or the player already submitted (first word wins, no overwrite).
func (g *Game) RecordSubmission(playerID, word string) error {
	if g.Status != StatusPlaying || !g.RoundActive || g.Evaluating {
		return ErrRoundNotActive
	}

	word = strings.TrimSpace(word)
	if word == "" {
		return ErrEmptyWord
	}

	player, ok := g.Players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}

	if player.Submitted {
		return ErrAlreadySubmitted
	}

	player.LastGuess = word
	player.Submitted = true
	g.Submissions = append(g.Submissions, Submission{
		PlayerID: playerID,
		Name:     player.Name,
		Word:     word,
		Order:    len(g.Submissions) + 1,
	})

	return nil
}

// AllSubmitted checks if every current player has submitted this turn
func (g *Game) AllSubmitted() bool {
	if len(g.Players) == 0 {
		return false
	}
	for _, player := range g.Players {
		if !player.Submitted {
			return false
		}
	}
	return true
}

// BeginEvaluation is the single-flight guard for round evaluation.
// It returns false if evaluation already started or no round is running;
// otherwise it flips the session into evaluating state and returns true.
// Check and set happen in one step under the controller's lock.
func (g *Game) BeginEvaluation() bool {
	if g.Evaluating || g.Status != StatusPlaying {
		return false
	}

	g.Evaluating = true
	g.RoundActive = false
	return true
}

// TakeSubmissions returns a copy of the current turn's submissions
func (g *Game) TakeSubmissions() []Submission {
	subs := make([]Submission, len(g.Submissions))
	copy(subs, g.Submissions)
	return subs
}

// Tick decrements the turn countdown and returns the remaining seconds
func (g *Game) Tick() int {
	if g.TimeLeft > 0 {
		g.TimeLeft--
	}
	return g.TimeLeft
}

// AdvanceTurn closes the evaluated turn. It either opens the next turn or,
// when the last turn just completed, moves the game to finished.
// Returns true when the game is over.
func (g *Game) AdvanceTurn() bool {
	g.Evaluating = false
	g.Submissions = nil

	if g.Turn >= g.Settings.MaxTurns {
		g.Status = StatusFinished
		g.RoundActive = false
		g.TimeLeft = 0
		return true
	}

	g.Turn++
	for _, player := range g.Players {
		player.ResetForTurn()
	}
	g.RoundActive = true
	g.TimeLeft = g.Settings.TurnSeconds

	return false
}

// GetPlayerInfoList returns all players as PlayerInfo
func (g *Game) GetPlayerInfoList() []PlayerInfo {
	players := make([]PlayerInfo, 0, len(g.Players))
	for _, p := range g.Players {
		players = append(players, p.ToInfo())
	}
	return players
}

// GetLobbyState returns the current lobby state for broadcasting
func (g *Game) GetLobbyState() *LobbyUpdatePayload {
	return &LobbyUpdatePayload{
		Players:  g.GetPlayerInfoList(),
		CanStart: len(g.Players) > 0,
	}
}

// GetState returns a full read-only snapshot of the session state
func (g *Game) GetState() *GameStatePayload {
	state := &GameStatePayload{
		Status:      g.Status,
		Turn:        g.Turn,
		MaxTurns:    g.Settings.MaxTurns,
		TimeLeft:    g.TimeLeft,
		RoundActive: g.RoundActive,
		Evaluating:  g.Evaluating,
		Players:     g.GetPlayerInfoList(),
	}
	if g.Chain != nil {
		state.Chain = g.Chain.Snapshot()
	}
	return state
}

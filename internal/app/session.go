package app

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/GabRamosBr/jogo-servidor/internal/domain"
	"github.com/GabRamosBr/jogo-servidor/internal/monitor"
	"github.com/GabRamosBr/jogo-servidor/internal/oracle"
)

const eventBufferSize = 256

// ClientConnection represents a connected client
type ClientConnection interface {
	Send(message interface{}) error
	GetPlayerID() string
	Close() error
}

// Session is the controller for the single shared game session. It owns the
// roster, the chain and the turn timer, and is the only writer of game state.
// All mutations go through its mutex; broadcasts carry read-only snapshots.
type Session struct {
	game *domain.Game
	mu   sync.Mutex

	clients   map[string]ClientConnection // playerID -> client
	clientsMu sync.RWMutex

	scorer  oracle.Scorer
	clock   clockwork.Clock
	metrics *monitor.Monitor
	logger  *slog.Logger

	// Closing timerStop cancels the running turn countdown. Only touched
	// while holding mu.
	timerStop chan struct{}

	events    chan *domain.GameEvent
	done      chan struct{}
	closeOnce sync.Once
}

// NewSession creates the session controller and starts its event broadcaster
func NewSession(settings domain.Settings, scorer oracle.Scorer, clock clockwork.Clock, metrics *monitor.Monitor, logger *slog.Logger) *Session {
	s := &Session{
		game:    domain.NewGame(settings),
		clients: make(map[string]ClientConnection),
		scorer:  scorer,
		clock:   clock,
		metrics: metrics,
		logger:  logger,
		events:  make(chan *domain.GameEvent, eventBufferSize),
		done:    make(chan struct{}),
	}

	go s.eventLoop()

	return s
}

// CanJoin checks if a new player can join right now
func (s *Session) CanJoin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.CanJoin()
}

// GetState returns a read-only snapshot of the session state
func (s *Session) GetState() *domain.GameStatePayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.GetState()
}

// GetPlayerCount returns the current roster size
func (s *Session) GetPlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.game.Players)
}

// Join adds a player to the roster. Rejected once a game is in progress or
// the roster is at capacity.
func (s *Session) Join(playerID, name string) (*domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.game.AddPlayer(playerID, name)
	if err != nil {
		return nil, err
	}

	s.metrics.IncPlayers()
	s.logger.Info("player joined", "playerID", playerID, "name", name, "players", len(s.game.Players))
	s.queueEvent(domain.NewEvent(domain.EventPlayerJoined, s.game.GetLobbyState()))

	return player, nil
}

// Leave removes a player from the roster. Submissions already recorded this
// turn are kept; if everyone remaining has submitted, evaluation starts early.
func (s *Session) Leave(playerID string) {
	s.mu.Lock()

	if err := s.game.RemovePlayer(playerID); err != nil {
		s.mu.Unlock()
		return
	}

	s.metrics.DecPlayers()
	s.logger.Info("player left", "playerID", playerID, "players", len(s.game.Players))

	if s.game.Status == domain.StatusLobby {
		s.queueEvent(domain.NewEvent(domain.EventPlayerLeft, s.game.GetLobbyState()))
	} else {
		s.queueEvent(domain.NewEvent(domain.EventPlayerLeft, s.game.GetState()))
	}

	evaluate := s.game.RoundActive && s.game.AllSubmitted()
	s.mu.Unlock()

	if evaluate {
		s.EvaluateRound()
	}
}

// Start begins a new game. Any connected player may start; only accepted
// while the session is in the lobby.
func (s *Session) Start(playerID string) error {
	s.mu.Lock()

	seed := RandomSeedWord()
	if err := s.game.Start(seed); err != nil {
		s.mu.Unlock()
		return err
	}

	s.logger.Info("game started", "startedBy", playerID, "seedWord", seed, "players", len(s.game.Players))
	s.queueEvent(domain.NewEvent(domain.EventGameStarted, s.game.GetState()))
	s.startTimerLocked()
	s.mu.Unlock()

	return nil
}

// Submit records a player's word for the current turn. When the last player
// submits, evaluation starts immediately instead of waiting for the timer.
func (s *Session) Submit(playerID, word string) error {
	s.mu.Lock()

	if err := s.game.RecordSubmission(playerID, word); err != nil {
		s.mu.Unlock()
		return err
	}

	s.queueEvent(domain.NewEvent(domain.EventGameState, s.game.GetState()))
	evaluate := s.game.AllSubmitted()
	s.mu.Unlock()

	if evaluate {
		s.EvaluateRound()
	}

	return nil
}

// EvaluateRound runs the round evaluation: snapshot submissions, score them
// via the oracle, award points, extend the chain and advance the turn.
//
// It is triggered by both the timer expiring and the last submission
// arriving; the single-flight guard makes the second trigger a no-op. The
// oracle call is the only slow step and runs outside the lock, with
// submissions already frozen by the guard.
func (s *Session) EvaluateRound() {
	s.mu.Lock()
	if !s.game.BeginEvaluation() {
		s.mu.Unlock()
		return
	}

	s.stopTimerLocked()
	turn := s.game.Turn
	target := s.game.Chain.LastWord()
	subs := s.game.TakeSubmissions()
	s.queueEvent(domain.NewEvent(domain.EventGameState, s.game.GetState()))
	s.mu.Unlock()

	outcome := s.scoreSubmissions(turn, target, subs)

	s.mu.Lock()
	s.applyOutcomeLocked(outcome)

	if finished := s.game.AdvanceTurn(); finished {
		s.logger.Info("game finished", "turns", turn)
		s.queueEvent(domain.NewEvent(domain.EventGameOver, domain.NewGameOverPayload(s.game)))
	} else {
		s.queueEvent(domain.NewEvent(domain.EventGameState, s.game.GetState()))
		s.startTimerLocked()
	}
	s.mu.Unlock()

	s.metrics.IncRoundsEvaluated()
}

// scoreSubmissions calls the scoring oracle and turns its response into a
// round outcome. Oracle failure degrades to an all-zero round, never an
// aborted one.
func (s *Session) scoreSubmissions(turn int, target string, subs []domain.Submission) *domain.RoundOutcome {
	if len(subs) == 0 {
		s.logger.Info("turn timed out with no submissions", "turn", turn)
		return domain.NoSubmissionOutcome(turn)
	}

	candidates := distinctWords(subs)

	start := time.Now()
	scores, err := s.scorer.Score(context.Background(), target, candidates)
	s.metrics.ObserveOracleLatency(time.Since(start))

	if err != nil {
		s.logger.Error("oracle request failed", "turn", turn, "target", target, "error", err)
		s.metrics.IncOracleFailures()
		scores = nil
	}

	outcome := domain.ScoreRound(turn, subs, scores, s.game.Settings)
	outcome.OracleFailed = err != nil
	return outcome
}

// applyOutcomeLocked awards points, appends the chosen chain node and queues
// the round result. Caller must hold mu.
func (s *Session) applyOutcomeLocked(outcome *domain.RoundOutcome) {
	for _, result := range outcome.Results {
		// Players who disconnected mid-evaluation keep no score
		if player, err := s.game.GetPlayer(result.PlayerID); err == nil {
			player.Score += result.Points
		}
	}

	if !outcome.NoSubmissions {
		s.game.Chain.Append(outcome.ChainWord, outcome.ChainPlayerID)
		s.logger.Info("chain extended",
			"turn", outcome.Turn,
			"word", outcome.ChainWord,
			"playerID", outcome.ChainPlayerID,
			"chainLength", s.game.Chain.Len(),
		)
	}

	s.queueEvent(domain.NewEvent(domain.EventRoundResult, domain.NewRoundResultPayload(outcome)))
}

// startTimerLocked starts the turn countdown, cancelling any previous one
// first. Caller must hold mu.
func (s *Session) startTimerLocked() {
	s.stopTimerLocked()

	stop := make(chan struct{})
	s.timerStop = stop
	go s.runTimer(stop)
}

// stopTimerLocked cancels the running countdown, if any. Caller must hold mu.
func (s *Session) stopTimerLocked() {
	if s.timerStop != nil {
		close(s.timerStop)
		s.timerStop = nil
	}
}

// runTimer ticks once per second, broadcasting the remaining time, and
// requests evaluation when the countdown reaches zero. The evaluator's own
// guard decides whether that request does anything.
func (s *Session) runTimer(stop chan struct{}) {
	ticker := s.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-stop:
			return
		case <-ticker.Chan():
			if s.tick() {
				s.EvaluateRound()
				return
			}
		}
	}
}

// tick decrements the shared countdown and reports whether it expired
func (s *Session) tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game.Status != domain.StatusPlaying || !s.game.RoundActive {
		return false
	}

	left := s.game.Tick()
	s.queueEvent(domain.NewEvent(domain.EventTimerTick, &domain.TimerTickPayload{
		Turn:     s.game.Turn,
		TimeLeft: left,
	}))

	return left <= 0
}

// RegisterClient registers a client connection for a player
func (s *Session) RegisterClient(playerID string, client ClientConnection) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[playerID] = client
}

// UnregisterClient removes a client connection
func (s *Session) UnregisterClient(playerID string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, playerID)
}

// queueEvent adds an event to the broadcast queue
func (s *Session) queueEvent(event *domain.GameEvent) {
	select {
	case s.events <- event:
	default:
		s.logger.Warn("event queue full, dropping event", "type", event.Type)
	}
}

// eventLoop processes events and broadcasts to clients
func (s *Session) eventLoop() {
	for {
		select {
		case <-s.done:
			return
		case event := <-s.events:
			s.broadcastEvent(event)
		}
	}
}

// broadcastEvent sends an event to every connected client
func (s *Session) broadcastEvent(event *domain.GameEvent) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	for playerID, client := range s.clients {
		if err := client.Send(event); err != nil {
			s.logger.Debug("failed to send to client", "playerID", playerID, "error", err)
		}
	}
}

// Close shuts down the session
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)

		s.mu.Lock()
		s.stopTimerLocked()
		s.mu.Unlock()

		s.clientsMu.Lock()
		for _, client := range s.clients {
			client.Close()
		}
		s.clients = make(map[string]ClientConnection)
		s.clientsMu.Unlock()
	})
}

// distinctWords returns the distinct submitted words in arrival order.
// Distinctness is case-insensitive, matching the oracle's lookup rules.
func distinctWords(subs []domain.Submission) []string {
	seen := make(map[string]bool, len(subs))
	words := make([]string, 0, len(subs))

	for _, sub := range subs {
		key := strings.ToLower(sub.Word)
		if !seen[key] {
			seen[key] = true
			words = append(words, sub.Word)
		}
	}

	return words
}

package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabRamosBr/jogo-servidor/internal/domain"
	"github.com/GabRamosBr/jogo-servidor/internal/monitor"
)

// fakeClient records every broadcast event it receives
type fakeClient struct {
	id     string
	mu     sync.Mutex
	events []*domain.GameEvent
}

func (f *fakeClient) Send(message interface{}) error {
	event, ok := message.(*domain.GameEvent)
	if !ok {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeClient) GetPlayerID() string { return f.id }
func (f *fakeClient) Close() error        { return nil }

func (f *fakeClient) count(eventType domain.EventType) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

func (f *fakeClient) lastPayload(eventType domain.EventType) interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.events) - 1; i >= 0; i-- {
		if f.events[i].Type == eventType {
			return f.events[i].Payload
		}
	}
	return nil
}

// mockScorer is a scripted stand-in for the scoring oracle
type mockScorer struct {
	mu     sync.Mutex
	calls  int
	scores map[string]int
	err    error
}

func (m *mockScorer) Score(ctx context.Context, target string, candidates []string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.scores, nil
}

func (m *mockScorer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func newTestSession(t *testing.T, settings domain.Settings, scorer *mockScorer) (*Session, *fakeClient, *clockwork.FakeClock) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := clockwork.NewFakeClock()
	session := NewSession(settings, scorer, clock, monitor.New("test"), logger)
	t.Cleanup(session.Close)

	observer := &fakeClient{id: "observer"}
	session.RegisterClient(observer.id, observer)

	return session, observer, clock
}

func shortSettings(maxTurns, turnSeconds int) domain.Settings {
	settings := domain.DefaultSettings()
	settings.MaxTurns = maxTurns
	settings.TurnSeconds = turnSeconds
	return settings
}

func TestSession_JoinRules(t *testing.T) {
	settings := shortSettings(1, 30)
	settings.MaxPlayers = 2
	session, _, _ := newTestSession(t, settings, &mockScorer{})

	_, err := session.Join("p1", "Ana")
	require.NoError(t, err)
	_, err = session.Join("p2", "Beto")
	require.NoError(t, err)

	_, err = session.Join("p3", "Caio")
	assert.ErrorIs(t, err, domain.ErrGameFull)

	require.NoError(t, session.Start("p1"))

	assert.False(t, session.CanJoin())
	_, err = session.Join("p3", "Caio")
	assert.ErrorIs(t, err, domain.ErrGameInProgress)
}

func TestSession_StartOnlyFromLobby(t *testing.T) {
	session, _, _ := newTestSession(t, shortSettings(5, 30), &mockScorer{})

	assert.ErrorIs(t, session.Start("ghost"), domain.ErrNoPlayers)

	session.Join("p1", "Ana")
	require.NoError(t, session.Start("p1"))
	assert.ErrorIs(t, session.Start("p1"), domain.ErrNotInLobby)
}

func TestSession_AllSubmittedTriggersImmediateEvaluation(t *testing.T) {
	scorer := &mockScorer{scores: map[string]int{"passado": 80, "carro": 10}}
	session, observer, clock := newTestSession(t, shortSettings(1, 30), scorer)

	session.Join("p1", "Ana")
	session.Join("p2", "Beto")
	require.NoError(t, session.Start("p1"))
	clock.BlockUntil(1)

	require.NoError(t, session.Submit("p1", "Passado"))
	require.NoError(t, session.Submit("p2", "Carro"))

	// The second submission completes the roster and evaluates synchronously
	state := session.GetState()
	assert.Equal(t, domain.StatusFinished, state.Status)
	assert.Len(t, state.Chain, 2, "seed plus one appended node")
	assert.Equal(t, 1, scorer.callCount())

	// A later timer expiry must not evaluate again
	clock.Advance(31 * time.Second)

	assert.Eventually(t, func() bool {
		return observer.count(domain.EventRoundResult) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, scorer.callCount())
	assert.Len(t, session.GetState().Chain, 2)
}

func TestSession_TimerExpiryWithNoSubmissions(t *testing.T) {
	session, observer, clock := newTestSession(t, shortSettings(2, 2), &mockScorer{})

	session.Join("p1", "Ana")
	require.NoError(t, session.Start("p1"))
	clock.BlockUntil(1)

	clock.Advance(time.Second)
	require.Eventually(t, func() bool {
		return observer.count(domain.EventTimerTick) >= 1
	}, 2*time.Second, 10*time.Millisecond, "countdown broadcasts every tick")

	clock.Advance(time.Second)

	require.Eventually(t, func() bool {
		return observer.count(domain.EventRoundResult) == 1
	}, 2*time.Second, 10*time.Millisecond)

	payload, ok := observer.lastPayload(domain.EventRoundResult).(*domain.RoundResultPayload)
	require.True(t, ok)
	assert.True(t, payload.NoSubmissions)
	assert.Contains(t, payload.Summary, "nobody submitted")

	// Turn advanced, chain unchanged
	state := session.GetState()
	assert.Equal(t, 2, state.Turn)
	assert.Len(t, state.Chain, 1)
}

func TestSession_EvaluateRoundSingleFlight(t *testing.T) {
	scorer := &mockScorer{scores: map[string]int{"passado": 80}}
	session, observer, clock := newTestSession(t, shortSettings(5, 30), scorer)

	session.Join("p1", "Ana")
	session.Join("p2", "Beto")
	require.NoError(t, session.Start("p1"))
	clock.BlockUntil(1)

	require.NoError(t, session.Submit("p1", "Passado"))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session.EvaluateRound()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, scorer.callCount(), "oracle is invoked at most once per round")

	state := session.GetState()
	assert.Equal(t, 2, state.Turn)
	assert.Len(t, state.Chain, 2, "exactly one chain append")

	assert.Eventually(t, func() bool {
		return observer.count(domain.EventRoundResult) == 1
	}, 2*time.Second, 10*time.Millisecond, "exactly one round result broadcast")
}

func TestSession_ScoringScenario(t *testing.T) {
	scorer := &mockScorer{scores: map[string]int{"passado": 80, "carro": 10}}
	session, observer, clock := newTestSession(t, shortSettings(1, 30), scorer)

	session.Join("p1", "Ana")
	session.Join("p2", "Beto")
	require.NoError(t, session.Start("p1"))
	clock.BlockUntil(1)

	require.NoError(t, session.Submit("p1", "Passado"))
	require.NoError(t, session.Submit("p2", "Carro"))

	require.Eventually(t, func() bool {
		return observer.count(domain.EventGameOver) == 1
	}, 2*time.Second, 10*time.Millisecond)

	payload, ok := observer.lastPayload(domain.EventRoundResult).(*domain.RoundResultPayload)
	require.True(t, ok)
	require.Len(t, payload.Results, 2)
	assert.Equal(t, "Passado", payload.Results[0].Word)
	assert.Equal(t, 7, payload.Results[0].Points)
	assert.Equal(t, 0, payload.Results[1].Points)
	assert.Contains(t, []string{"Passado", "Carro"}, payload.ChainWord)

	over, ok := observer.lastPayload(domain.EventGameOver).(*domain.GameOverPayload)
	require.True(t, ok)
	require.Len(t, over.Standings, 2)
	assert.Equal(t, "Ana", over.Standings[0].Name)
	assert.Equal(t, 7, over.Standings[0].Score)
	assert.Equal(t, 0, over.Standings[1].Score)
}

func TestSession_OracleFailureStillAdvances(t *testing.T) {
	scorer := &mockScorer{err: errors.New("oracle down")}
	session, observer, clock := newTestSession(t, shortSettings(5, 30), scorer)

	session.Join("p1", "Ana")
	require.NoError(t, session.Start("p1"))
	clock.BlockUntil(1)

	require.NoError(t, session.Submit("p1", "Passado"))

	require.Eventually(t, func() bool {
		return observer.count(domain.EventRoundResult) == 1
	}, 2*time.Second, 10*time.Millisecond)

	payload, ok := observer.lastPayload(domain.EventRoundResult).(*domain.RoundResultPayload)
	require.True(t, ok)
	assert.True(t, payload.OracleFailed)
	assert.Equal(t, 0, payload.Results[0].Score)
	assert.Equal(t, 5, payload.Results[0].Points, "winner bonus still applies on all-zero scores")

	// Round still advances and the chain is still extended
	state := session.GetState()
	assert.Equal(t, 2, state.Turn)
	assert.Len(t, state.Chain, 2)
	assert.Equal(t, "Passado", state.Chain[1].Word)
}

func TestSession_FullGameReachesFinished(t *testing.T) {
	scorer := &mockScorer{scores: map[string]int{"palavra": 90}}
	settings := shortSettings(10, 30)
	session, observer, clock := newTestSession(t, settings, scorer)

	session.Join("p1", "Ana")
	require.NoError(t, session.Start("p1"))
	clock.BlockUntil(1)

	for turn := 1; turn <= settings.MaxTurns; turn++ {
		require.NoError(t, session.Submit("p1", "Palavra"))
	}

	state := session.GetState()
	assert.Equal(t, domain.StatusFinished, state.Status)
	assert.Len(t, state.Chain, settings.MaxTurns+1)
	assert.Equal(t, settings.MaxTurns, scorer.callCount())

	require.Eventually(t, func() bool {
		return observer.count(domain.EventGameOver) == 1
	}, 2*time.Second, 10*time.Millisecond)

	over, ok := observer.lastPayload(domain.EventGameOver).(*domain.GameOverPayload)
	require.True(t, ok)
	assert.Equal(t, settings.MaxTurns*7, over.Standings[0].Score)

	// No further submissions or starts accepted
	assert.Error(t, session.Submit("p1", "Tarde"))
	assert.ErrorIs(t, session.Start("p1"), domain.ErrNotInLobby)
}

func TestSession_LeaveCompletesRoundWhenRestSubmitted(t *testing.T) {
	scorer := &mockScorer{scores: map[string]int{"passado": 80}}
	session, observer, clock := newTestSession(t, shortSettings(5, 30), scorer)

	session.Join("p1", "Ana")
	session.Join("p2", "Beto")
	require.NoError(t, session.Start("p1"))
	clock.BlockUntil(1)

	require.NoError(t, session.Submit("p1", "Passado"))

	// The non-submitting player disconnects; everyone left has acted
	session.Leave("p2")

	assert.Equal(t, 1, scorer.callCount())
	state := session.GetState()
	assert.Equal(t, 2, state.Turn)
	assert.Len(t, state.Chain, 2)

	assert.Eventually(t, func() bool {
		return observer.count(domain.EventRoundResult) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

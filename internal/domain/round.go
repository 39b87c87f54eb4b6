package domain

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// SubmissionResult is the scored outcome for one submission
type SubmissionResult struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Word     string `json:"word"`
	Score    int    `json:"score"`
	Points   int    `json:"points"`
	Winner   bool   `json:"winner"`
}

// RoundOutcome holds everything produced by evaluating one turn
type RoundOutcome struct {
	Turn          int
	Results       []SubmissionResult // sorted by score, best first
	ChainWord     string
	ChainPlayerID string
	ChainName     string
	OracleFailed  bool
	NoSubmissions bool
}

// NoSubmissionOutcome is the outcome of a turn that timed out with no words
func NoSubmissionOutcome(turn int) *RoundOutcome {
	return &RoundOutcome{
		Turn:          turn,
		NoSubmissions: true,
	}
}

// ScoreRound scores the turn's submissions against the oracle's response and
// picks the next chain word.
//
// Submissions are ranked by score, descending; ties keep arrival order, so
// the first player to submit wins a tie. Every submission at or above the
// threshold earns points, and the top-ranked submission earns the winner
// bonus on top (or alone, if it scored below the threshold).
//
// The next chain word is drawn uniformly from all submissions, not just the
// winner: the chain is meant to jump unpredictably.
//
// Score lookup is case-insensitive and a word missing from scores counts as
// zero, so a nil map (oracle failure) scores every submission at zero while
// the round still completes.
func ScoreRound(turn int, subs []Submission, scores map[string]int, settings Settings) *RoundOutcome {
	if len(subs) == 0 {
		return NoSubmissionOutcome(turn)
	}

	results := make([]SubmissionResult, 0, len(subs))
	for _, sub := range subs {
		results = append(results, SubmissionResult{
			PlayerID: sub.PlayerID,
			Name:     sub.Name,
			Word:     sub.Word,
			Score:    scores[strings.ToLower(sub.Word)],
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	results[0].Winner = true
	for i := range results {
		if results[i].Score >= settings.ScoreThreshold {
			results[i].Points += settings.ThresholdPoints
		}
		if results[i].Winner {
			results[i].Points += settings.WinnerBonus
		}
	}

	chosen := subs[rand.Intn(len(subs))]

	return &RoundOutcome{
		Turn:          turn,
		Results:       results,
		ChainWord:     chosen.Word,
		ChainPlayerID: chosen.PlayerID,
		ChainName:     chosen.Name,
	}
}

// Summary composes the human-readable round report that is broadcast to all
// players alongside the structured results.
func (o *RoundOutcome) Summary() string {
	var b strings.Builder

	if o.NoSubmissions {
		fmt.Fprintf(&b, "Turn %d: nobody submitted a word in time.", o.Turn)
		return b.String()
	}

	fmt.Fprintf(&b, "Turn %d results:\n", o.Turn)
	if o.OracleFailed {
		b.WriteString("(scoring service unavailable, all words scored 0)\n")
	}

	for _, r := range o.Results {
		fmt.Fprintf(&b, "%s: %q scored %d (+%d points)", r.Name, r.Word, r.Score, r.Points)
		if r.Winner {
			b.WriteString(" - round winner!")
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "The chain jumps to %q (by %s).", o.ChainWord, o.ChainName)
	return b.String()
}

// Package bot turns the lichess client into an automatic player: it
// accepts every challenge, tracks each active game's board through the
// rules library and answers with a shallow capture-happy heuristic.
package bot

import (
	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
)

// Tracker holds the board for one active game. It is rebuilt from the
// full authoritative move list on every state update rather than
// mutated incrementally, so a missed update can never leave it stuck on
// a stale position.
type Tracker struct {
	gameID string
	game   *chess.Game
}

func NewTracker(gameID string) *Tracker {
	return &Tracker{
		gameID: gameID,
		game:   chess.NewGame(),
	}
}

// Reset puts the tracker back on the starting position.
func (t *Tracker) Reset() {
	t.game = chess.NewGame()
}

// Replay resets the tracker and applies every move token in order. A
// token the rules library rejects is skipped and replay continues from
// the position before it; the board may then diverge from the server's
// view, which is why the skip is logged loudly.
func (t *Tracker) Replay(moves []string) {
	t.Reset()

	for i, token := range moves {
		if err := t.apply(token); err != nil {
			log.Error().
				Str("game", t.gameID).
				Int("index", i).
				Str("move", token).
				Err(err).
				Msg("rules engine rejected move during replay, skipping it; tracked board may diverge from the server")
		}
	}
}

// apply decodes one move token against the current position. The
// server sends UCI, but short algebraic tokens are accepted as well.
func (t *Tracker) apply(token string) error {
	pos := t.game.Position()

	move, err := chess.UCINotation{}.Decode(pos, token)
	if err != nil {
		move, err = chess.AlgebraicNotation{}.Decode(pos, token)
	}
	if err != nil {
		return err
	}
	return t.game.Move(move)
}

func (t *Tracker) Position() *chess.Position {
	return t.game.Position()
}

func (t *Tracker) SideToMove() chess.Color {
	return t.game.Position().Turn()
}

// ValidMoves lists the legal moves from the current position, in the
// rules library's enumeration order.
func (t *Tracker) ValidMoves() []*chess.Move {
	return t.game.ValidMoves()
}

// MoveCount reports how many moves have been applied since the last
// reset.
func (t *Tracker) MoveCount() int {
	return len(t.game.Moves())
}

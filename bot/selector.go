package bot

import (
	"math/rand"

	"github.com/notnil/chess"
)

// The one piece of opening "theory" the bot has.
const preferredOpening = "d4"

// ChooseMove picks a move from the legal set:
//
//   - on the very first move, the preferred opening if it is legal;
//   - otherwise a uniformly random capture if any capture is legal;
//   - otherwise a uniformly random legal move.
//
// An empty legal set means the game is over by rule and nil is
// returned. played is the number of moves already on the board. rng is
// the only source of nondeterminism, so callers can pin it in tests.
func ChooseMove(pos *chess.Position, moves []*chess.Move, played int, rng *rand.Rand) *chess.Move {
	if len(moves) == 0 {
		return nil
	}

	if played == 0 {
		notation := chess.AlgebraicNotation{}
		for _, move := range moves {
			if notation.Encode(pos, move) == preferredOpening {
				return move
			}
		}
	} else {
		var captures []*chess.Move
		for _, move := range moves {
			if isCapture(move) {
				captures = append(captures, move)
			}
		}

		if len(captures) > 0 {
			return captures[rng.Intn(len(captures))]
		}
		return moves[rng.Intn(len(moves))]
	}

	return moves[0]
}

func isCapture(move *chess.Move) bool {
	return move.HasTag(chess.Capture) || move.HasTag(chess.EnPassant)
}

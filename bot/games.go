package bot

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"

	"github.com/PaulNaszalyi/custom-chess-bot-sub001/lichess"
)

// gameSession consumes one game's stream and drives its tracker. color
// stays NoColor until the white-side identity of the game is known.
// Each session owns its random source so concurrent games never share
// one.
type gameSession struct {
	bot     *Bot
	tracker *Tracker
	color   chess.Color
	rng     *rand.Rand
}

// playGame follows one game to the end of its stream. Removal of the
// tracker from the registry is not done here; that belongs to the
// account-level gameFinish event.
func (b *Bot) playGame(ctx context.Context, tracker *Tracker) {
	gameID := tracker.gameID

	stream, err := b.client.StreamGame(ctx, gameID)
	if err != nil {
		log.Error().Str("game", gameID).Err(err).Msg("could not open game stream")
		return
	}

	session := &gameSession{
		bot:     b,
		tracker: tracker,
		color:   chess.NoColor,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for msg := range stream.C {
		session.handle(msg)
	}

	if err := stream.Err(); err != nil {
		log.Warn().Str("game", gameID).Err(err).Msg("game stream ended with error")
		return
	}
	log.Debug().Str("game", gameID).Msg("game stream ended")
}

func (s *gameSession) handle(msg lichess.GameMessage) {
	switch msg.Type {
	case lichess.GameFullMessageType:
		full := msg.Data.(lichess.GameFull)
		s.assignColor(full.White.ID, full.Black.ID)
		s.apply(full.State)

	case lichess.GameStateMessageType:
		// A bare state update can arrive before any gameFull if the
		// stream reconnected; recover the color from the game info
		// endpoint in that case.
		if s.color == chess.NoColor && !s.lookupColor() {
			return
		}
		s.apply(msg.Data.(lichess.GameState))

	case lichess.ChatLineMessageType:
		chat := msg.Data.(lichess.ChatLine)
		log.Info().
			Str("game", s.tracker.gameID).
			Str("from", chat.Username).
			Msg("chat: " + chat.Text)

	default:
		log.Debug().
			Str("game", s.tracker.gameID).
			Str("type", msg.RawType).
			Msg("ignoring game update of unknown type")
	}
}

// The bot plays white exactly when the white-side identity of the game
// is its own account, compared case-insensitively. An account matching
// neither side means something is off with the configured identity, so
// say so before defaulting to black.
func (s *gameSession) assignColor(whiteID, blackID string) {
	if strings.EqualFold(s.bot.botID, whiteID) {
		s.color = chess.White
		return
	}

	if !strings.EqualFold(s.bot.botID, blackID) {
		log.Warn().
			Str("game", s.tracker.gameID).
			Str("bot", s.bot.botID).
			Str("white", whiteID).
			Str("black", blackID).
			Msg("bot account matches neither side of the game, playing black")
	}
	s.color = chess.Black
}

func (s *gameSession) lookupColor() bool {
	info, err := s.bot.client.GetGame(s.tracker.gameID)
	if err != nil {
		log.Error().
			Str("game", s.tracker.gameID).
			Err(err).
			Msg("could not look up game info, skipping update")
		return false
	}

	s.assignColor(info.Players.White.User.ID, info.Players.Black.User.ID)
	return true
}

// apply resynchronises the tracker with the authoritative move list and
// moves if it is the bot's turn in a running game.
func (s *gameSession) apply(state lichess.GameState) {
	var moves []string
	if state.Moves != "" {
		moves = strings.Split(state.Moves, " ")
	}
	s.tracker.Replay(moves)

	if state.Status != lichess.StatusStarted {
		log.Info().
			Str("game", s.tracker.gameID).
			Str("status", state.Status).
			Str("winner", state.Winner).
			Msg("game is no longer running")
		return
	}

	if s.tracker.SideToMove() == s.color {
		s.makeMove()
	}
}

func (s *gameSession) makeMove() {
	legal := s.tracker.ValidMoves()
	move := ChooseMove(s.tracker.Position(), legal, s.tracker.MoveCount(), s.rng)
	if move == nil {
		log.Info().Str("game", s.tracker.gameID).Msg("no legal moves, nothing to play")
		return
	}

	moveUCI := chess.UCINotation{}.Encode(s.tracker.Position(), move)
	log.Info().
		Str("game", s.tracker.gameID).
		Str("move", moveUCI).
		Msg("submitting move")

	if err := s.bot.client.PostMove(s.tracker.gameID, moveUCI); err != nil {
		log.Error().
			Str("game", s.tracker.gameID).
			Str("move", moveUCI).
			Err(err).
			Msg("could not submit move")
	}
}

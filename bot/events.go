package bot

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/PaulNaszalyi/custom-chess-bot-sub001/lichess"
)

var errStreamEnded = errors.New("event stream ended")

// Reconnect delays for the account event stream. There is deliberately
// no backoff and no attempt ceiling: the bot reconnects forever until
// the process exits.
const (
	streamErrorDelay = 5 * time.Second
	streamEndDelay   = time.Second
)

// Run consumes the account event stream until ctx is cancelled,
// reconnecting unconditionally whenever the stream errors or ends.
func (b *Bot) Run(ctx context.Context) error {
	return retry.Do(
		func() error { return b.consumeEvents(ctx) },
		retry.Attempts(0),
		retry.DelayType(func(n uint, err error, _ *retry.Config) time.Duration {
			return reconnectDelay(err)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Uint("attempt", n).Err(err).Msg("reconnecting to event stream")
		}),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
}

// reconnectDelay picks how long to wait before the next attempt: a
// clean end of stream is retried quickly, a transport error less so.
func reconnectDelay(err error) time.Duration {
	if errors.Is(err, errStreamEnded) {
		return streamEndDelay
	}
	return streamErrorDelay
}

func (b *Bot) consumeEvents(ctx context.Context) error {
	stream, err := b.client.StreamEvents(ctx)
	if err != nil {
		return err
	}
	log.Info().Msg("listening for account events")

	for msg := range stream.C {
		b.handleEvent(ctx, msg)
	}

	if err := stream.Err(); err != nil {
		return err
	}
	return errStreamEnded
}

func (b *Bot) handleEvent(ctx context.Context, msg lichess.EventMessage) {
	switch msg.Type {
	case lichess.ChallengeEventType:
		b.handleChallenge(msg.Data.(lichess.ChallengeEvent).Challenge)

	case lichess.GameStartEventType:
		b.handleGameStart(ctx, msg.Data.(lichess.GameEvent).Game.ID)

	case lichess.GameFinishEventType:
		b.handleGameFinish(msg.Data.(lichess.GameEvent).Game.ID)

	default:
		log.Info().Str("type", msg.RawType).Msg("ignoring event of unknown type")
	}
}

// Every challenge is accepted, whoever sent it and whatever the terms.
// A failed accept is logged and forgotten; the challenger gets no reply.
func (b *Bot) handleChallenge(challenge lichess.Challenge) {
	log.Info().
		Str("challenge", challenge.ID).
		Str("challenger", challenge.Challenger.Name).
		Str("variant", challenge.Variant.Key).
		Msg("accepting challenge")

	if err := b.client.AcceptChallenge(challenge.ID); err != nil {
		log.Error().Str("challenge", challenge.ID).Err(err).Msg("could not accept challenge")
	}
}

func (b *Bot) handleGameStart(ctx context.Context, gameID string) {
	log.Info().Str("game", gameID).Msg("game started")

	tracker := b.track(gameID)
	go b.playGame(ctx, tracker)
}

func (b *Bot) handleGameFinish(gameID string) {
	if b.untrack(gameID) {
		log.Info().Str("game", gameID).Msg("game finished, tracker released")
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/PaulNaszalyi/custom-chess-bot-sub001/bot"
	"github.com/PaulNaszalyi/custom-chess-bot-sub001/config"
	"github.com/PaulNaszalyi/custom-chess-bot-sub001/lichess"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("bad configuration")
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	client := lichess.NewClient(cfg.Token)

	if cfg.Upgrade {
		if err := client.UpgradeToBot(); err != nil {
			log.Fatal().Err(err).Msg("could not upgrade the account to a bot account")
		}
		log.Info().Msg("account upgraded to a bot account")
	}

	account, err := client.GetAccount()
	if err != nil {
		log.Fatal().Err(err).Msg("could not fetch the bot's own account")
	}
	if !account.IsBot() {
		log.Warn().Str("title", account.Title).Msg("account is not a bot account; the bot API will reject game calls")
	}
	if !strings.EqualFold(account.ID, cfg.BotName) && !strings.EqualFold(account.Username, cfg.BotName) {
		log.Warn().
			Str("account", account.Username).
			Str("configured", cfg.BotName).
			Msg("configured bot name does not match the token's account")
	}
	log.Info().Str("account", account.Username).Msg("bot starting")

	b := bot.New(client, cfg.BotName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := b.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("event loop stopped")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info().Msg("got quit signal, shutting down")
	cancel()
}

package config

import (
	"errors"

	"github.com/namsral/flag"
)

// Config holds everything the bot needs at startup. Values are settable
// via flags or the matching environment variables (LICHESS_TOKEN,
// BOT_NAME, ...).
type Config struct {
	Token   string
	BotName string
	Upgrade bool
	Debug   bool
}

func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("chessbot", flag.ContinueOnError)
	fs.StringVar(&c.Token, "lichess-token", "", "personal API token of the bot account")
	fs.StringVar(&c.BotName, "bot-name", "", "username of the bot account on Lichess")
	fs.BoolVar(&c.Upgrade, "upgrade", false, "upgrade the account to a bot account before starting")
	fs.BoolVar(&c.Debug, "debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if c.Token == "" {
		return errors.New("a Lichess API token is required (-lichess-token or LICHESS_TOKEN)")
	}
	if c.BotName == "" {
		return errors.New("the bot account name is required (-bot-name or BOT_NAME)")
	}
	return nil
}

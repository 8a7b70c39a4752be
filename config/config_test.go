package config

import (
	"testing"

	"github.com/matryer/is"
)

func TestLoadFromFlags(t *testing.T) {
	is := is.New(t)

	c := &Config{}
	err := c.Load([]string{"-lichess-token", "tok", "-bot-name", "bot1", "-debug"})
	is.NoErr(err)
	is.Equal(c.Token, "tok")
	is.Equal(c.BotName, "bot1")
	is.True(c.Debug)
	is.True(!c.Upgrade)
}

func TestLoadFromEnvironment(t *testing.T) {
	is := is.New(t)

	t.Setenv("LICHESS_TOKEN", "envtok")
	t.Setenv("BOT_NAME", "envbot")

	c := &Config{}
	err := c.Load(nil)
	is.NoErr(err)
	is.Equal(c.Token, "envtok")
	is.Equal(c.BotName, "envbot")
}

func TestMissingValuesAreFatal(t *testing.T) {
	is := is.New(t)

	c := &Config{}
	is.True(c.Load([]string{"-bot-name", "bot1"}) != nil)

	c = &Config{}
	is.True(c.Load([]string{"-lichess-token", "tok"}) != nil)
}

package bot

import (
	"sync"

	"github.com/PaulNaszalyi/custom-chess-bot-sub001/lichess"
)

// Bot owns the active-game registry: one Tracker per game currently
// being played, keyed by game id. Entries are created on gameStart
// events and released on gameFinish; nothing else holds a tracker.
type Bot struct {
	client *lichess.Client
	botID  string

	mu    sync.Mutex
	games map[string]*Tracker
}

// New builds a bot playing as the given account. botID is the bot's own
// Lichess identity, used to work out which color it owns in each game.
func New(client *lichess.Client, botID string) *Bot {
	return &Bot{
		client: client,
		botID:  botID,
		games:  make(map[string]*Tracker),
	}
}

func (b *Bot) track(gameID string) *Tracker {
	b.mu.Lock()
	defer b.mu.Unlock()

	tracker := NewTracker(gameID)
	b.games[gameID] = tracker
	return tracker
}

func (b *Bot) untrack(gameID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.games[gameID]
	delete(b.games, gameID)
	return ok
}

func (b *Bot) tracker(gameID string) (*Tracker, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tracker, ok := b.games[gameID]
	return tracker, ok
}

// ActiveGames reports how many games are currently tracked.
func (b *Bot) ActiveGames() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.games)
}

package lichess

import (
	"context"
	"encoding/json"
	"net/http"
)

type GameMessageType int

const (
	UnknownGameMessageType GameMessageType = iota
	GameFullMessageType
	GameStateMessageType
	ChatLineMessageType
)

// Game statuses as reported on the game stream. Anything other than
// StatusStarted means the game is no longer in progress.
const StatusStarted = "started"

// GameFull is the first record on a game stream: the immutable game
// header plus the current state.
type GameFull struct {
	ID    string
	Rated bool

	White   User
	Black   User
	Variant Variant

	InitialFen string
	State      GameState
}

// GameState carries the authoritative space-separated move list (UCI)
// and the game status. It arrives embedded in a GameFull and then on
// its own after every move.
type GameState struct {
	Moves  string
	Status string
	Winner string

	WTime int64 // ms
	WInc  int64

	BTime int64 // ms
	BInc  int64
}

type ChatLine struct {
	Username string
	Text     string
	Room     string
}

type GameMessage struct {
	Type    GameMessageType
	RawType string
	Data    interface{}
}

func (msg *GameMessage) UnmarshalJSON(bytes []byte) error {
	var probe struct {
		Type string
	}
	if err := json.Unmarshal(bytes, &probe); err != nil {
		return err
	}
	msg.RawType = probe.Type

	switch probe.Type {
	case "gameFull":
		var gameFull GameFull
		if err := json.Unmarshal(bytes, &gameFull); err != nil {
			return err
		}
		msg.Type = GameFullMessageType
		msg.Data = gameFull

	case "gameState":
		var gameState GameState
		if err := json.Unmarshal(bytes, &gameState); err != nil {
			return err
		}
		msg.Type = GameStateMessageType
		msg.Data = gameState

	case "chatLine":
		var chatLine ChatLine
		if err := json.Unmarshal(bytes, &chatLine); err != nil {
			return err
		}
		msg.Type = ChatLineMessageType
		msg.Data = chatLine

	default:
		msg.Type = UnknownGameMessageType
	}

	return nil
}

// GameStream delivers per-game state updates on C. Err is valid once C
// has closed.
type GameStream struct {
	C <-chan GameMessage

	err error
}

func (s *GameStream) Err() error { return s.err }

// StreamGame opens the per-game feed for one active game. As with the
// account stream, unparseable lines are skipped.
func (c *Client) StreamGame(ctx context.Context, id string) (*GameStream, error) {
	req, err := c.newRequest(http.MethodGet, "/api/bot/game/stream/"+id, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.doStreamRequest(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	ch := make(chan GameMessage)
	stream := &GameStream{C: ch}
	go func() {
		defer res.Body.Close()
		defer close(ch)

		stream.err = scanStream(ctx, res.Body, func(line []byte) bool {
			var msg GameMessage
			if err := json.Unmarshal(line, &msg); err != nil {
				logDiscardedLine("game", line, err)
				return true
			}

			select {
			case ch <- msg:
				return true
			case <-ctx.Done():
				return false
			}
		})
	}()

	return stream, nil
}

// GameInfo is the subset of the game export endpoint the bot needs:
// enough to recover the white-side identity when a game stream starts
// with a bare state update.
type GameInfo struct {
	ID     string
	Status string

	Players struct {
		White GamePlayer
		Black GamePlayer
	}
}

type GamePlayer struct {
	User   User
	Rating int
}

func (c *Client) GetGame(id string) (*GameInfo, error) {
	req, err := c.newRequest(http.MethodGet, "/api/game/"+id, nil)
	if err != nil {
		return nil, err
	}

	res := GameInfo{}
	err = c.doJSONRequest(req, &res)
	return &res, err
}

// PostMove submits one move for the given game. The move is encoded as
// origin square + destination square + optional promotion piece, e.g.
// "e2e4" or "e7e8q".
func (c *Client) PostMove(gameID, moveUCI string) error {
	return c.postAndDiscard("/api/bot/game/" + gameID + "/move/" + moveUCI)
}

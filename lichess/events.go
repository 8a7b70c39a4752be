package lichess

import (
	"context"
	"encoding/json"
	"net/http"
)

type EventType int

const (
	UnknownEventType EventType = iota
	ChallengeEventType
	GameStartEventType
	GameFinishEventType
)

type Challenge struct {
	ID     string
	Status string
	Rated  bool

	Challenger User
	DestUser   User

	Variant Variant
	Color   string

	TimeControl struct {
		Type      string
		Limit     int64
		Increment int64
	}
}

type ChallengeEvent struct {
	Challenge Challenge
}

// GameEvent is the payload of both gameStart and gameFinish events.
type GameEvent struct {
	Game struct {
		ID     string
		FullID string
		Color  string
	}
}

// EventMessage is one record of the account event stream, dispatched on
// the "type" field. Unrecognised types come through as UnknownEventType
// with RawType set so callers can log them.
type EventMessage struct {
	Type    EventType
	RawType string
	Data    interface{}
}

func (msg *EventMessage) UnmarshalJSON(bytes []byte) error {
	var probe struct {
		Type string
	}
	if err := json.Unmarshal(bytes, &probe); err != nil {
		return err
	}
	msg.RawType = probe.Type

	switch probe.Type {
	case "challenge":
		var challenge ChallengeEvent
		if err := json.Unmarshal(bytes, &challenge); err != nil {
			return err
		}
		msg.Type = ChallengeEventType
		msg.Data = challenge

	case "gameStart":
		var gameStart GameEvent
		if err := json.Unmarshal(bytes, &gameStart); err != nil {
			return err
		}
		msg.Type = GameStartEventType
		msg.Data = gameStart

	case "gameFinish":
		var gameFinish GameEvent
		if err := json.Unmarshal(bytes, &gameFinish); err != nil {
			return err
		}
		msg.Type = GameFinishEventType
		msg.Data = gameFinish

	default:
		msg.Type = UnknownEventType
	}

	return nil
}

// EventStream delivers account events on C until the remote closes the
// connection or the transport fails. Err reports why C closed; it is
// only valid to call once C has been drained.
type EventStream struct {
	C <-chan EventMessage

	err error
}

func (s *EventStream) Err() error { return s.err }

// StreamEvents opens the account-level event feed. Lines that fail to
// parse are discarded and the stream carries on with the next one.
func (c *Client) StreamEvents(ctx context.Context) (*EventStream, error) {
	req, err := c.newRequest(http.MethodGet, "/api/stream/event", nil)
	if err != nil {
		return nil, err
	}

	res, err := c.doStreamRequest(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	ch := make(chan EventMessage)
	stream := &EventStream{C: ch}
	go func() {
		defer res.Body.Close()
		defer close(ch)

		stream.err = scanStream(ctx, res.Body, func(line []byte) bool {
			var msg EventMessage
			if err := json.Unmarshal(line, &msg); err != nil {
				logDiscardedLine("event", line, err)
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

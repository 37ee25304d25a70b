package squiggle

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/footyalerts/footy-alerts/internal/types"
)

// ErrUnrecognizedEvent marks a stream payload that doesn't match any known
// event shape. Such payloads are logged and dropped at the stream boundary.
var ErrUnrecognizedEvent = errors.New("unrecognized event payload")

// Event is one item of the Squiggle event stream. Every variant identifies
// the game it belongs to.
type Event interface {
	ID() uint32
}

type Score struct {
	HomeScore uint16 `json:"hscore"`
	AwayScore uint16 `json:"ascore"`
}

// ScoreEvent is sent whenever a team scores.
type ScoreEvent struct {
	GameID   uint32        `json:"gameid"`
	Type     string        `json:"type"`
	Complete uint8         `json:"complete"`
	Score    Score         `json:"score"`
	Timestr  types.TimeStr `json:"timestr"`
}

func (e ScoreEvent) ID() uint32 { return e.GameID }

// GameEvent is a full snapshot sent at the end of a game. Its fields are
// redundant with the incrementally merged ones, so the processor ignores it.
type GameEvent struct {
	GameID    uint32        `json:"id"`
	Round     uint16        `json:"round"`
	HomeTeam  types.Team    `json:"hteam"`
	AwayTeam  types.Team    `json:"ateam"`
	Complete  uint8         `json:"complete"`
	Winner    *types.Team   `json:"winner"`
	HomeScore uint16        `json:"hscore"`
	AwayScore uint16        `json:"ascore"`
	Timestr   types.TimeStr `json:"timestr"`
}

func (e GameEvent) ID() uint32 { return e.GameID }

// TimeStrEvent is sent periodically with game clock updates.
type TimeStrEvent struct {
	GameID  uint32        `json:"gameid"`
	Timestr types.TimeStr `json:"timestr"`
}

func (e TimeStrEvent) ID() uint32 { return e.GameID }

// CompleteEvent is sent periodically with the percentage of the game played.
type CompleteEvent struct {
	GameID   uint32 `json:"gameid"`
	Complete uint8  `json:"complete"`
}

func (e CompleteEvent) ID() uint32 { return e.GameID }

// WinnerEvent is sent once at the end of a game.
type WinnerEvent struct {
	GameID uint32     `json:"gameid"`
	Winner types.Team `json:"winner"`
}

func (e WinnerEvent) ID() uint32 { return e.GameID }

// ParseEvent classifies a raw stream payload by its field shape. The stream
// itself carries no variant tag, so the distinguishing fields decide: a
// "score" object means a score event, a payload keyed by "id" rather than
// "gameid" is a full game snapshot, and the remaining variants carry exactly
// one field besides "gameid".
func ParseEvent(data []byte) (Event, error) {
	var probe struct {
		GameID   *uint32          `json:"gameid"`
		ID       *uint32          `json:"id"`
		Score    *json.RawMessage `json:"score"`
		Winner   *json.RawMessage `json:"winner"`
		Timestr  *types.TimeStr   `json:"timestr"`
		Complete *uint8           `json:"complete"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("probe event: %w", err)
	}

	switch {
	case probe.GameID != nil && probe.Score != nil:
		var ev ScoreEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("score event: %w", err)
		}
		return ev, nil
	case probe.GameID == nil && probe.ID != nil:
		var ev GameEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("game event: %w", err)
		}
		return ev, nil
	case probe.GameID != nil && probe.Winner != nil:
		var ev WinnerEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("winner event: %w", err)
		}
		return ev, nil
	case probe.GameID != nil && probe.Timestr != nil:
		var ev TimeStrEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("timestr event: %w", err)
		}
		return ev, nil
	case probe.GameID != nil && probe.Complete != nil:
		var ev CompleteEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("complete event: %w", err)
		}
		return ev, nil
	}
	return nil, ErrUnrecognizedEvent
}

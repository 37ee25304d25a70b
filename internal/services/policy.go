package services

import (
	"fmt"

	"github.com/footyalerts/footy-alerts/internal/types"
)

// How complete the game needs to be before close game alerts are considered.
const closeGameCompletionThreshold = 90

// The score margin at or under which a game counts as close.
const closeGameScoreThreshold = 15

// Notification is a due alert for one game, carrying everything needed to
// render the push payload.
type Notification struct {
	Kind      types.NotificationKind
	HomeTeam  types.Team
	AwayTeam  types.Team
	HomeScore uint16
	AwayScore uint16
	Timestr   types.TimeStr
}

// EvaluateGame decides whether a snapshot warrants a notification. It's a
// pure function of the snapshot.
//
// A close game in its final stretch (strictly between 90% and 100% played,
// margin within 15 points) wins over any quarter marker the snapshot also
// carries; full time itself is excluded from the close-game window and is
// reported through the marker branch instead.
func EvaluateGame(game *types.Game) *Notification {
	if game.Complete > closeGameCompletionThreshold && game.Complete < 100 {
		margin := int32(game.HomeScore) - int32(game.AwayScore)
		if margin < 0 {
			margin = -margin
		}
		if margin <= closeGameScoreThreshold {
			return &Notification{
				Kind:      types.NotificationCloseGame,
				HomeTeam:  game.HomeTeam,
				AwayTeam:  game.AwayTeam,
				HomeScore: game.HomeScore,
				AwayScore: game.AwayScore,
				Timestr:   game.Timestr,
			}
		}
		return nil
	}

	var kind types.NotificationKind
	switch game.Timestr {
	case types.TimeStrEndOfFirstQuarter:
		kind = types.NotificationEndOfFirstQuarter
	case types.TimeStrEndOfSecondQuarter:
		kind = types.NotificationEndOfSecondQuarter
	case types.TimeStrEndOfThirdQuarter:
		kind = types.NotificationEndOfThirdQuarter
	case types.TimeStrEndOfGame:
		kind = types.NotificationEndOfGame
	default:
		return nil
	}

	return &Notification{
		Kind:      kind,
		HomeTeam:  game.HomeTeam,
		AwayTeam:  game.AwayTeam,
		HomeScore: game.HomeScore,
		AwayScore: game.AwayScore,
		Timestr:   game.Timestr,
	}
}

// Text renders the single human-readable line that gets pushed to
// subscribers.
func (n *Notification) Text() string {
	scores := fmt.Sprintf("%s %d - %s %d", n.HomeTeam, n.HomeScore, n.AwayTeam, n.AwayScore)

	switch n.Kind {
	case types.NotificationEndOfFirstQuarter:
		return "End of Q1: " + scores
	case types.NotificationEndOfSecondQuarter:
		return "End of Q2: " + scores
	case types.NotificationEndOfThirdQuarter:
		return "End of Q3: " + scores
	case types.NotificationEndOfGame:
		return "End of game: " + scores
	case types.NotificationCloseGame:
		return fmt.Sprintf("Close game (%s): %s", n.Timestr, scores)
	}
	return scores
}

package squiggle

import (
	"github.com/footyalerts/footy-alerts/internal/types"
)

// restGame mirrors one entry of the Squiggle `q=games` response. Only the
// fields the service cares about are decoded; the rest of the payload
// (goals, behinds, venue, ...) is ignored.
type restGame struct {
	ID        uint32         `json:"id"`
	Round     uint16         `json:"round"`
	Year      uint16         `json:"year"`
	Complete  uint8          `json:"complete"`
	HomeTeam  types.Team     `json:"hteamid"`
	AwayTeam  types.Team     `json:"ateamid"`
	HomeScore uint16         `json:"hscore"`
	AwayScore uint16         `json:"ascore"`
	Winner    *types.Team    `json:"winnerteamid"`
	Timestr   *types.TimeStr `json:"timestr"`
	Date      string         `json:"date"`
	TZ        string         `json:"tz"`
}

type gamesResponse struct {
	Games []restGame `json:"games"`
}

func (g restGame) toModel() *types.Game {
	game := &types.Game{
		ID:        g.ID,
		Round:     g.Round,
		Year:      g.Year,
		Complete:  g.Complete,
		HomeTeam:  g.HomeTeam,
		AwayTeam:  g.AwayTeam,
		HomeScore: g.HomeScore,
		AwayScore: g.AwayScore,
		Winner:    g.Winner,
		Date:      g.Date,
		TZ:        g.TZ,
	}
	if g.Timestr != nil {
		game.Timestr = *g.Timestr
	}
	return game
}

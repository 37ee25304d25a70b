package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/footyalerts/footy-alerts/internal/types"
)

type fakeGameService struct {
	games []*types.Game
	err   error
}

func (f *fakeGameService) CurrentRoundGames(ctx context.Context) ([]*types.Game, error) {
	return f.games, f.err
}

func gameRouter(service *fakeGameService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/games", NewGameHandler(service).ListCurrentRound)
	return router
}

func TestListCurrentRound(t *testing.T) {
	winner := types.TeamGeelong
	service := &fakeGameService{games: []*types.Game{{
		ID:        35740,
		Round:     5,
		Year:      2024,
		Complete:  100,
		HomeTeam:  types.TeamGeelong,
		AwayTeam:  types.TeamStKilda,
		HomeScore: 89,
		AwayScore: 60,
		Winner:    &winner,
		Timestr:   types.TimeStrEndOfGame,
	}}}
	router := gameRouter(service)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/games", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d", rec.Code)
	}
	var body struct {
		Games []map[string]any `json:"games"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Games) != 1 {
		t.Fatalf("games: want=1 got=%d", len(body.Games))
	}
	game := body.Games[0]
	if game["home_team"] != "Geelong" || game["away_team"] != "St Kilda" {
		t.Fatalf("teams: got=%v/%v", game["home_team"], game["away_team"])
	}
	if game["winner"] != "Geelong" {
		t.Fatalf("winner: want=Geelong got=%v", game["winner"])
	}
	if game["timestr"] != "Full Time" {
		t.Fatalf("timestr: want=%q got=%v", "Full Time", game["timestr"])
	}
}

func TestListCurrentRoundEmpty(t *testing.T) {
	router := gameRouter(&fakeGameService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/games", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d", rec.Code)
	}
}

func TestListCurrentRoundStoreFailure(t *testing.T) {
	router := gameRouter(&fakeGameService{err: errors.New("db gone")})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/games", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: want=500 got=%d", rec.Code)
	}
}

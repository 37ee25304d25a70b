package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/footyalerts/footy-alerts/internal/services"
)

type GameHandler struct {
	gameService services.GameService
}

func NewGameHandler(gameService services.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// ListCurrentRound serves the fixture list the frontend renders: every game
// of the latest known round.
func (gh *GameHandler) ListCurrentRound(c *gin.Context) {
	games, err := gh.gameService.CurrentRoundGames(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": games})
}

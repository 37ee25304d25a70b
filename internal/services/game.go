package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/footyalerts/footy-alerts/internal/pkg/logger"
	"github.com/footyalerts/footy-alerts/internal/repos"
	"github.com/footyalerts/footy-alerts/internal/types"
)

type GameService interface {
	CurrentRoundGames(ctx context.Context) ([]*types.Game, error)
}

type gameService struct {
	db    *gorm.DB
	log   *logger.Logger
	games repos.GameRepo
}

func NewGameService(db *gorm.DB, baseLog *logger.Logger, games repos.GameRepo) GameService {
	serviceLog := baseLog.With("service", "GameService")
	return &gameService{db: db, log: serviceLog, games: games}
}

func (gs *gameService) CurrentRoundGames(ctx context.Context) ([]*types.Game, error) {
	return gs.games.CurrentRound(ctx, gs.db)
}

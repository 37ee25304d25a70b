package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/footyalerts/footy-alerts/internal/pkg/logger"
	"github.com/footyalerts/footy-alerts/internal/types"
)

type GameRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, gameID uint32) (*types.Game, error)
	Upsert(ctx context.Context, tx *gorm.DB, game *types.Game) error
	CurrentRound(ctx context.Context, tx *gorm.DB) ([]*types.Game, error)
}

type gameRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGameRepo(db *gorm.DB, baseLog *logger.Logger) GameRepo {
	repoLog := baseLog.With("repo", "GameRepo")
	return &gameRepo{db: db, log: repoLog}
}

// GetByID returns nil without an error when the game isn't stored yet.
func (gr *gameRepo) GetByID(ctx context.Context, tx *gorm.DB, gameID uint32) (*types.Game, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	var game types.Game
	err := transaction.WithContext(ctx).
		Where("id = ?", gameID).
		First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// Upsert inserts the snapshot or replaces the existing row. Repeated
// application with the same snapshot is a no-op, which is what makes the
// round backfill safe to race.
func (gr *gameRepo) Upsert(ctx context.Context, tx *gorm.DB, game *types.Game) error {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(game).Error
}

// CurrentRound returns every game of the latest round of the latest season
// present in the store.
func (gr *gameRepo) CurrentRound(ctx context.Context, tx *gorm.DB) ([]*types.Game, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	var games []*types.Game
	err := transaction.WithContext(ctx).
		Where("year = (SELECT MAX(year) FROM games)").
		Where("round = (SELECT MAX(round) FROM games WHERE year = (SELECT MAX(year) FROM games))").
		Order("id").
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

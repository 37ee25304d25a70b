package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/footyalerts/footy-alerts/internal/pkg/logger"
	"github.com/footyalerts/footy-alerts/internal/types"
)

// AlertRepo is the sent-notification ledger. Record must happen before the
// corresponding pushes go out so that reprocessing an event can never fan
// out twice.
type AlertRepo interface {
	Has(ctx context.Context, tx *gorm.DB, gameID uint32, kind types.NotificationKind) (bool, error)
	Record(ctx context.Context, tx *gorm.DB, gameID uint32, kind types.NotificationKind) error
}

type alertRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAlertRepo(db *gorm.DB, baseLog *logger.Logger) AlertRepo {
	repoLog := baseLog.With("repo", "AlertRepo")
	return &alertRepo{db: db, log: repoLog}
}

func (ar *alertRepo) Has(ctx context.Context, tx *gorm.DB, gameID uint32, kind types.NotificationKind) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.Alert{}).
		Where("game_id = ? AND notification = ?", gameID, kind).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ar *alertRepo) Record(ctx context.Context, tx *gorm.DB, gameID uint32, kind types.NotificationKind) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	alert := types.Alert{GameID: gameID, Notification: kind}
	return transaction.WithContext(ctx).Create(&alert).Error
}

package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/footyalerts/footy-alerts/internal/pkg/logger"
	"github.com/footyalerts/footy-alerts/internal/types"
)

type SubscriptionRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, sub *types.Subscription) error
	GetByEndpoint(ctx context.Context, tx *gorm.DB, endpoint string) (*types.Subscription, error)
	ForNotification(ctx context.Context, tx *gorm.DB, home, away types.Team, kind types.NotificationKind) ([]*types.Subscription, error)
	Deactivate(ctx context.Context, tx *gorm.DB, endpoint string) error
}

type subscriptionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubscriptionRepo(db *gorm.DB, baseLog *logger.Logger) SubscriptionRepo {
	repoLog := baseLog.With("repo", "SubscriptionRepo")
	return &subscriptionRepo{db: db, log: repoLog}
}

// Upsert replaces the settings of an existing registration for the same
// endpoint, reactivating it if it had been pruned.
func (sr *subscriptionRepo) Upsert(ctx context.Context, tx *gorm.DB, sub *types.Subscription) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			UpdateAll: true,
		}).
		Create(sub).Error
}

// GetByEndpoint returns nil without an error when no registration exists.
func (sr *subscriptionRepo) GetByEndpoint(ctx context.Context, tx *gorm.DB, endpoint string) (*types.Subscription, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var sub types.Subscription
	err := transaction.WithContext(ctx).
		Where("endpoint = ?", endpoint).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ForNotification returns the active subscriptions that should receive a
// notification of the given kind for a game between home and away: the
// team filter must be empty or match either side, and the interest flag
// for the kind's category must be set.
func (sr *subscriptionRepo) ForNotification(ctx context.Context, tx *gorm.DB, home, away types.Team, kind types.NotificationKind) ([]*types.Subscription, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var subs []*types.Subscription
	err := transaction.WithContext(ctx).
		Where("active = ?", true).
		Where("team IS NULL OR team = ? OR team = ?", home, away).
		Where("(close_games AND ?) OR (final_scores AND ?) OR (quarter_scores AND ?)",
			kind.IsCloseGameNotification(),
			kind.IsFullGameNotification(),
			kind.IsQuarterNotification(),
		).
		Order("endpoint").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

// Deactivate soft-deletes a registration whose endpoint is permanently
// gone. History is kept for stats, so the row itself stays.
func (sr *subscriptionRepo) Deactivate(ctx context.Context, tx *gorm.DB, endpoint string) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Subscription{}).
		Where("endpoint = ?", endpoint).
		Update("active", false).Error
}

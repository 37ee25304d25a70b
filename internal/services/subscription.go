package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/footyalerts/footy-alerts/internal/pkg/logger"
	"github.com/footyalerts/footy-alerts/internal/repos"
	"github.com/footyalerts/footy-alerts/internal/types"
)

// ErrInvalidSubscription marks a registration payload that fails validation,
// as opposed to a store failure.
var ErrInvalidSubscription = errors.New("invalid subscription")

type SubscriptionService interface {
	// Subscribe upserts a registration keyed by its push endpoint.
	Subscribe(ctx context.Context, sub *types.Subscription) error
	// Get returns nil when no registration exists for the endpoint.
	Get(ctx context.Context, endpoint string) (*types.Subscription, error)
}

type subscriptionService struct {
	db   *gorm.DB
	log  *logger.Logger
	subs repos.SubscriptionRepo
}

func NewSubscriptionService(db *gorm.DB, baseLog *logger.Logger, subs repos.SubscriptionRepo) SubscriptionService {
	serviceLog := baseLog.With("service", "SubscriptionService")
	return &subscriptionService{db: db, log: serviceLog, subs: subs}
}

func (ss *subscriptionService) Subscribe(ctx context.Context, sub *types.Subscription) error {
	if sub.Endpoint == "" {
		return fmt.Errorf("%w: endpoint is required", ErrInvalidSubscription)
	}
	if sub.P256dh == "" || sub.Auth == "" {
		return fmt.Errorf("%w: push keys are required", ErrInvalidSubscription)
	}
	if sub.Team != nil && !sub.Team.Valid() {
		return fmt.Errorf("%w: unknown team %d", ErrInvalidSubscription, uint8(*sub.Team))
	}

	sub.Active = true
	return ss.subs.Upsert(ctx, ss.db, sub)
}

func (ss *subscriptionService) Get(ctx context.Context, endpoint string) (*types.Subscription, error) {
	return ss.subs.GetByEndpoint(ctx, ss.db, endpoint)
}

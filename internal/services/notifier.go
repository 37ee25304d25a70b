package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/footyalerts/footy-alerts/internal/clients/webpush"
	"github.com/footyalerts/footy-alerts/internal/pkg/logger"
	"github.com/footyalerts/footy-alerts/internal/repos"
	"github.com/footyalerts/footy-alerts/internal/types"
)

// At most this many push deliveries are in flight for one notification.
const maxInFlightPushes = 10

// Pusher delivers one payload to one subscriber. Failures wrapping
// webpush.ErrEndpointGone mean the registration is permanently dead.
type Pusher interface {
	Send(ctx context.Context, sub *types.Subscription, payload string) error
}

type NotifierService interface {
	// Notify fans a due notification out to every matching subscriber.
	// Individual delivery failures never fail the call; only the
	// subscriber lookup can.
	Notify(ctx context.Context, game *types.Game, notification *Notification) error
	// SendTestNotification pushes a timestamped test message to a single
	// registered endpoint.
	SendTestNotification(ctx context.Context, endpoint string) error
}

type notifierService struct {
	db     *gorm.DB
	log    *logger.Logger
	subs   repos.SubscriptionRepo
	pusher Pusher
}

func NewNotifierService(db *gorm.DB, baseLog *logger.Logger, subs repos.SubscriptionRepo, pusher Pusher) NotifierService {
	serviceLog := baseLog.With("service", "NotifierService")
	return &notifierService{db: db, log: serviceLog, subs: subs, pusher: pusher}
}

type pushResult struct {
	endpoint string
	err      error
}

func (ns *notifierService) Notify(ctx context.Context, game *types.Game, notification *Notification) error {
	subs, err := ns.subs.ForNotification(ctx, ns.db, game.HomeTeam, game.AwayTeam, notification.Kind)
	if err != nil {
		return fmt.Errorf("resolve subscribers: %w", err)
	}
	if len(subs) == 0 {
		return nil
	}

	payload := notification.Text()
	ns.log.Info("Fanning out notification",
		"game_id", game.ID,
		"kind", notification.Kind.String(),
		"subscribers", len(subs),
	)

	// Deliver to everyone and collect every result; one bad endpoint must
	// not starve the rest.
	results := make([]pushResult, len(subs))
	var group errgroup.Group
	group.SetLimit(maxInFlightPushes)
	for i, sub := range subs {
		i, sub := i, sub
		group.Go(func() error {
			results[i] = pushResult{
				endpoint: sub.Endpoint,
				err:      ns.pusher.Send(ctx, sub, payload),
			}
			return nil
		})
	}
	_ = group.Wait()

	for _, res := range results {
		if res.err == nil {
			continue
		}
		if errors.Is(res.err, webpush.ErrEndpointGone) {
			ns.log.Info("Push endpoint gone, deactivating subscription", "endpoint", res.endpoint, "error", res.err)
			if err := ns.subs.Deactivate(ctx, ns.db, res.endpoint); err != nil {
				ns.log.Error("Couldn't deactivate dead subscription", "endpoint", res.endpoint, "error", err)
			}
			continue
		}
		ns.log.Warn("Transient push failure", "endpoint", res.endpoint, "error", res.err)
	}

	return nil
}

func (ns *notifierService) SendTestNotification(ctx context.Context, endpoint string) error {
	sub, err := ns.subs.GetByEndpoint(ctx, ns.db, endpoint)
	if err != nil {
		return fmt.Errorf("look up subscription: %w", err)
	}
	if sub == nil {
		ns.log.Info("No subscription for test notification", "endpoint", endpoint)
		return nil
	}

	now := time.Now().UTC()
	if melbourne, err := time.LoadLocation("Australia/Melbourne"); err == nil {
		now = now.In(melbourne)
	}
	payload := fmt.Sprintf("Test notification from FootyAlerts (%s)", now.Format("2006-01-02 15:04:05 MST"))

	if err := ns.pusher.Send(ctx, sub, payload); err != nil {
		return fmt.Errorf("send test notification: %w", err)
	}
	return nil
}

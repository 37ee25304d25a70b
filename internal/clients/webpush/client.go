package webpush

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/footyalerts/footy-alerts/internal/pkg/logger"
	"github.com/footyalerts/footy-alerts/internal/types"
)

// ErrEndpointGone marks a delivery failure that means the push registration
// is permanently dead (the browser unsubscribed or the endpoint expired).
// Anything else is treated as transient.
var ErrEndpointGone = errors.New("push endpoint gone")

// Client sends Web Push messages signed with the service's VAPID key pair.
type Client struct {
	vapidPublicKey  string
	vapidPrivateKey string
	subscriber      string
	ttl             int
	log             *logger.Logger
}

func NewClient(vapidPublicKey, vapidPrivateKey, subscriber string, baseLog *logger.Logger) (*Client, error) {
	if vapidPrivateKey == "" {
		return nil, errors.New("webpush: VAPID private key is required")
	}
	return &Client{
		vapidPublicKey:  vapidPublicKey,
		vapidPrivateKey: vapidPrivateKey,
		subscriber:      subscriber,
		ttl:             3600,
		log:             baseLog.With("client", "WebPush"),
	}, nil
}

// Send delivers one plaintext payload to a subscriber. Status 404 and 410
// from the push service are reported as ErrEndpointGone; other non-2xx
// statuses and transport errors are transient.
func (c *Client) Send(ctx context.Context, sub *types.Subscription, payload string) error {
	target := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, []byte(payload), target, &webpush.Options{
		Subscriber:      c.subscriber,
		VAPIDPublicKey:  c.vapidPublicKey,
		VAPIDPrivateKey: c.vapidPrivateKey,
		TTL:             c.ttl,
	})
	if err != nil {
		return fmt.Errorf("push to %s: %w", sub.Endpoint, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return fmt.Errorf("push to %s: status %d: %w", sub.Endpoint, resp.StatusCode, ErrEndpointGone)
	case resp.StatusCode >= 300:
		return fmt.Errorf("push to %s: status %d", sub.Endpoint, resp.StatusCode)
	}
	return nil
}

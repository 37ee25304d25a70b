package squiggle

import (
	"context"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	sse "github.com/r3labs/sse/v2"

	"github.com/footyalerts/footy-alerts/internal/pkg/logger"
)

// The stream greets every new connection before sending real events.
const welcomeMessage = `"Hello and welcome to the event channel for ALL events."`

// StreamClient consumes the Squiggle server-sent event stream. Subscribe
// blocks until the stream terminates; reconnecting is the caller's job, so
// the underlying client's own retry machinery is disabled.
type StreamClient struct {
	url       string
	userAgent string
	log       *logger.Logger
}

func NewStreamClient(userAgent string, baseLog *logger.Logger) *StreamClient {
	return &StreamClient{
		url:       defaultBaseURL + "/sse/events",
		userAgent: userAgent,
		log:       baseLog.With("client", "SquiggleStream"),
	}
}

// WithURL points the client somewhere other than the live stream, for tests.
func (c *StreamClient) WithURL(url string) *StreamClient {
	c.url = url
	return c
}

// Subscribe delivers every decodable event to handler, in arrival order, on
// the calling goroutine. Malformed payloads are dropped with a warning. It
// returns when the stream errors out or ctx is cancelled.
func (c *StreamClient) Subscribe(ctx context.Context, handler func(Event)) error {
	client := sse.NewClient(c.url)
	client.Headers["User-Agent"] = c.userAgent
	client.ReconnectStrategy = &backoff.StopBackOff{}

	err := client.SubscribeRawWithContext(ctx, func(msg *sse.Event) {
		data := msg.Data
		if len(data) == 0 {
			return
		}
		if string(data) == welcomeMessage {
			c.log.Info("Received stream welcome message")
			return
		}

		event, err := ParseEvent(data)
		if err != nil {
			if errors.Is(err, ErrUnrecognizedEvent) {
				c.log.Warn("Dropping unrecognized stream payload", "payload", string(data))
			} else {
				c.log.Warn("Couldn't decode stream payload", "payload", string(data), "error", err)
			}
			return
		}
		handler(event)
	})
	if err != nil {
		return fmt.Errorf("event stream: %w", err)
	}
	return nil
}

package services

import (
	"context"
	"time"

	"github.com/footyalerts/footy-alerts/internal/pkg/logger"
	"github.com/footyalerts/footy-alerts/internal/squiggle"
)

// Delay before reconnecting after the stream dies, so a flapping upstream
// doesn't get hammered.
const streamReconnectDelay = 30 * time.Second

// StreamSource is the live event transport. Subscribe blocks for the
// lifetime of one connection.
type StreamSource interface {
	Subscribe(ctx context.Context, handler func(squiggle.Event)) error
}

// EventLoop drives the processor from the live stream, one event at a time,
// reconnecting forever until the context is cancelled.
type EventLoop struct {
	stream    StreamSource
	processor ProcessorService
	log       *logger.Logger
	backoff   time.Duration
}

func NewEventLoop(stream StreamSource, processor ProcessorService, baseLog *logger.Logger) *EventLoop {
	return &EventLoop{
		stream:    stream,
		processor: processor,
		log:       baseLog.With("service", "EventLoop"),
		backoff:   streamReconnectDelay,
	}
}

func (el *EventLoop) Run(ctx context.Context) {
	for {
		err := el.stream.Subscribe(ctx, func(event squiggle.Event) {
			// A bad event aborts only itself; the stream carries on.
			if err := el.processor.ProcessEvent(ctx, event); err != nil {
				el.log.Error("Error ingesting event", "game_id", event.ID(), "error", err)
			}
		})
		if ctx.Err() != nil {
			return
		}
		el.log.Warn("Event stream finished, reconnecting after backoff", "error", err, "backoff", el.backoff)

		select {
		case <-time.After(el.backoff):
		case <-ctx.Done():
			return
		}
	}
}

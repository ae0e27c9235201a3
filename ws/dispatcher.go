package ws

import (
	"context"
	"encoding/json"

	"dialog-messenger-api/config/logger"
	"dialog-messenger-api/dto"
	"dialog-messenger-api/metrics"
)

// EventHandler handles one inbound realtime event. Errors are not sent
// back to the originating connection; the realtime channel is
// fire-and-forget and failures are only logged and counted.
type EventHandler func(ctx context.Context, client *Client, data json.RawMessage)

// Dispatcher routes inbound websocket frames to the handler registered
// for their event name.
type Dispatcher struct {
	handlers map[string]EventHandler
	log      *logger.AppLogger
}

func NewDispatcher(log *logger.AppLogger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]EventHandler),
		log:      log,
	}
}

// Register associates a handler with an event name, replacing any
// previous registration.
func (d *Dispatcher) Register(event string, handler EventHandler) {
	d.handlers[event] = handler
}

func (d *Dispatcher) Dispatch(ctx context.Context, client *Client, raw []byte) {
	var envelope dto.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		d.log.WS.Warning.Warn().Err(err).Msg("malformed frame dropped")
		metrics.EventsDropped.WithLabelValues("malformed").Inc()
		return
	}

	handler, ok := d.handlers[envelope.Event]
	if !ok {
		d.log.WS.Warning.Warn().Str("event", envelope.Event).Msg("unsupported event dropped")
		metrics.EventsDropped.WithLabelValues("unsupported").Inc()
		return
	}

	handler(ctx, client, envelope.Data)
}

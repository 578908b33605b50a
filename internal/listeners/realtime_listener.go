package listeners

import (
	"context"

	"go.uber.org/zap"

	"plantillas-system/internal/events"
	"plantillas-system/pkg/eventbus"
)

// Broadcaster pushes a typed message to every connected board.
type Broadcaster interface {
	Broadcast(ctx context.Context, messageType string, payload interface{}) error
}

// RealtimeListener forwards domain events to websocket clients.
type RealtimeListener struct {
	broadcaster Broadcaster
	logger      *zap.Logger
}

func NewRealtimeListener(broadcaster Broadcaster, logger *zap.Logger) *RealtimeListener {
	return &RealtimeListener{broadcaster: broadcaster, logger: logger.Named("realtime")}
}

func (l *RealtimeListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.PlantillaActualizadaName, l.Handle)
	bus.Subscribe(events.TicketsActualizadosName, l.Handle)
}

// Handle broadcasts the event itself as the payload, typed by its name.
func (l *RealtimeListener) Handle(ctx context.Context, event eventbus.Event) error {
	l.logger.Debug("difundiendo evento", zap.String("event", event.Name()))
	return l.broadcaster.Broadcast(ctx, event.Name(), event)
}

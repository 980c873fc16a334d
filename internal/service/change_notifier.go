package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/refine-admin-api/internal/models"
	"github.com/noah-isme/refine-admin-api/pkg/events"
)

// ChannelPrefix prefixes the live channel of every resource.
const ChannelPrefix = "resources/"

// ChangeNotifier publishes resource change events on the bus under
// <prefix>.<resource>.<type>. A nil notifier drops events.
type ChangeNotifier struct {
	bus     events.Bus
	prefix  string
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
}

// NewChangeNotifier constructs a ChangeNotifier.
func NewChangeNotifier(bus events.Bus, prefix string, metrics *MetricsService, logger *zap.Logger) *ChangeNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChangeNotifier{bus: bus, prefix: prefix, metrics: metrics, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Subject returns the bus subject for a change.
func (n *ChangeNotifier) Subject(resource string, changeType models.ChangeType) string {
	return events.Subject(n.prefix, resource, string(changeType))
}

// Notify publishes a change. Publish errors are logged, never returned,
// since the mutation has already been committed.
func (n *ChangeNotifier) Notify(ctx context.Context, resource string, changeType models.ChangeType, payload models.ChangePayload) {
	if n == nil || n.bus == nil {
		return
	}
	event := models.ChangeEvent{
		Channel: ChannelPrefix + resource,
		Type:    changeType,
		Payload: payload,
		Date:    n.now(),
	}
	if err := n.bus.Publish(ctx, n.Subject(resource, changeType), event); err != nil {
		n.logger.Warn("failed to publish change event", zap.String("resource", resource), zap.String("type", string(changeType)), zap.Error(err))
		return
	}
	n.metrics.RecordEventPublished(resource, string(changeType))
}

// Subscribe streams raw change events for one resource.
func (n *ChangeNotifier) Subscribe(resource string, buffer int) (<-chan []byte, func(), error) {
	return n.bus.Subscribe(events.Subject(n.prefix, resource, "*"), buffer)
}

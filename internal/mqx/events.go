package mqx

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"portfolio-api/internal/logx"
)

var mqLogger = logx.GetScope("mqx")

// Event types. The type doubles as the routing key.
const (
	ContactSubmitted = "contact.submitted"
	Created          = "created"
	Updated          = "updated"
	Deleted          = "deleted"
)

// Event is the JSON body of every published message.
type Event struct {
	Type string    `json:"type"`
	ID   string    `json:"id"`
	At   time.Time `json:"at"`
	Data any       `json:"data,omitempty"`
}

// Events emits domain events on a best-effort basis: failures are logged and
// never returned. A nil *Events or one without a publisher does nothing.
type Events struct {
	pub     Publisher
	timeout time.Duration
}

// NewEvents wraps pub. pub may be nil.
func NewEvents(pub Publisher) *Events {
	return &Events{pub: pub, timeout: 2 * time.Second}
}

// ResourceEvent names the event for an action on a resource, e.g. "skill.created".
func ResourceEvent(resource, action string) string { return resource + "." + action }

// Emit publishes an event of type typ about document id.
func (e *Events) Emit(ctx context.Context, typ, id string, data any) {
	if e == nil || e.pub == nil {
		return
	}
	body, err := json.Marshal(Event{Type: typ, ID: id, At: time.Now().UTC(), Data: data})
	if err != nil {
		mqLogger.Warn("encode event", zap.String("type", typ), zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.timeout)
	defer cancel()
	if err := e.pub.Publish(ctx, typ, body); err != nil {
		mqLogger.Warn("publish event failed", zap.String("type", typ), zap.String("id", id), zap.Error(err))
	}
}

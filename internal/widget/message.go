package widget

import "github.com/five82/plotsync/internal/registry"

// Message methods sent to a Sink.
const (
	MethodOpen   = "open"   // full state of a new object
	MethodUpdate = "update" // partial state
	MethodClose  = "close"  // object freed
)

// Message is one outbound state change.
type Message struct {
	Method string
	ID     registry.ID
	State  map[string]any
}

// Sink receives outbound messages. Send is called with the manager lock held
// and must not call back into the manager.
type Sink interface {
	Send(Message)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Message)

// Send implements Sink.
func (f SinkFunc) Send(msg Message) { f(msg) }

type nopSink struct{}

func (nopSink) Send(Message) {}

package comm

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/five82/plotsync/internal/logging"
	"github.com/five82/plotsync/internal/registry"
	"github.com/five82/plotsync/internal/widget"
)

// Hub fans manager messages out to every connected renderer and routes
// their patches back into the manager. It implements widget.Sink and
// http.Handler.
type Hub struct {
	mgr  *widget.Manager
	upgr websocket.Upgrader

	mu     sync.Mutex
	conns  map[*conn]struct{}
	nextID int64
}

// NewHub returns a hub serving mgr. The caller installs it as the manager's
// sink.
func NewHub(mgr *widget.Manager) *Hub {
	return &Hub{
		mgr:   mgr,
		conns: make(map[*conn]struct{}),
	}
}

// Send broadcasts msg. It never blocks: a renderer too slow to keep up is
// disconnected and catches up with a full snapshot when it reconnects.
func (h *Hub) Send(msg widget.Message) {
	b, err := json.Marshal(frameOf(msg))
	if err != nil {
		logging.Logger().Error("encode frame", "method", msg.Method, "id", msg.ID.String(), "error", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		if c.offer(b) {
			continue
		}
		logging.Logger().Warn("dropping slow renderer", "conn", c.id)
		delete(h.conns, c)
		c.stop()
		c.wc.Close()
	}
}

// Clients returns the number of connected renderers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Close disconnects every renderer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		delete(h.conns, c)
		c.stop()
	}
}

// ServeHTTP upgrades the request, sends the full state of every live object
// and then reads inbound frames until the renderer goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wc, err := h.upgr.Upgrade(w, r, nil)
	if err != nil {
		logging.Logger().Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	c := h.add(wc)
	logging.Logger().Info("renderer connected", "conn", c.id, "remote", r.RemoteAddr)
	go c.write()

	// registered before the snapshot is taken so no update falls in between
	for _, msg := range h.mgr.States() {
		if !h.reply(c, frameOf(msg)) {
			break
		}
	}

	err = h.read(c)
	h.remove(c)
	if err != nil {
		logging.Logger().Warn("renderer read failed", "conn", c.id, "error", err)
		return
	}
	logging.Logger().Info("renderer disconnected", "conn", c.id)
}

func (h *Hub) add(wc *websocket.Conn) *conn {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	c := newConn(h.nextID, wc)
	h.conns[c] = struct{}{}
	return c
}

func (h *Hub) remove(c *conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
	c.stop()
}

func (h *Hub) reply(c *conn, f Frame) bool {
	b, err := json.Marshal(f)
	if err != nil {
		logging.Logger().Error("encode frame", "method", f.Method, "error", err)
		return true
	}
	return c.push(b)
}

func (h *Hub) read(c *conn) error {
	for {
		op, b, err := c.wc.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return fmt.Errorf("next message: %w", err)
			}
			return nil
		}
		if op != websocket.TextMessage {
			continue
		}
		var f Frame
		if err := json.Unmarshal(b, &f); err != nil {
			h.reply(c, errorFrame("", fmt.Errorf("decode frame: %w", err)))
			continue
		}
		h.dispatch(c, f)
	}
}

func (h *Hub) dispatch(c *conn, f Frame) {
	switch f.Method {
	case widget.MethodUpdate:
		id, err := registry.ParseID(f.CommID)
		if err != nil {
			h.reply(c, errorFrame(f.CommID, err))
			return
		}
		if err := h.mgr.Apply(id, f.Data.State); err != nil {
			logging.Logger().Warn("inbound patch rejected", "conn", c.id, "id", f.CommID, "error", err)
			h.reply(c, errorFrame(f.CommID, err))
		}
	case MethodRequestState:
		id, err := registry.ParseID(f.CommID)
		if err != nil {
			h.reply(c, errorFrame(f.CommID, err))
			return
		}
		state, err := h.mgr.State(id)
		if err != nil {
			h.reply(c, errorFrame(f.CommID, err))
			return
		}
		h.reply(c, Frame{Method: widget.MethodUpdate, CommID: f.CommID, Data: Data{State: state}})
	default:
		logging.Logger().Debug("ignoring frame", "conn", c.id, "method", f.Method)
	}
}

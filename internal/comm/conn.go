package comm

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/five82/plotsync/internal/logging"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 60 * time.Second
	sendBuffer   = 256
	readLimit    = 4 << 20
)

type conn struct {
	id   int64
	wc   *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newConn(id int64, wc *websocket.Conn) *conn {
	wc.SetReadLimit(readLimit)
	return &conn{
		id:   id,
		wc:   wc,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

// stop ends the write loop; safe to call more than once.
func (c *conn) stop() {
	c.once.Do(func() { close(c.done) })
}

// offer queues b without blocking and reports whether it was queued.
func (c *conn) offer(b []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- b:
		return true
	default:
		return false
	}
}

// push queues b, waiting for room unless the connection is stopped.
func (c *conn) push(b []byte) bool {
	select {
	case c.send <- b:
		return true
	case <-c.done:
		return false
	}
}

func (c *conn) write() {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	defer c.wc.Close()
	for {
		select {
		case b := <-c.send:
			c.wc.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.wc.WriteMessage(websocket.TextMessage, b); err != nil {
				logging.Logger().Debug("websocket write failed", "conn", c.id, "error", err)
				c.stop()
				return
			}
		case <-t.C:
			c.wc.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.wc.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.stop()
				return
			}
		case <-c.done:
			c.wc.SetWriteDeadline(time.Now().Add(writeTimeout))
			c.wc.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

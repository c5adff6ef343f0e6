// Package comm carries object state between the manager and browser
// renderers over a websocket.
//
// Every message is a JSON text frame:
//
//	{"method": "update", "comm_id": "<id>", "data": {"state": {...}}}
//
// Outbound methods are open (full state, also replayed to each renderer on
// connect), update (a patch) and close. Inbound, update patches go through
// widget.Manager.Apply and request_state asks for a full state. A rejected
// patch is answered with an error frame whose data.reasons maps each failed
// property to its validation error; the valid keys of the same patch still
// apply.
//
// The connection handling follows a read loop on the handler goroutine and
// a write goroutine that also pings every 60 seconds. Broadcasts never block
// the manager: a renderer whose send buffer is full is disconnected.
package comm

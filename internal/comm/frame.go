package comm

import (
	"errors"

	"github.com/five82/plotsync/internal/prop"
	"github.com/five82/plotsync/internal/widget"
)

// Methods only the transport uses. open, update and close come from the
// widget package.
const (
	MethodError        = "error"
	MethodRequestState = "request_state"
)

// Frame is one websocket text message in either direction.
type Frame struct {
	Method string `json:"method"`
	CommID string `json:"comm_id"`
	Data   Data   `json:"data"`
}

// Data is the frame payload. State carries a full snapshot (open) or a
// patch (update); Error and Reasons answer a rejected inbound patch.
type Data struct {
	State   map[string]any    `json:"state,omitempty"`
	Error   string            `json:"error,omitempty"`
	Reasons map[string]string `json:"reasons,omitempty"`
}

func frameOf(msg widget.Message) Frame {
	return Frame{
		Method: msg.Method,
		CommID: msg.ID.String(),
		Data:   Data{State: msg.State},
	}
}

// errorFrame answers a failed inbound frame. Per-key validation failures are
// listed under Reasons keyed by property name.
func errorFrame(commID string, err error) Frame {
	f := Frame{Method: MethodError, CommID: commID, Data: Data{Error: err.Error()}}
	var perr *widget.PatchError
	if !errors.As(err, &perr) {
		return f
	}
	f.Data.Reasons = make(map[string]string, len(perr.Errors))
	for _, e := range perr.Errors {
		var verr *prop.ValidationError
		if errors.As(e, &verr) {
			f.Data.Reasons[verr.Property] = verr.Reason.Error()
		}
	}
	return f
}

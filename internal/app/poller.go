package app

import (
	"context"
	"time"

	"github.com/five82/plotsync/internal/comm"
	"github.com/five82/plotsync/internal/state"
	"github.com/five82/plotsync/internal/widget"
)

const defaultPollInterval = 500 * time.Millisecond

// StartPoller launches a background goroutine that copies the manager's
// object graph into the store at a fixed cadence. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, mgr *widget.Manager, hub *comm.Hub, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			refresh(store, mgr, hub)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

func refresh(store *state.Store, mgr *widget.Manager, hub *comm.Hub) {
	clients := 0
	if hub != nil {
		clients = hub.Clients()
	}
	store.Update(mgr.Snapshot(), mgr.Stats(), clients)
}

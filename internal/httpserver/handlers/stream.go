package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/juju/errors"

	"github.com/example/monitor/internal/httpserver/deps"
	"github.com/example/monitor/internal/logger"
	"github.com/example/monitor/internal/ports/primary"
)

const defaultStreamWriteTimeout = 5 * time.Second

var streamUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		host := strings.ToLower(strings.TrimSpace(r.Host))
		originHost := strings.ToLower(strings.TrimSpace(u.Host))
		return host == originHost
	},
}

// StatusStream upgrades to a websocket and pushes the current status
// followed by every new observation for the service.
func StatusStream(d deps.Deps) http.HandlerFunc {
	writeTimeout := d.StreamWriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = defaultStreamWriteTimeout
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := serviceID(r)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		// A hijacked connection's request context is not cancelled on disconnect.
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		updates, err := d.Service.SubscribeStatus(ctx, id)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		conn, err := streamUpgrader.Upgrade(w, r, nil)
		if err != nil {
			d.Logger.Debug("websocket upgrade failed", logger.Int64("service_id", id), logger.Error(err))
			return
		}
		defer conn.Close()

		// IDs grow with every append; updates at or below the current frame's
		// were recorded before FetchStatus read the store.
		var sentID int64
		current, err := d.Service.FetchStatus(r.Context(), id)
		switch {
		case err == nil:
			if err := writeStatusFrame(conn, current, writeTimeout); err != nil {
				return
			}
			sentID = current.ID
		case !errors.Is(err, errors.NotFound):
			d.Logger.Warn("failed to load current status for stream", logger.Int64("service_id", id), logger.Error(err))
		}

		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case status, ok := <-updates:
				if !ok {
					return
				}
				if status.ID <= sentID {
					continue
				}
				if err := writeStatusFrame(conn, status, writeTimeout); err != nil {
					return
				}
			}
		}
	}
}

func writeStatusFrame(conn *websocket.Conn, status *primary.StatusLog, timeout time.Duration) error {
	_ = conn.SetWriteDeadline(time.Now().Add(timeout))
	return conn.WriteJSON(status)
}

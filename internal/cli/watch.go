package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/example/monitor/internal/ports/primary"
)

// streamURL converts a server base URL into the websocket stream URL for a service.
func streamURL(server string, serviceID int64) (string, error) {
	u, err := url.Parse(strings.TrimRight(server, "/"))
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid server URL '%s'", server)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported server scheme '%s'", u.Scheme)
	}
	u.Path = fmt.Sprintf("%s/api/services/%d/status/stream", u.Path, serviceID)
	return u.String(), nil
}

// dialStatusStream connects to the server's status stream. The returned
// channel closes when ctx is done or the server goes away.
func dialStatusStream(ctx context.Context, server string, serviceID int64) (<-chan *primary.StatusLog, error) {
	target, err := streamURL(server, serviceID)
	if err != nil {
		return nil, err
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, target, nil)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			var body struct {
				Error string `json:"error"`
			}
			if json.NewDecoder(resp.Body).Decode(&body) == nil && body.Error != "" {
				return nil, fmt.Errorf("%s (%s)", body.Error, http.StatusText(resp.StatusCode))
			}
		}
		return nil, fmt.Errorf("failed to connect to %s: %w", target, err)
	}

	out := make(chan *primary.StatusLog)
	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	go func() {
		defer close(out)
		for {
			var status primary.StatusLog
			if err := conn.ReadJSON(&status); err != nil {
				return
			}
			select {
			case out <- &status:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

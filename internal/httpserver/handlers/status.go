package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/juju/errors"

	"github.com/example/monitor/internal/httpserver/deps"
	"github.com/example/monitor/internal/ports/primary"
)

// recordStatusBody is the prober's payload; the service comes from the path.
type recordStatusBody struct {
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func GetStatus(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := serviceID(r)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		status, err := d.Service.FetchStatus(r.Context(), id)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, status)
	}
}

func RecordStatus(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := serviceID(r)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		var body recordStatusBody
		if err := decodeJSON(w, r, &body); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		status, err := d.Service.RecordStatus(r.Context(), primary.RecordStatusRequest{
			ServiceID: id,
			Status:    body.Status,
			Message:   body.Message,
			Timestamp: body.Timestamp,
		})
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, status)
	}
}

func StatusHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := serviceID(r)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err = strconv.Atoi(raw)
			if err != nil || limit < 0 {
				writeError(w, d.Logger, errors.NotValidf("limit %q", raw))
				return
			}
		}

		logs, err := d.Service.ListStatus(r.Context(), id, limit)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		if logs == nil {
			logs = []*primary.StatusLog{}
		}
		writeJSON(w, http.StatusOK, logs)
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

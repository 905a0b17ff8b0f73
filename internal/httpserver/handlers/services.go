package handlers

import (
	"net/http"
	"strings"

	"github.com/juju/errors"

	"github.com/example/monitor/internal/httpserver/deps"
	"github.com/example/monitor/internal/ports/primary"
)

func ListServices(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, err := d.Service.FetchAll(r.Context())
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		if services == nil {
			services = []*primary.Service{}
		}
		writeJSON(w, http.StatusOK, services)
	}
}

func GetService(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := serviceID(r)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		service, err := d.Service.Fetch(r.Context(), id)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, service)
	}
}

func LookupService(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url := strings.TrimSpace(r.URL.Query().Get("url"))
		if url == "" {
			writeError(w, d.Logger, errors.NewNotValid(nil, "query parameter url is required"))
			return
		}
		service, err := d.Service.FetchByURL(r.Context(), url)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, service)
	}
}

func CreateService(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req primary.CreateServiceRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		resp, err := d.Service.Create(r.Context(), req)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.Header().Set("Location", "/api/services/"+formatID(resp.ServiceID))
		writeJSON(w, http.StatusCreated, resp.Service)
	}
}

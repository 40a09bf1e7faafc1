// Package httpapi exposes a Gateway as a REST API for the dashboard
// frontend: list, create, update, and delete per entity table.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/windfab/towerdesk/gateway"
	"github.com/windfab/towerdesk/record"
)

// Server serves any Gateway over HTTP.
type Server struct {
	gw     gateway.Gateway
	router *mux.Router
	logger *slog.Logger
}

// NewServer creates the API server over a gateway.
func NewServer(gw gateway.Gateway, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		gw:     gw,
		router: mux.NewRouter(),
		logger: logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.HandleFunc("/api/{table}", s.list).Methods("GET")
	s.router.HandleFunc("/api/{table}", s.create).Methods("POST")
	s.router.HandleFunc("/api/{table}/{id}", s.update).Methods("PUT")
	s.router.HandleFunc("/api/{table}/{id}", s.delete).Methods("DELETE")
}

// Handler returns the HTTP handler for the API server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// listResponse is the JSON shape of a list call.
type listResponse struct {
	Data  []record.Record `json:"data"`
	Total int             `json:"total"`
}

// errorResponse is the JSON shape of a failed call.
type errorResponse struct {
	Message string `json:"message"`
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	table := mux.Vars(r)["table"]

	params := gateway.ListParams{
		Search: r.URL.Query().Get("search"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		params.Limit = n
	}
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, "page must be a non-negative integer")
			return
		}
		params.Page = n
	}
	for key, values := range r.URL.Query() {
		if !strings.HasPrefix(key, "filter.") || len(values) == 0 {
			continue
		}
		if params.Filters == nil {
			params.Filters = make(map[string]string)
		}
		params.Filters[strings.TrimPrefix(key, "filter.")] = values[0]
	}

	page, err := s.gw.List(r.Context(), table, params)
	if err != nil {
		s.gatewayError(w, "list", table, err)
		return
	}
	if page.Records == nil {
		page.Records = []record.Record{}
	}
	s.writeJSON(w, http.StatusOK, listResponse{Data: page.Records, Total: page.Total})
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	table := mux.Vars(r)["table"]

	var fld record.Record
	if err := json.NewDecoder(r.Body).Decode(&fld); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := s.gw.Create(r.Context(), table, fld)
	if err != nil {
		s.gatewayError(w, "create", table, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var fld record.Record
	if err := json.NewDecoder(r.Body).Decode(&fld); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := s.gw.Update(r.Context(), vars["table"], vars["id"], fld)
	if err != nil {
		s.gatewayError(w, "update", vars["table"], err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := s.gw.Delete(r.Context(), vars["table"], vars["id"]); err != nil {
		s.gatewayError(w, "delete", vars["table"], err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) gatewayError(w http.ResponseWriter, op, table string, err error) {
	switch {
	case errors.Is(err, gateway.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "record not found")
	case errors.Is(err, gateway.ErrAlreadyExists):
		s.writeError(w, http.StatusConflict, "record already exists")
	default:
		s.logger.Error("gateway call failed",
			"op", op,
			"table", table,
			"error", err,
		)
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Message: message})
}

// Package httpserver exposes the signalhub HTTP API handlers.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/signalhub/signalhub/internal/errs"
	"github.com/signalhub/signalhub/internal/service"
)

// Server wires services into HTTP handlers.
type Server struct {
	auth    service.AuthService
	signals service.SignalService
	devices service.DeviceService
	log     *zap.Logger
}

// New constructs a Server with injected services.
func New(auth service.AuthService, signals service.SignalService, devices service.DeviceService, log *zap.Logger) *Server {
	return &Server{auth: auth, signals: signals, devices: devices, log: log}
}

// Router builds the API routes. Every endpoint sits behind the access gate.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(Recover(s.log))
	r.Use(Logging(s.log))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RequireClient(s.auth))
		r.Get("/signals/{uuid}", s.getSignal)
		r.Post("/signals/compare", s.compareSignals)
		r.Get("/devices", s.listDevices)
	})
	return r
}

// getSignal reports whether a signal has been received; presence is the
// answer, so success carries no body.
func (s *Server) getSignal(w http.ResponseWriter, r *http.Request) {
	client, ok := ClientFromCtx(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	err := s.signals.CheckReceived(r.Context(), client.ID, chi.URLParam(r, "uuid"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type compareRequest struct {
	Signal1UUID string `json:"signal_1_uuid"`
	Signal2UUID string `json:"signal_2_uuid"`
}

type compareResponse struct {
	Percentage float64 `json:"percentage"`
}

// compareSignals scores the similarity of two of the client's signals.
func (s *Server) compareSignals(w http.ResponseWriter, r *http.Request) {
	client, ok := ClientFromCtx(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	score, err := s.signals.Compare(r.Context(), client.ID, req.Signal1UUID, req.Signal2UUID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, compareResponse{Percentage: score})
}

type deviceResponse struct {
	IPAddress string `json:"ip_address"`
	ID        string `json:"id"`
}

// listDevices returns the network address and external id of every device
// the client owns.
func (s *Server) listDevices(w http.ResponseWriter, r *http.Request) {
	client, ok := ClientFromCtx(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	devices, err := s.devices.ListForClient(r.Context(), client.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]deviceResponse, 0, len(devices))
	for _, d := range devices {
		out = append(out, deviceResponse{IPAddress: d.IPAddress, ID: d.ExternalID})
	}
	s.writeJSON(w, http.StatusOK, out)
}

// writeError maps sentinels to status codes; internal detail never leaks.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		w.WriteHeader(http.StatusUnauthorized)
	case errors.Is(err, errs.ErrForbidden):
		w.WriteHeader(http.StatusForbidden)
	case errors.Is(err, errs.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		s.log.Error("internal error", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("write response", zap.Error(err))
	}
}

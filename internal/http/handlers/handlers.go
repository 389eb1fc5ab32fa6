package handlers

import (
	"net/http"
	"strings"

	"furniture-delivery/internal/domain"
	"furniture-delivery/internal/logx"
)

// Handlers holds HTTP handlers dependencies (logger, etc.).
type Handlers struct {
	Logger logx.Logger
}

// New creates a Handlers instance with the given logger.
func New(logger logx.Logger) *Handlers {
	logger = logx.OrNop(logger)
	return &Handlers{Logger: logger}
}

// Ping handles GET /ping and returns 200 with {"message":"pong"}.
func (h *Handlers) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.Logger, w, r, http.StatusOK, map[string]string{"message": "pong"})
}

// HealthcheckHead handles HEAD /healthcheck and returns 204 No Content.
func (h *Handlers) HealthcheckHead(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// Statuses handles GET /statuses: the labels and colors per request type.
func (h *Handlers) Statuses(w http.ResponseWriter, r *http.Request) {
	if s := strings.TrimSpace(r.URL.Query().Get("request_type")); s != "" {
		rt := domain.RequestType(strings.ToLower(s))
		if !rt.Valid() {
			writeError(h.Logger, w, r, http.StatusBadRequest, "unknown request_type")
			return
		}
		writeJSON(h.Logger, w, r, http.StatusOK, domain.Vocabulary(rt))
		return
	}
	all := map[domain.RequestType][]domain.Label{}
	for _, rt := range []domain.RequestType{domain.RequestGeneral, domain.RequestCollection, domain.RequestRemediation} {
		all[rt] = domain.Vocabulary(rt)
	}
	writeJSON(h.Logger, w, r, http.StatusOK, all)
}

// NotFound returns a JSON 404 error for unknown routes.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(h.Logger, w, r, http.StatusNotFound, "route not found")
}

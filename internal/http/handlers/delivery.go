package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"furniture-delivery/internal/board"
	"furniture-delivery/internal/domain"
	"furniture-delivery/internal/logx"
	"furniture-delivery/internal/ordering"
)

// DeliveryHandler handles HTTP requests for delivery resources.
type DeliveryHandler struct {
	usecase deliveryUsecase
	board   boardReader
	logger  logx.Logger
}

// NewDeliveryHandler creates a new DeliveryHandler. b may be nil.
func NewDeliveryHandler(logger logx.Logger, uc deliveryUsecase, b boardReader) *DeliveryHandler {
	logger = logx.OrNop(logger)
	return &DeliveryHandler{usecase: uc, board: b, logger: logger}
}

// Create handles POST /deliveries.
func (h *DeliveryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDeliveryRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, err := h.usecase.Create(r.Context(), req.toModel())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/deliveries/"+strconv.FormatInt(d.ID, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, deliveryToResponse(*d))
}

// GetByID handles GET /deliveries/{id}.
func (h *DeliveryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	d, err := h.usecase.Get(r.Context(), id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryToResponse(*d))
}

// List handles GET /deliveries. A tracking query returns at most one delivery.
func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if tracking := strings.TrimSpace(q.Get("tracking")); tracking != "" {
		d, err := h.usecase.GetByTracking(r.Context(), tracking)
		if err != nil {
			writeServiceError(h.logger, w, r, err)
			return
		}
		writeJSON(h.logger, w, r, http.StatusOK, []deliveryDTO{deliveryToResponse(*d)})
		return
	}

	mode, err := ordering.ParseMode(q.Get("mode"))
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid mode")
		return
	}
	driverID, ok := optionalID(r, "driver_id")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid driver_id")
		return
	}
	f := domain.DeliveryFilter{DriverID: driverID, VisitDate: strings.TrimSpace(q.Get("visit_date"))}
	if s := strings.TrimSpace(q.Get("request_type")); s != "" {
		rt := domain.RequestType(strings.ToLower(s))
		f.RequestType = &rt
	}

	list, err := h.usecase.List(r.Context(), f, mode)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveriesToResponse(list))
}

// Board handles GET /board: the cached, ordered list of every delivery or one driver's.
func (h *DeliveryHandler) Board(w http.ResponseWriter, r *http.Request) {
	if h.board == nil {
		writeError(h.logger, w, r, http.StatusNotFound, "board disabled")
		return
	}
	driverID, ok := optionalID(r, "driver_id")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid driver_id")
		return
	}
	var scope board.Scope
	if driverID != nil {
		scope.DriverID = *driverID
	}

	list, err := h.board.Read(r.Context(), scope)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveriesToResponse(list))
}

func parseTarget(raw string) (domain.Status, error) {
	st, ok := domain.ParseStatus(raw)
	if !ok {
		return "", fmt.Errorf("unknown status %q", raw)
	}
	return st, nil
}

// ChangeStatus handles POST /deliveries/{id}/status.
func (h *DeliveryHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req changeStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	target, err := parseTarget(req.Status)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.usecase.ChangeStatus(r.Context(), id, target)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, outcomeToResponse(out))
}

// Postpone handles POST /deliveries/{id}/postpone.
func (h *DeliveryHandler) Postpone(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req postponeRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	out, err := h.usecase.Postpone(r.Context(), id, req.VisitDate, req.Reason)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, outcomeToResponse(out))
}

// Cancel handles POST /deliveries/{id}/cancel.
func (h *DeliveryHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req cancelRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	out, err := h.usecase.Cancel(r.Context(), id, req.Reason)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, outcomeToResponse(out))
}

// BatchStatus handles POST /deliveries/status.
func (h *DeliveryHandler) BatchStatus(w http.ResponseWriter, r *http.Request) {
	var req batchStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	target, err := parseTarget(req.Status)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.usecase.BatchChangeStatus(r.Context(), req.IDs, target)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, batchToResponse(out))
}

// SaveOrder handles PUT /deliveries/order.
func (h *DeliveryHandler) SaveOrder(w http.ResponseWriter, r *http.Request) {
	var req saveOrderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if err := h.usecase.SaveManualOrder(r.Context(), req.IDs); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AssignDriver handles PUT /deliveries/{id}/driver.
func (h *DeliveryHandler) AssignDriver(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req assignDriverRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, err := h.usecase.AssignDriver(r.Context(), id, req.DriverID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryToResponse(*d))
}

// UnassignDriver handles DELETE /deliveries/{id}/driver.
func (h *DeliveryHandler) UnassignDriver(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.usecase.UnassignDriver(r.Context(), id); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"quickcourt/internal/bookings/service"
	apperrors "quickcourt/pkg/errors"
	httputil "quickcourt/pkg/http"
	"quickcourt/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type AvailabilityHandler struct {
	service service.AvailabilityService
	log     *logger.Logger
}

func NewAvailabilityHandler(service service.AvailabilityService, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log,
	}
}

func (h *AvailabilityHandler) GetDay(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	courtID := query.Get("court_id")
	date := query.Get("date")

	if courtID == "" || date == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Both 'court_id' and 'date' query parameters are required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetDay", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	slotMinutes := 0
	if s := query.Get("slot_minutes"); s != "" {
		var err error
		slotMinutes, err = strconv.Atoi(s)
		if err != nil {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid slot_minutes parameter: %s", s))); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "GetDay", "operation", "WriteError", "error", writeErr)
			}
			return
		}
	}

	slots, err := h.service.GetDayAvailability(r.Context(), courtID, date, slotMinutes)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetDay", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, slots); err != nil {
		h.log.Error("failed to write success response", "handler", "GetDay", "operation", "WriteSuccess", "error", err)
	}
}

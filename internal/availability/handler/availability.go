package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"lamsa/internal/availability/service"
	"lamsa/pkg/config"
	apperrors "lamsa/pkg/errors"
	httputil "lamsa/pkg/http"
	"lamsa/pkg/logger"
	"lamsa/pkg/model"
)

type AvailabilityHandler struct {
	service service.AvailabilityService
	cache   *slotCache
	log     *logger.Logger
}

func NewAvailabilityHandler(svc service.AvailabilityService, cfg *config.Config) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: svc,
		cache:   newSlotCache(cfg.Client.Redis, cfg.SlotCacheTTL, cfg.Log),
		log:     cfg.Log,
	}
}

// GetSlots handles GET /api/v1/providers/:id/slots?date=&service_id=&granularity=&gender=
func (h *AvailabilityHandler) GetSlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	providerID := ps.ByName("id")
	if providerID == "" {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Provider ID parameter is required",
		}); err != nil {
			h.log.Error("failed to write bad request response", "handler", "GetSlots", "operation", "WriteJSON", "error", err)
		}
		return
	}

	query := r.URL.Query()
	slotQuery := &model.SlotQuery{
		ProviderID:      providerID,
		Date:            strings.TrimSpace(query.Get("date")),
		ServiceID:       strings.TrimSpace(query.Get("service_id")),
		RequesterGender: strings.TrimSpace(query.Get("gender")),
	}

	if granStr := query.Get("granularity"); granStr != "" {
		gran, err := strconv.Atoi(granStr)
		if err != nil {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid granularity parameter: %s", granStr))); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "GetSlots", "operation", "WriteError", "error", writeErr)
			}
			return
		}
		slotQuery.GranularityMin = gran
	}

	if day := h.cache.get(r.Context(), slotQuery); day != nil {
		if err := httputil.WriteSuccess(w, day); err != nil {
			h.log.Error("failed to write success response", "handler", "GetSlots", "operation", "WriteSuccess", "error", err)
		}
		return
	}

	day, err := h.service.GetAvailableSlots(r.Context(), slotQuery)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetSlots", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.cache.set(r.Context(), slotQuery, day)

	if err := httputil.WriteSuccess(w, day); err != nil {
		h.log.Error("failed to write success response", "handler", "GetSlots", "operation", "WriteSuccess", "error", err)
	}
}

// CheckAvailability handles POST /api/v1/availability/check. Rejections
// are part of the verdict body, not HTTP errors: a closed slot is an
// expected outcome for the booking workflow.
func (h *AvailabilityHandler) CheckAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.AvailabilityCheck
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CheckAvailability", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	verdict, err := h.service.CheckAvailability(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CheckAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, verdict); err != nil {
		h.log.Error("failed to write success response", "handler", "CheckAvailability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/providers/:id/slots", h.GetSlots)
	router.POST("/api/v1/availability/check", h.CheckAvailability)
}

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dcastillo/iot-telemetry/internal/logger"
	"github.com/dcastillo/iot-telemetry/internal/service"
	"github.com/dcastillo/iot-telemetry/internal/store"
	"github.com/dcastillo/iot-telemetry/internal/utils"
	"github.com/dcastillo/iot-telemetry/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) ingest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var readings []models.Reading
	if err := json.NewDecoder(r.Body).Decode(&readings); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	inserted, err := h.services.TelemetryService.Ingest(ctx, readings)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid or empty readings list")
			utils.WriteJSON(w, "Invalid or empty readings list", http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during readings ingest")
			utils.WriteJSON(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, fmt.Sprintf("Inserted %d records", inserted), http.StatusOK)
}

func (h *Handler) latest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	deviceID := chi.URLParam(r, "deviceID")

	reading, err := h.services.TelemetryService.Latest(ctx, deviceID)
	if err != nil {
		switch {
		// a missing device id and an empty result are deliberately the
		// same not-found outcome
		case errors.Is(err, service.ErrDeviceIDMissing), errors.Is(err, store.ErrNoReadingsFound):
			log.Err(err).Str("deviceID", deviceID).Msg("no reading was found")
			utils.WriteJSON(w, "No readings found", http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during latest reading lookup")
			utils.WriteJSON(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, reading, http.StatusOK)
}

func (h *Handler) query(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	filter, err := readingFilterFromQuery(r)
	if err != nil {
		log.Err(err).Msg("invalid query parameters")
		utils.WriteJSON(w, "Invalid timestamp, expected RFC 3339", http.StatusBadRequest)
		return
	}

	readings, err := h.services.TelemetryService.Query(ctx, filter)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoReadingsFound):
			log.Err(err).Msg("no readings were found")
			utils.WriteJSON(w, "No readings found", http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during readings query")
			utils.WriteJSON(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, readings, http.StatusOK)
}

// readingFilterFromQuery extracts the optional deviceId, startTimestamp, and
// endTimestamp query parameters. Timestamps must be RFC 3339.
func readingFilterFromQuery(r *http.Request) (models.ReadingFilter, error) {
	filter := models.ReadingFilter{
		DeviceID: r.URL.Query().Get("deviceId"),
	}

	if raw := r.URL.Query().Get("startTimestamp"); raw != "" {
		start, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return models.ReadingFilter{}, fmt.Errorf("invalid startTimestamp: %w", err)
		}
		filter.Start = &start
	}

	if raw := r.URL.Query().Get("endTimestamp"); raw != "" {
		end, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return models.ReadingFilter{}, fmt.Errorf("invalid endTimestamp: %w", err)
		}
		filter.End = &end
	}

	return filter, nil
}

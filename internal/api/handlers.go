package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yegors/poh-perf/internal/atmos"
	"github.com/yegors/poh-perf/internal/briefing"
	"github.com/yegors/poh-perf/internal/config"
	"github.com/yegors/poh-perf/internal/performance"
	"github.com/yegors/poh-perf/internal/storage/sqlite"
	"github.com/yegors/poh-perf/pkg/logger"
)

const defaultQueryLimit = 50

// QueryStore persists performance query history. A nil store disables history.
type QueryStore interface {
	StoreQuery(record *sqlite.QueryRecord) (int64, error)
	GetRecentQueries(limit int) ([]*sqlite.QueryRecord, error)
	GetQueriesByType(queryType string, limit int) ([]*sqlite.QueryRecord, error)
}

// Handler contains the HTTP handlers
type Handler struct {
	perfService *performance.Service
	aggregator  *briefing.DataAggregator
	queryStore  QueryStore
	config      *config.Config
	logger      *logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(perfService *performance.Service, aggregator *briefing.DataAggregator, queryStore QueryStore, config *config.Config, logger *logger.Logger) *Handler {
	return &Handler{
		perfService: perfService,
		aggregator:  aggregator,
		queryStore:  queryStore,
		config:      config,
		logger:      logger.Named("api-handlers"),
	}
}

// errorResponse is the structured error body returned by all endpoints
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// datasetInfo describes the loaded dataset without exposing the raw tables
type datasetInfo struct {
	Metadata   performance.Metadata         `json:"metadata"`
	Validation performance.ValidationRanges `json:"validation"`
	Sections   map[string]int               `json:"sections"` // row count per section
}

// GetHealth returns service health
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "ok",
		"aircraft_type": h.perfService.Dataset().Metadata.AircraftType,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}

// GetDataset returns dataset metadata and validation ranges
func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	data := h.perfService.Dataset()

	sections := make(map[string]int, len(data.Sections))
	for name, section := range data.Sections {
		sections[name] = len(section.Rows)
	}

	h.respondJSON(w, http.StatusOK, datasetInfo{
		Metadata:   data.Metadata,
		Validation: data.Ranges,
		Sections:   sections,
	})
}

// GetAtmosphere computes pressure altitude, ISA temperature and density
// altitude from an altimeter setting and outside air temperature
func (h *Handler) GetAtmosphere(w http.ResponseWriter, r *http.Request) {
	fieldElev, err := parseOptionalFloatParam(r, "field_elevation_ft")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	altimeter, err := parseFloatParam(r, "altimeter_inhg")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	oat, err := parseFloatParam(r, "oat_c")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	elevation := h.config.Station.ElevationFeet
	if fieldElev != nil {
		elevation = *fieldElev
	}

	pressureAlt := atmos.PressureAltitude(elevation, altimeter)
	h.respondJSON(w, http.StatusOK, briefing.Atmosphere{
		FieldElevationFt:   elevation,
		AltimeterInHg:      altimeter,
		PressureAltitudeFt: pressureAlt,
		TemperatureC:       oat,
		ISATemperatureC:    atmos.ISATemperature(pressureAlt),
		ISADeviationC:      atmos.ISADeviation(pressureAlt, oat),
		DensityAltitudeFt:  atmos.DensityAltitude(pressureAlt, oat),
	})
}

// GetWindComponents resolves a wind into headwind and crosswind components
// for a runway heading
func (h *Handler) GetWindComponents(w http.ResponseWriter, r *http.Request) {
	heading, err := parseFloatParam(r, "runway_heading_deg")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	windDir, err := parseFloatParam(r, "wind_dir_deg")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	windSpeed, err := parseFloatParam(r, "wind_speed_kt")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	result, err := atmos.WindComponents(heading, windDir, windSpeed)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// GetTakeoffPerformance returns interpolated takeoff distances
func (h *Handler) GetTakeoffPerformance(w http.ResponseWriter, r *http.Request) {
	pressureAlt, temp, ok := h.parseConditions(w, r)
	if !ok {
		return
	}

	result, err := h.perfService.GetTakeoffDistance(pressureAlt, temp)

	record := h.newQueryRecord(sqlite.QueryTypeTakeoff, pressureAlt, temp, err)
	if err == nil {
		record.GroundRollFt = &result.GroundRollFt
		record.TotalDistanceFt = &result.TotalDistanceFt
	}
	h.storeQuery(record)

	if err != nil {
		h.respondQueryError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

// GetLandingPerformance returns interpolated landing distances
func (h *Handler) GetLandingPerformance(w http.ResponseWriter, r *http.Request) {
	pressureAlt, temp, ok := h.parseConditions(w, r)
	if !ok {
		return
	}

	result, err := h.perfService.GetLandingDistance(pressureAlt, temp)

	record := h.newQueryRecord(sqlite.QueryTypeLanding, pressureAlt, temp, err)
	if err == nil {
		record.GroundRollFt = &result.GroundRollFt
		record.TotalDistanceFt = &result.TotalDistanceFt
	}
	h.storeQuery(record)

	if err != nil {
		h.respondQueryError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

// GetClimbPerformance returns the interpolated takeoff climb gradient,
// optionally checked against a required gradient
func (h *Handler) GetClimbPerformance(w http.ResponseWriter, r *http.Request) {
	pressureAlt, temp, ok := h.parseConditions(w, r)
	if !ok {
		return
	}
	required, err := parseOptionalFloatParam(r, "required_ft_per_nm")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	result, err := h.perfService.GetClimbGradient(pressureAlt, temp)
	if err == nil && required != nil {
		result.CheckRequirement(*required)
	}

	record := h.newQueryRecord(sqlite.QueryTypeClimb, pressureAlt, temp, err)
	if err == nil {
		record.GradientFtPerNM = &result.GradientFtPerNM
	}
	h.storeQuery(record)

	if err != nil {
		h.respondQueryError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

// CreateBriefing computes a full pre-departure briefing from observed
// conditions posted as JSON
func (h *Handler) CreateBriefing(w http.ResponseWriter, r *http.Request) {
	var req briefing.BriefingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "bad_request", fmt.Sprintf("invalid briefing request: %v", err))
		return
	}

	context, err := h.aggregator.GetBriefingContext(req)
	if err != nil {
		h.logger.Error("Failed to build briefing context", logger.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal_error", "failed to build briefing")
		return
	}

	h.respondJSON(w, http.StatusOK, context)
}

// GetRecentQueries returns the most recent performance queries
func (h *Handler) GetRecentQueries(w http.ResponseWriter, r *http.Request) {
	if h.queryStore == nil {
		h.respondError(w, http.StatusServiceUnavailable, "history_disabled", "query history storage is disabled")
		return
	}

	records, err := h.queryStore.GetRecentQueries(parseLimitParam(r))
	if err != nil {
		h.logger.Error("Failed to get recent queries", logger.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal_error", "failed to get query history")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"queries": records,
		"count":   len(records),
	})
}

// GetQueriesByType returns recent performance queries of one type
func (h *Handler) GetQueriesByType(w http.ResponseWriter, r *http.Request) {
	if h.queryStore == nil {
		h.respondError(w, http.StatusServiceUnavailable, "history_disabled", "query history storage is disabled")
		return
	}

	queryType := chi.URLParam(r, "type")
	switch queryType {
	case sqlite.QueryTypeTakeoff, sqlite.QueryTypeLanding, sqlite.QueryTypeClimb:
	default:
		h.respondError(w, http.StatusBadRequest, "bad_request", fmt.Sprintf("unknown query type: %s", queryType))
		return
	}

	records, err := h.queryStore.GetQueriesByType(queryType, parseLimitParam(r))
	if err != nil {
		h.logger.Error("Failed to get queries by type", logger.String("type", queryType), logger.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal_error", "failed to get query history")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"queries": records,
		"count":   len(records),
	})
}

// parseConditions reads the pressure altitude and temperature parameters
// shared by the performance endpoints
func (h *Handler) parseConditions(w http.ResponseWriter, r *http.Request) (float64, float64, bool) {
	pressureAlt, err := parseFloatParam(r, "pressure_altitude_ft")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return 0, 0, false
	}
	temp, err := parseFloatParam(r, "temperature_c")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return 0, 0, false
	}
	return pressureAlt, temp, true
}

// newQueryRecord builds a history record for a performance query outcome
func (h *Handler) newQueryRecord(queryType string, pressureAlt, temp float64, err error) *sqlite.QueryRecord {
	record := &sqlite.QueryRecord{
		QueryType:     queryType,
		PressureAltFt: pressureAlt,
		TemperatureC:  temp,
		WeightLb:      h.perfService.Dataset().Metadata.WeightLb,
		Status:        sqlite.QueryStatusOK,
		CreatedAt:     time.Now().UTC(),
	}
	if err != nil {
		record.Status = sqlite.QueryStatusError
		record.ErrorDetail = err.Error()
	}
	return record
}

// storeQuery records a query in history. Storage failures are logged, never
// surfaced to the client.
func (h *Handler) storeQuery(record *sqlite.QueryRecord) {
	if h.queryStore == nil {
		return
	}
	if _, err := h.queryStore.StoreQuery(record); err != nil {
		h.logger.Error("Failed to store query record",
			logger.String("query_type", record.QueryType),
			logger.Error(err))
	}
}

// respondQueryError maps performance errors onto HTTP status codes. Inputs
// outside the validated envelope are client errors; conditions the tables
// cannot answer are unprocessable.
func (h *Handler) respondQueryError(w http.ResponseWriter, err error) {
	var rangeErr *performance.RangeError
	var noDataRange *performance.NoDataRangeError
	var missingField *performance.MissingFieldError
	var noData *performance.NoDataError

	switch {
	case errors.As(err, &rangeErr):
		h.respondError(w, http.StatusBadRequest, "out_of_range", err.Error())
	case errors.As(err, &noDataRange):
		h.respondError(w, http.StatusUnprocessableEntity, "no_tabulated_data", err.Error())
	case errors.As(err, &missingField):
		h.respondError(w, http.StatusUnprocessableEntity, "missing_field", err.Error())
	case errors.As(err, &noData):
		h.respondError(w, http.StatusUnprocessableEntity, "no_data", err.Error())
	default:
		h.logger.Error("Performance query failed", logger.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal_error", "performance query failed")
	}
}

// respondJSON writes a JSON response
func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", logger.Error(err))
	}
}

// respondError writes a structured JSON error response
func (h *Handler) respondError(w http.ResponseWriter, status int, code, message string) {
	h.respondJSON(w, status, errorResponse{Error: message, Code: code})
}

// parseFloatParam reads a required float query parameter
func parseFloatParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing required parameter %s", name)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %s", name, raw)
	}
	return value, nil
}

// parseOptionalFloatParam reads an optional float query parameter, returning
// nil when absent
func parseOptionalFloatParam(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid value for %s: %s", name, raw)
	}
	return &value, nil
}

// parseLimitParam reads the limit query parameter with a default
func parseLimitParam(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultQueryLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return defaultQueryLimit
	}
	return limit
}

package briefing

import (
	"time"

	"github.com/yegors/poh-perf/internal/atmos"
	"github.com/yegors/poh-perf/internal/performance"
)

// BriefingRequest carries the observed conditions a briefing is computed from.
// Field elevation defaults to the configured station elevation when omitted.
type BriefingRequest struct {
	FieldElevationFt     *float64 `json:"field_elevation_ft,omitempty"`
	AltimeterInHg        float64  `json:"altimeter_inhg"`
	TemperatureC         float64  `json:"oat_c"`
	WindDirectionDeg     float64  `json:"wind_dir_deg"`
	WindSpeedKt          float64  `json:"wind_speed_kt"`
	WindTrue             bool     `json:"wind_is_true,omitempty"` // METAR winds are true, tower winds magnetic
	RequiredClimbFtPerNM *float64 `json:"required_ft_per_nm,omitempty"`
}

// AirportInfo describes the configured station
type AirportInfo struct {
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Coordinates []float64 `json:"coordinates"` // [lat, lon]
	ElevationFt float64   `json:"elevation_ft"`
}

// Atmosphere summarizes the derived atmospheric state at the field
type Atmosphere struct {
	FieldElevationFt   float64 `json:"field_elevation_ft"`
	AltimeterInHg      float64 `json:"altimeter_inhg"`
	PressureAltitudeFt float64 `json:"pressure_altitude_ft"`
	TemperatureC       float64 `json:"oat_c"`
	ISATemperatureC    float64 `json:"isa_temperature_c"`
	ISADeviationC      float64 `json:"isa_deviation_c"`
	DensityAltitudeFt  float64 `json:"density_altitude_ft"`
}

// RunwayWind pairs a configured runway with the wind components on it
type RunwayWind struct {
	Runway     string                      `json:"runway"`
	HeadingDeg float64                     `json:"heading_deg"` // magnetic
	LengthFt   float64                     `json:"length_ft"`
	Wind       *atmos.WindComponentsResult `json:"wind,omitempty"`
}

// BriefingContext is the structured pre-departure briefing returned to
// clients. Performance results that could not be computed are nil and the
// reason is recorded in Errors; a briefing never substitutes numbers.
type BriefingContext struct {
	ID                   string                     `json:"id"`
	Timestamp            time.Time                  `json:"timestamp"`
	Airport              AirportInfo                `json:"airport"`
	Atmosphere           Atmosphere                 `json:"atmosphere"`
	MagneticVariationDeg float64                    `json:"magnetic_variation_deg"`
	WindDirectionDeg     float64                    `json:"wind_dir_deg"` // magnetic, after any conversion
	WindSpeedKt          float64                    `json:"wind_speed_kt"`
	Runways              []RunwayWind               `json:"runways"`
	Takeoff              *performance.TakeoffResult `json:"takeoff,omitempty"`
	Landing              *performance.LandingResult `json:"landing,omitempty"`
	Climb                *performance.ClimbResult   `json:"climb,omitempty"`
	Errors               []string                   `json:"errors,omitempty"`
}

package sqlite

import "time"

// Query type values stored in the history
const (
	QueryTypeTakeoff = "takeoff_distance"
	QueryTypeLanding = "landing_distance"
	QueryTypeClimb   = "climb_gradient"
)

// Query status values
const (
	QueryStatusOK    = "ok"
	QueryStatusError = "error"
)

// QueryRecord represents one performance query and its outcome
type QueryRecord struct {
	ID              int64     `json:"id"`
	QueryType       string    `json:"query_type"` // takeoff_distance, landing_distance, climb_gradient
	PressureAltFt   float64   `json:"pressure_altitude_ft"`
	TemperatureC    float64   `json:"temperature_c"`
	WeightLb        float64   `json:"weight_lb"`
	GroundRollFt    *float64  `json:"ground_roll_ft,omitempty"`
	TotalDistanceFt *float64  `json:"total_distance_ft,omitempty"`
	GradientFtPerNM *float64  `json:"gradient_ft_per_nm,omitempty"`
	Status          string    `json:"status"` // ok or error
	ErrorDetail     string    `json:"error_detail,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

package performance

import (
	"fmt"
	"math"
)

// Mandatory section names
const (
	SectionTakeoffDistance      = "takeoff_distance"
	SectionLandingDistance      = "landing_distance"
	SectionTakeoffClimbGradient = "takeoff_climb_gradient"
)

// Field names queried by the service
const (
	FieldGroundRoll    = "ground_roll_ft"
	FieldTotalDistance = "total_distance_ft"
	FieldClimbGradient = "gradient_ft_per_nm"
)

// Metadata identifies the aircraft the dataset describes
type Metadata struct {
	AircraftType string  `json:"aircraft_type"`
	WeightLb     float64 `json:"weight_lb"`
	Source       string  `json:"source,omitempty"`
}

// AxisRange is an inclusive [Min, Max] interval
type AxisRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies inside the inclusive range. Non-finite
// values are never inside.
func (r AxisRange) Contains(v float64) bool {
	return isFinite(v) && v >= r.Min && v <= r.Max
}

// ValidationRanges bounds the conditions the dataset may be queried at
type ValidationRanges struct {
	PressureAltitude AxisRange `json:"pressure_altitude_range_ft"`
	Temperature      AxisRange `json:"temperature_range_celsius"`
}

// TempPoint is one tabulated temperature and its named performance fields
type TempPoint struct {
	TempC  float64
	Fields map[string]float64
}

// Row holds the tabulated temperature points at one pressure altitude
type Row struct {
	PressureAltFt float64
	Temps         []TempPoint
}

// Section is one performance table, for example takeoff distance. Rows need
// not be ordered and need not share temperature points between altitudes.
type Section struct {
	Name string
	Rows []Row
}

// Dataset is a performance dataset. Construct with NewDataset and treat as
// immutable afterwards; concurrent queries share it without locking.
type Dataset struct {
	Metadata Metadata
	Ranges   ValidationRanges
	Sections map[string]*Section
}

var mandatorySections = []string{
	SectionTakeoffDistance,
	SectionLandingDistance,
	SectionTakeoffClimbGradient,
}

// NewDataset builds a dataset and validates its shape. A missing or empty
// mandatory section, a duplicate temperature within a row, or an inverted
// validation range is rejected with a SchemaError.
func NewDataset(meta Metadata, ranges ValidationRanges, sections map[string]*Section) (*Dataset, error) {
	ds := &Dataset{
		Metadata: meta,
		Ranges:   ranges,
		Sections: sections,
	}

	if err := ds.validate(); err != nil {
		return nil, err
	}

	return ds, nil
}

// validate checks the dataset invariants that queries rely on
func (d *Dataset) validate() error {
	if d.Ranges.PressureAltitude.Min > d.Ranges.PressureAltitude.Max {
		return &SchemaError{Section: "validation", Reason: "pressure altitude range is inverted"}
	}
	if d.Ranges.Temperature.Min > d.Ranges.Temperature.Max {
		return &SchemaError{Section: "validation", Reason: "temperature range is inverted"}
	}

	for _, name := range mandatorySections {
		sec, ok := d.Sections[name]
		if !ok || sec == nil {
			return &SchemaError{Section: name, Reason: "mandatory section missing"}
		}
		if len(sec.Rows) == 0 {
			return &SchemaError{Section: name, Reason: "section has no condition rows"}
		}
	}

	for name, sec := range d.Sections {
		for _, row := range sec.Rows {
			seen := make(map[float64]bool, len(row.Temps))
			for _, tp := range row.Temps {
				if seen[tp.TempC] {
					return &SchemaError{
						Section: name,
						Reason:  fmt.Sprintf("duplicate temperature %g at pressure altitude %g", tp.TempC, row.PressureAltFt),
					}
				}
				seen[tp.TempC] = true
			}
		}
	}

	return nil
}

// Conditions echoes the inputs a result was computed for, plus the aircraft
// weight from the dataset metadata
type Conditions struct {
	PressureAltitudeFt float64 `json:"pressure_altitude_ft"`
	TemperatureC       float64 `json:"temperature_c"`
	WeightLb           float64 `json:"weight_lb"`
}

// TakeoffResult is the rounded takeoff performance at the given conditions
type TakeoffResult struct {
	GroundRollFt    float64    `json:"ground_roll_ft"`
	TotalDistanceFt float64    `json:"total_distance_ft"` // over a 50 ft obstacle
	Conditions      Conditions `json:"conditions"`
}

// LandingResult is the rounded landing performance at the given conditions
type LandingResult struct {
	GroundRollFt    float64    `json:"ground_roll_ft"`
	TotalDistanceFt float64    `json:"total_distance_ft"`
	Conditions      Conditions `json:"conditions"`
}

// ClimbResult is the takeoff climb gradient at the given conditions
type ClimbResult struct {
	GradientFtPerNM  float64    `json:"gradient_ft_per_nm"`
	RequiredFtPerNM  *float64   `json:"required_ft_per_nm,omitempty"`
	MeetsRequirement *bool      `json:"meets_requirement,omitempty"`
	Conditions       Conditions `json:"conditions"`
}

// CheckRequirement compares the gradient against a required value from a
// published departure procedure and records the outcome on the result.
func (r *ClimbResult) CheckRequirement(requiredFtPerNM float64) bool {
	ok := r.GradientFtPerNM >= requiredFtPerNM
	r.RequiredFtPerNM = &requiredFtPerNM
	r.MeetsRequirement = &ok
	return ok
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

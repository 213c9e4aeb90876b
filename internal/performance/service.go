package performance

import (
	"fmt"
	"math"

	"github.com/yegors/poh-perf/pkg/logger"
)

// sectionRounding is the output rounding step per section. Distances round to
// the nearest 50 ft, gradients to the nearest whole ft/NM.
var sectionRounding = map[string]float64{
	SectionTakeoffDistance:      50,
	SectionLandingDistance:      50,
	SectionTakeoffClimbGradient: 1,
}

// Service answers performance queries against an immutable dataset. It holds
// no mutable state, so one instance serves arbitrarily many concurrent
// callers.
type Service struct {
	data   *Dataset
	logger *logger.Logger
}

// NewService creates a performance query service. The dataset is re-validated
// so a service can never exist over a malformed dataset.
func NewService(data *Dataset, logger *logger.Logger) (*Service, error) {
	if data == nil {
		return nil, fmt.Errorf("dataset must not be nil")
	}

	if err := data.validate(); err != nil {
		return nil, err
	}

	return &Service{
		data:   data,
		logger: logger.Named("performance"),
	}, nil
}

// Dataset returns the dataset the service queries
func (s *Service) Dataset() *Dataset {
	return s.data
}

// GetTakeoffDistance returns ground roll and total distance over a 50 ft
// obstacle for the given conditions, both rounded to the nearest 50 ft.
func (s *Service) GetTakeoffDistance(pressureAltFt, tempC float64) (*TakeoffResult, error) {
	groundRoll, totalDistance, err := s.distanceQuery(SectionTakeoffDistance, pressureAltFt, tempC)
	if err != nil {
		return nil, err
	}

	return &TakeoffResult{
		GroundRollFt:    groundRoll,
		TotalDistanceFt: totalDistance,
		Conditions:      s.conditions(pressureAltFt, tempC),
	}, nil
}

// GetLandingDistance returns landing ground roll and total distance over a
// 50 ft obstacle for the given conditions, both rounded to the nearest 50 ft.
func (s *Service) GetLandingDistance(pressureAltFt, tempC float64) (*LandingResult, error) {
	groundRoll, totalDistance, err := s.distanceQuery(SectionLandingDistance, pressureAltFt, tempC)
	if err != nil {
		return nil, err
	}

	return &LandingResult{
		GroundRollFt:    groundRoll,
		TotalDistanceFt: totalDistance,
		Conditions:      s.conditions(pressureAltFt, tempC),
	}, nil
}

// GetClimbGradient returns the takeoff climb gradient in ft/NM for the given
// conditions, rounded to the nearest whole ft/NM.
func (s *Service) GetClimbGradient(pressureAltFt, tempC float64) (*ClimbResult, error) {
	gradient, err := s.query(SectionTakeoffClimbGradient, pressureAltFt, tempC, FieldClimbGradient)
	if err != nil {
		return nil, err
	}

	return &ClimbResult{
		GradientFtPerNM: gradient,
		Conditions:      s.conditions(pressureAltFt, tempC),
	}, nil
}

// distanceQuery interpolates both distance fields of a section
func (s *Service) distanceQuery(sectionName string, pressureAltFt, tempC float64) (float64, float64, error) {
	groundRoll, err := s.query(sectionName, pressureAltFt, tempC, FieldGroundRoll)
	if err != nil {
		return 0, 0, err
	}

	totalDistance, err := s.query(sectionName, pressureAltFt, tempC, FieldTotalDistance)
	if err != nil {
		return 0, 0, err
	}

	return groundRoll, totalDistance, nil
}

// query validates the conditions, interpolates one field and applies the
// section's output rounding. A RangeError from validation propagates
// unchanged; no interpolation is attempted after it.
func (s *Service) query(sectionName string, pressureAltFt, tempC float64, field string) (float64, error) {
	if err := CheckBounds(pressureAltFt, tempC, s.data.Ranges); err != nil {
		return 0, err
	}

	section, ok := s.data.Sections[sectionName]
	if !ok {
		return 0, &SchemaError{Section: sectionName, Reason: "section not present"}
	}

	value, err := interpolateField(section, pressureAltFt, tempC, field)
	if err != nil {
		s.logger.Debug("Interpolation failed",
			logger.String("section", sectionName),
			logger.String("field", field),
			logger.Float64("pressure_alt_ft", pressureAltFt),
			logger.Float64("temperature_c", tempC),
			logger.Error(err),
		)
		return 0, err
	}

	if step := sectionRounding[sectionName]; step > 0 {
		value = roundToNearest(value, step)
	}

	return value, nil
}

// conditions echoes the query inputs plus the aircraft weight
func (s *Service) conditions(pressureAltFt, tempC float64) Conditions {
	return Conditions{
		PressureAltitudeFt: pressureAltFt,
		TemperatureC:       tempC,
		WeightLb:           s.data.Metadata.WeightLb,
	}
}

// roundToNearest rounds v to the nearest multiple of step, with halves rounded
// away from zero.
func roundToNearest(v, step float64) float64 {
	return math.Round(v/step) * step
}

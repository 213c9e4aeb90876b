package atmos

import (
	"fmt"
	"math"
)

// Crosswind sides
const (
	WindLeft  = "left"
	WindRight = "right"
)

// WindComponentsResult holds runway-relative wind components
type WindComponentsResult struct {
	HeadwindKt         float64 `json:"headwind_kt"` // negative = tailwind
	CrosswindKt        float64 `json:"crosswind_kt"`
	CrosswindDirection string  `json:"crosswind_direction"` // left or right
	AngleDeg           float64 `json:"angle_deg"`           // wind angle off the runway, (-180, 180]
}

// WindComponents resolves wind direction and speed into headwind and crosswind
// components relative to a runway heading. Inputs are degrees and knots and
// must be finite; components and the relative angle are rounded to the nearest
// whole unit.
func WindComponents(runwayHeadingDeg, windDirectionDeg, windSpeedKt float64) (WindComponentsResult, error) {
	if !isFinite(runwayHeadingDeg) || !isFinite(windDirectionDeg) || !isFinite(windSpeedKt) {
		return WindComponentsResult{}, fmt.Errorf("non-finite wind input: heading=%v direction=%v speed=%v",
			runwayHeadingDeg, windDirectionDeg, windSpeedKt)
	}

	// Single modulo reduction into (-180, 180].
	angle := math.Mod(windDirectionDeg-runwayHeadingDeg, 360.0)
	if angle > 180.0 {
		angle -= 360.0
	} else if angle <= -180.0 {
		angle += 360.0
	}

	rad := angle * DEG_TO_RAD
	headwind := math.Round(windSpeedKt * math.Cos(rad))
	crosswind := math.Round(math.Abs(windSpeedKt * math.Sin(rad)))

	direction := WindLeft
	if angle > 0 {
		direction = WindRight
	}

	return WindComponentsResult{
		HeadwindKt:         headwind,
		CrosswindKt:        crosswind,
		CrosswindDirection: direction,
		AngleDeg:           math.Round(angle),
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

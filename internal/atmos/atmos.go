package atmos

import "math"

// Atmospheric constants
const (
	STD_PRESSURE_INHG      = 29.92 // ISA sea level pressure
	FT_PER_INHG            = 1000.0
	ISA_SEA_LEVEL_TEMP_C   = 15.0
	ISA_LAPSE_C_PER_1000FT = 2.0
	DA_FT_PER_DEG_C        = 120.0
	FEET_TO_METERS         = 0.3048
	DEG_TO_RAD             = math.Pi / 180.0
)

// PressureAltitude converts field elevation and altimeter setting to pressure
// altitude in feet, rounded to the nearest 10 ft.
func PressureAltitude(fieldElevationFt, altimeterInHg float64) float64 {
	pa := fieldElevationFt + (STD_PRESSURE_INHG-altimeterInHg)*FT_PER_INHG
	return roundToNearest(pa, 10)
}

// ISATemperature returns the ISA reference temperature in Celsius at the given
// pressure altitude, rounded to the nearest 0.1 C.
func ISATemperature(pressureAltFt float64) float64 {
	t := ISA_SEA_LEVEL_TEMP_C - ISA_LAPSE_C_PER_1000FT*(pressureAltFt/1000.0)
	return math.Round(t*10) / 10
}

// ISADeviation returns how far the observed temperature sits above or below
// the ISA reference temperature at the given pressure altitude.
func ISADeviation(pressureAltFt, oatC float64) float64 {
	return oatC - ISATemperature(pressureAltFt)
}

// DensityAltitude converts pressure altitude and outside air temperature to
// density altitude in feet, rounded to the nearest 50 ft.
func DensityAltitude(pressureAltFt, oatC float64) float64 {
	da := pressureAltFt + DA_FT_PER_DEG_C*ISADeviation(pressureAltFt, oatC)
	return roundToNearest(da, 50)
}

// roundToNearest rounds v to the nearest multiple of step, with halves rounded
// away from zero.
func roundToNearest(v, step float64) float64 {
	return math.Round(v/step) * step
}

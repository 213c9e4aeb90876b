package atmos

import (
	"math"
	"time"

	"github.com/westphae/geomag/pkg/egm96"
	"github.com/westphae/geomag/pkg/wmm"
)

// MagneticVariation returns the magnetic declination in degrees for a given
// position and date (+East, -West). Returns 0 if the WMM calculation fails.
func MagneticVariation(lat, lon, altFt float64, date time.Time) float64 {
	loc := egm96.NewLocationGeodetic(lat, lon, altFt*FEET_TO_METERS)

	mag, err := wmm.CalculateWMMMagneticField(loc, date)
	if err != nil {
		return 0.0
	}

	return mag.D() // Declination
}

// TrueToMagnetic converts a true bearing to a magnetic bearing using the given
// variation, normalized to [0, 360).
func TrueToMagnetic(trueDeg, variationDeg float64) float64 {
	return math.Mod(trueDeg-variationDeg+360.0, 360.0)
}

// MagneticToTrue converts a magnetic bearing to a true bearing using the given
// variation, normalized to [0, 360).
func MagneticToTrue(magneticDeg, variationDeg float64) float64 {
	return math.Mod(magneticDeg+variationDeg+360.0, 360.0)
}

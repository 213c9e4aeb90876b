package performance

import "fmt"

// Axis names carried by range errors
const (
	AxisPressureAltitude = "pressure_altitude"
	AxisTemperature      = "temperature"
)

// SchemaError reports a dataset that fails construction validation
type SchemaError struct {
	Section string
	Reason  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid dataset: section %s: %s", e.Section, e.Reason)
}

// RangeError reports a query outside the validated envelope
type RangeError struct {
	Axis  string
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %g outside validated range [%g, %g]", e.Axis, e.Value, e.Min, e.Max)
}

// NoDataRangeError reports a query inside the validated envelope but outside
// the tabulated grid on one axis. The engine never extrapolates to cover it.
type NoDataRangeError struct {
	Axis         string
	Target       float64
	AvailableMin float64
	AvailableMax float64
}

func (e *NoDataRangeError) Error() string {
	return fmt.Sprintf("no tabulated data for %s %g, available range [%g, %g]",
		e.Axis, e.Target, e.AvailableMin, e.AvailableMax)
}

// MissingFieldError reports a tabulated temperature point that lacks the
// requested field
type MissingFieldError struct {
	Field string
	TempC float64
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("field %s missing at temperature %g", e.Field, e.TempC)
}

// NoDataError reports a condition row with no temperature points to
// interpolate the requested field from
type NoDataError struct {
	Field string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no data points for field %s", e.Field)
}

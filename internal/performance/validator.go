package performance

// CheckBounds validates a query point against the dataset's validation
// ranges. Bounds are inclusive on both ends and pressure altitude is checked
// before temperature. Non-finite inputs fail closed with a RangeError.
func CheckBounds(pressureAltFt, tempC float64, ranges ValidationRanges) error {
	if !ranges.PressureAltitude.Contains(pressureAltFt) {
		return &RangeError{
			Axis:  AxisPressureAltitude,
			Value: pressureAltFt,
			Min:   ranges.PressureAltitude.Min,
			Max:   ranges.PressureAltitude.Max,
		}
	}

	if !ranges.Temperature.Contains(tempC) {
		return &RangeError{
			Axis:  AxisTemperature,
			Value: tempC,
			Min:   ranges.Temperature.Min,
			Max:   ranges.Temperature.Max,
		}
	}

	return nil
}

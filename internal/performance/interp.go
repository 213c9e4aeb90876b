package performance

import "sort"

// interpolateField computes the value of field at (targetPA, targetTemp) by
// bilinear interpolation over the section's irregular grid: bracket the
// pressure altitude, interpolate each bracketing row along its temperature
// axis, then blend the two row values. Targets outside the tabulated span on
// either axis fail with NoDataRangeError; extrapolation is never performed.
func interpolateField(section *Section, targetPA, targetTemp float64, field string) (float64, error) {
	if len(section.Rows) == 0 {
		return 0, &NoDataError{Field: field}
	}

	rows := sortedRows(section.Rows)

	minPA := rows[0].PressureAltFt
	maxPA := rows[len(rows)-1].PressureAltFt
	if targetPA < minPA || targetPA > maxPA {
		return 0, &NoDataRangeError{
			Axis:         AxisPressureAltitude,
			Target:       targetPA,
			AvailableMin: minPA,
			AvailableMax: maxPA,
		}
	}

	lower, upper := bracketRows(rows, targetPA)

	lowerVal, err := interpolateRowTemp(lower, targetTemp, field)
	if err != nil {
		return 0, err
	}

	// Exact altitude match needs no second row.
	if lower.PressureAltFt == upper.PressureAltFt {
		return lowerVal, nil
	}

	upperVal, err := interpolateRowTemp(upper, targetTemp, field)
	if err != nil {
		return 0, err
	}

	ratio := (targetPA - lower.PressureAltFt) / (upper.PressureAltFt - lower.PressureAltFt)
	return lowerVal + ratio*(upperVal-lowerVal), nil
}

// interpolateRowTemp linearly interpolates field along the temperature axis of
// a single condition row.
func interpolateRowTemp(row Row, targetTemp float64, field string) (float64, error) {
	if len(row.Temps) == 0 {
		return 0, &NoDataError{Field: field}
	}

	temps := sortedTemps(row.Temps)

	minT := temps[0].TempC
	maxT := temps[len(temps)-1].TempC
	if targetTemp < minT || targetTemp > maxT {
		return 0, &NoDataRangeError{
			Axis:         AxisTemperature,
			Target:       targetTemp,
			AvailableMin: minT,
			AvailableMax: maxT,
		}
	}

	idx := sort.Search(len(temps), func(i int) bool {
		return temps[i].TempC >= targetTemp
	})

	var lower, upper TempPoint
	if temps[idx].TempC == targetTemp {
		lower, upper = temps[idx], temps[idx]
	} else {
		lower, upper = temps[idx-1], temps[idx]
	}

	lowerVal, ok := lower.Fields[field]
	if !ok {
		return 0, &MissingFieldError{Field: field, TempC: lower.TempC}
	}

	// Exact temperature match returns the stored value unchanged.
	if lower.TempC == upper.TempC {
		return lowerVal, nil
	}

	upperVal, ok := upper.Fields[field]
	if !ok {
		return 0, &MissingFieldError{Field: field, TempC: upper.TempC}
	}

	ratio := (targetTemp - lower.TempC) / (upper.TempC - lower.TempC)
	return lowerVal + ratio*(upperVal-lowerVal), nil
}

// bracketRows finds the adjacent row pair enclosing target. Rows must be
// sorted ascending and target must lie within their span.
func bracketRows(rows []Row, target float64) (Row, Row) {
	idx := sort.Search(len(rows), func(i int) bool {
		return rows[i].PressureAltFt >= target
	})

	if rows[idx].PressureAltFt == target {
		return rows[idx], rows[idx]
	}

	return rows[idx-1], rows[idx]
}

// sortedRows returns the rows ordered by ascending pressure altitude without
// mutating the caller's slice. The dataset is shared across concurrent
// queries, so ordering happens on a copy.
func sortedRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PressureAltFt < out[j].PressureAltFt
	})
	return out
}

// sortedTemps returns the temperature points ordered ascending without
// mutating the caller's slice.
func sortedTemps(temps []TempPoint) []TempPoint {
	out := make([]TempPoint, len(temps))
	copy(out, temps)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TempC < out[j].TempC
	})
	return out
}

package performance

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yegors/poh-perf/pkg/logger"
)

// newTestSections builds the three mandatory sections. The landing rows are
// deliberately out of order to exercise the non-mutating sort.
func newTestSections() map[string]*Section {
	return map[string]*Section{
		SectionTakeoffDistance: takeoffSection(),
		SectionLandingDistance: {
			Name: SectionLandingDistance,
			Rows: []Row{
				{PressureAltFt: 4000, Temps: []TempPoint{
					{TempC: 0, Fields: map[string]float64{FieldGroundRoll: 560, FieldTotalDistance: 1300}},
					{TempC: 40, Fields: map[string]float64{FieldGroundRoll: 620, FieldTotalDistance: 1400}},
				}},
				{PressureAltFt: 0, Temps: []TempPoint{
					{TempC: 0, Fields: map[string]float64{FieldGroundRoll: 500, FieldTotalDistance: 1200}},
					{TempC: 40, Fields: map[string]float64{FieldGroundRoll: 560, FieldTotalDistance: 1300}},
				}},
			},
		},
		SectionTakeoffClimbGradient: {
			Name: SectionTakeoffClimbGradient,
			Rows: []Row{
				{PressureAltFt: 0, Temps: []TempPoint{
					{TempC: 0, Fields: map[string]float64{FieldClimbGradient: 720}},
					{TempC: 40, Fields: map[string]float64{FieldClimbGradient: 540}},
				}},
				{PressureAltFt: 4000, Temps: []TempPoint{
					{TempC: 0, Fields: map[string]float64{FieldClimbGradient: 580}},
					{TempC: 40, Fields: map[string]float64{FieldClimbGradient: 410}},
				}},
			},
		},
	}
}

func newTestDataset(t *testing.T) *Dataset {
	t.Helper()

	ds, err := NewDataset(
		Metadata{AircraftType: "C172S", WeightLb: 2550, Source: "test fixture"},
		ValidationRanges{
			PressureAltitude: AxisRange{Min: -1000, Max: 10000},
			Temperature:      AxisRange{Min: -20, Max: 50},
		},
		newTestSections(),
	)
	require.NoError(t, err)

	return ds
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	svc, err := NewService(newTestDataset(t), logger.NewNop())
	require.NoError(t, err)

	return svc
}

func TestNewDatasetSchemaValidation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(map[string]*Section) map[string]*Section
		ranges      ValidationRanges
		wantSection string
	}{
		{
			name: "missing landing section",
			mutate: func(s map[string]*Section) map[string]*Section {
				delete(s, SectionLandingDistance)
				return s
			},
			ranges:      ValidationRanges{PressureAltitude: AxisRange{0, 8000}, Temperature: AxisRange{0, 40}},
			wantSection: SectionLandingDistance,
		},
		{
			name: "empty climb section",
			mutate: func(s map[string]*Section) map[string]*Section {
				s[SectionTakeoffClimbGradient].Rows = nil
				return s
			},
			ranges:      ValidationRanges{PressureAltitude: AxisRange{0, 8000}, Temperature: AxisRange{0, 40}},
			wantSection: SectionTakeoffClimbGradient,
		},
		{
			name: "duplicate temperature in a row",
			mutate: func(s map[string]*Section) map[string]*Section {
				row := &s[SectionTakeoffDistance].Rows[0]
				row.Temps = append(row.Temps, TempPoint{TempC: 0, Fields: map[string]float64{FieldGroundRoll: 1}})
				return s
			},
			ranges:      ValidationRanges{PressureAltitude: AxisRange{0, 8000}, Temperature: AxisRange{0, 40}},
			wantSection: SectionTakeoffDistance,
		},
		{
			name:        "inverted pressure altitude range",
			mutate:      func(s map[string]*Section) map[string]*Section { return s },
			ranges:      ValidationRanges{PressureAltitude: AxisRange{8000, 0}, Temperature: AxisRange{0, 40}},
			wantSection: "validation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDataset(Metadata{WeightLb: 2550}, tt.ranges, tt.mutate(newTestSections()))

			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tt.wantSection, schemaErr.Section)
		})
	}
}

func TestNewServiceRejectsNilAndInvalid(t *testing.T) {
	_, err := NewService(nil, logger.NewNop())
	assert.Error(t, err)

	// A dataset assembled by hand, bypassing NewDataset, is re-checked.
	bad := &Dataset{
		Metadata: Metadata{WeightLb: 2550},
		Ranges: ValidationRanges{
			PressureAltitude: AxisRange{0, 8000},
			Temperature:      AxisRange{0, 40},
		},
		Sections: map[string]*Section{},
	}

	_, err = NewService(bad, logger.NewNop())

	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestGetTakeoffDistance(t *testing.T) {
	svc := newTestService(t)

	t.Run("exact grid point", func(t *testing.T) {
		res, err := svc.GetTakeoffDistance(0, 0)
		require.NoError(t, err)

		assert.Equal(t, 800.0, res.GroundRollFt)
		assert.Equal(t, 1400.0, res.TotalDistanceFt)
		assert.Equal(t, Conditions{PressureAltitudeFt: 0, TemperatureC: 0, WeightLb: 2550}, res.Conditions)
	})

	t.Run("interpolated point rounds to 50 with half up", func(t *testing.T) {
		// Raw ground roll is 825, raw total distance 1450.
		res, err := svc.GetTakeoffDistance(500, 0)
		require.NoError(t, err)

		assert.Equal(t, 850.0, res.GroundRollFt)
		assert.Equal(t, 1450.0, res.TotalDistanceFt)
	})
}

func TestGetLandingDistance(t *testing.T) {
	svc := newTestService(t)

	// Raw ground roll is 560, raw total distance 1300.
	res, err := svc.GetLandingDistance(2000, 20)
	require.NoError(t, err)

	assert.Equal(t, 550.0, res.GroundRollFt)
	assert.Equal(t, 1300.0, res.TotalDistanceFt)
	assert.Equal(t, 2550.0, res.Conditions.WeightLb)

	// The out-of-order fixture rows were sorted on a copy, not in place.
	landing := svc.Dataset().Sections[SectionLandingDistance]
	assert.Equal(t, 4000.0, landing.Rows[0].PressureAltFt)
	assert.Equal(t, 0.0, landing.Rows[1].PressureAltFt)
}

func TestGetClimbGradient(t *testing.T) {
	svc := newTestService(t)

	t.Run("exact grid point", func(t *testing.T) {
		res, err := svc.GetClimbGradient(0, 0)
		require.NoError(t, err)
		assert.Equal(t, 720.0, res.GradientFtPerNM)
	})

	t.Run("interpolated gradient rounds half away from zero", func(t *testing.T) {
		// Raw gradient is 562.5 ft/NM.
		res, err := svc.GetClimbGradient(2000, 20)
		require.NoError(t, err)
		assert.Equal(t, 563.0, res.GradientFtPerNM)
	})

	t.Run("requirement check", func(t *testing.T) {
		res, err := svc.GetClimbGradient(2000, 20)
		require.NoError(t, err)

		assert.True(t, res.CheckRequirement(500))
		require.NotNil(t, res.MeetsRequirement)
		assert.True(t, *res.MeetsRequirement)
		require.NotNil(t, res.RequiredFtPerNM)
		assert.Equal(t, 500.0, *res.RequiredFtPerNM)

		assert.False(t, res.CheckRequirement(600))
		assert.False(t, *res.MeetsRequirement)
	})
}

func TestQueryOutsideValidatedEnvelope(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name     string
		paFt     float64
		tempC    float64
		wantAxis string
	}{
		{"pressure altitude above envelope", 20000, 0, AxisPressureAltitude},
		{"temperature above envelope", 0, 60, AxisTemperature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetTakeoffDistance(tt.paFt, tt.tempC)

			var rangeErr *RangeError
			require.ErrorAs(t, err, &rangeErr)
			assert.Equal(t, tt.wantAxis, rangeErr.Axis)
		})
	}
}

// Inside the validated envelope but beyond the tabulated rows: the answer is
// an error, never an extrapolated figure.
func TestQueryOffGridInsideEnvelope(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetTakeoffDistance(5000, 20)

	var noDataErr *NoDataRangeError
	require.ErrorAs(t, err, &noDataErr)
	assert.Equal(t, AxisPressureAltitude, noDataErr.Axis)
	assert.Equal(t, 4000.0, noDataErr.AvailableMax)
}

func TestConcurrentQueriesAreStable(t *testing.T) {
	svc := newTestService(t)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				to, err := svc.GetTakeoffDistance(1000, 10)
				assert.NoError(t, err)
				assert.Equal(t, 900.0, to.GroundRollFt)
				assert.Equal(t, 1600.0, to.TotalDistanceFt)

				ld, err := svc.GetLandingDistance(2000, 20)
				assert.NoError(t, err)
				assert.Equal(t, 550.0, ld.GroundRollFt)

				cg, err := svc.GetClimbGradient(2000, 20)
				assert.NoError(t, err)
				assert.Equal(t, 563.0, cg.GradientFtPerNM)
			}
		}()
	}
	wg.Wait()
}

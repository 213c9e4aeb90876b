package atmos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPressureAltitude(t *testing.T) {
	tests := []struct {
		name        string
		fieldElevFt float64
		altimeter   float64
		wantFt      float64
	}{
		{"low pressure adds altitude", 1000, 28.92, 2000},
		{"standard day sea level", 0, 29.92, 0},
		{"high pressure subtracts altitude", 0, 30.92, -1000},
		{"field elevation with high pressure", 3000, 30.12, 2800},
		{"rounds to nearest 10", 0, 29.917, 0},
		{"half rounds away from zero", 5, 29.92, 10},
		{"negative half rounds away from zero", -5, 29.92, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PressureAltitude(tt.fieldElevFt, tt.altimeter)
			assert.Equal(t, tt.wantFt, got)
		})
	}
}

func TestISATemperature(t *testing.T) {
	tests := []struct {
		name  string
		paFt  float64
		wantC float64
	}{
		{"sea level", 0, 15.0},
		{"10000 ft", 10000, -5.0},
		{"2000 ft", 2000, 11.0},
		{"1000 ft", 1000, 13.0},
		{"below sea level", -1000, 17.0},
		{"rounds to tenth", 550, 13.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ISATemperature(tt.paFt)
			assert.InDelta(t, tt.wantC, got, 1e-9)
		})
	}
}

func TestISADeviation(t *testing.T) {
	tests := []struct {
		name  string
		paFt  float64
		oatC  float64
		wantC float64
	}{
		{"hot day at sea level", 0, 30, 15},
		{"standard at 2000", 2000, 11, 0},
		{"cold day at 10000", 10000, -15, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ISADeviation(tt.paFt, tt.oatC)
			assert.InDelta(t, tt.wantC, got, 1e-9)
		})
	}
}

func TestDensityAltitude(t *testing.T) {
	tests := []struct {
		name   string
		paFt   float64
		oatC   float64
		wantFt float64
	}{
		{"standard day", 0, 15, 0},
		{"ISA plus 15 at sea level", 0, 30, 1800},
		{"standard at altitude", 2000, 11, 2000},
		{"rounds to nearest 50", 1000, 20, 1850},
		{"cold day below pressure altitude", 2000, -9, -400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DensityAltitude(tt.paFt, tt.oatC)
			assert.Equal(t, tt.wantFt, got)
		})
	}
}

// Rounding ties must be reproducible: halves go away from zero, both signs.
func TestRoundToNearest(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		step float64
		want float64
	}{
		{"half step up", 25, 50, 50},
		{"half step down", -25, 50, -50},
		{"half of ten up", 5, 10, 10},
		{"half of ten down", -5, 10, -10},
		{"odd half multiple", 75, 50, 100},
		{"just below half", 24.999, 50, 0},
		{"just above half", 25.001, 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, roundToNearest(tt.v, tt.step))
		})
	}
}

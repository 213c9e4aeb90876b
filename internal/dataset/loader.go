package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yegors/poh-perf/internal/performance"
	"github.com/yegors/poh-perf/pkg/logger"
)

// file is the on-disk dataset schema, shared by the JSON and YAML forms.
// Temperatures arrive as map keys ("0", "20", "-10") and are converted to
// explicit ordered points before the core ever sees them.
type file struct {
	Metadata   fileMetadata         `json:"metadata" yaml:"metadata"`
	Validation fileValidation       `json:"validation" yaml:"validation"`
	Sections   map[string][]fileRow `json:"performance_data" yaml:"performance_data"`
}

type fileMetadata struct {
	AircraftType string  `json:"aircraft_type" yaml:"aircraft_type"`
	WeightLb     float64 `json:"weight_lb" yaml:"weight_lb"`
	Source       string  `json:"source" yaml:"source"`
}

type fileValidation struct {
	PressureAltitudeRangeFt []float64 `json:"pressure_altitude_range_ft" yaml:"pressure_altitude_range_ft"`
	TemperatureRangeCelsius []float64 `json:"temperature_range_celsius" yaml:"temperature_range_celsius"`
}

type fileRow struct {
	PressureAltitudeFt float64                       `json:"pressure_altitude_ft" yaml:"pressure_altitude_ft"`
	Performance        map[string]map[string]float64 `json:"performance" yaml:"performance"`
}

// Load reads a performance dataset file and builds the immutable dataset the
// query service runs against. JSON and YAML are supported, chosen by file
// extension. The file is read once; there is no caching and no retry.
func Load(path string, log *logger.Logger) (*performance.Dataset, error) {
	var unmarshal func([]byte, interface{}) error

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		unmarshal = json.Unmarshal
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	default:
		return nil, fmt.Errorf("unsupported dataset file extension %q", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var f file
	if err := unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse dataset file: %w", err)
	}

	ds, err := build(&f)
	if err != nil {
		return nil, err
	}

	log.Info("Loaded performance dataset",
		logger.String("path", path),
		logger.String("aircraft_type", ds.Metadata.AircraftType),
		logger.Float64("weight_lb", ds.Metadata.WeightLb),
		logger.Int("sections", len(ds.Sections)),
	)

	return ds, nil
}

// build converts the file schema into the core model and runs construction
// validation via performance.NewDataset.
func build(f *file) (*performance.Dataset, error) {
	paRange, err := axisRange(f.Validation.PressureAltitudeRangeFt, "pressure_altitude_range_ft")
	if err != nil {
		return nil, err
	}

	tempRange, err := axisRange(f.Validation.TemperatureRangeCelsius, "temperature_range_celsius")
	if err != nil {
		return nil, err
	}

	sections := make(map[string]*performance.Section, len(f.Sections))
	for name, rows := range f.Sections {
		sec := &performance.Section{
			Name: name,
			Rows: make([]performance.Row, 0, len(rows)),
		}

		for _, row := range rows {
			temps, err := temperaturePoints(row.Performance)
			if err != nil {
				return nil, fmt.Errorf("section %s, pressure altitude %g: %w", name, row.PressureAltitudeFt, err)
			}

			sec.Rows = append(sec.Rows, performance.Row{
				PressureAltFt: row.PressureAltitudeFt,
				Temps:         temps,
			})
		}

		sections[name] = sec
	}

	return performance.NewDataset(
		performance.Metadata{
			AircraftType: f.Metadata.AircraftType,
			WeightLb:     f.Metadata.WeightLb,
			Source:       f.Metadata.Source,
		},
		performance.ValidationRanges{
			PressureAltitude: paRange,
			Temperature:      tempRange,
		},
		sections,
	)
}

// axisRange converts a [min, max] file pair into an inclusive range
func axisRange(pair []float64, name string) (performance.AxisRange, error) {
	if len(pair) != 2 {
		return performance.AxisRange{}, fmt.Errorf("validation %s must be a [min, max] pair, got %d values", name, len(pair))
	}

	return performance.AxisRange{Min: pair[0], Max: pair[1]}, nil
}

// temperaturePoints converts a temperature-keyed field map into ordered
// explicit points
func temperaturePoints(perf map[string]map[string]float64) ([]performance.TempPoint, error) {
	points := make([]performance.TempPoint, 0, len(perf))

	for key, fields := range perf {
		tempC, err := strconv.ParseFloat(key, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid temperature key %q", key)
		}

		points = append(points, performance.TempPoint{TempC: tempC, Fields: fields})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].TempC < points[j].TempC
	})

	return points, nil
}

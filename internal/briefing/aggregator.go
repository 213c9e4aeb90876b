package briefing

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yegors/poh-perf/internal/atmos"
	"github.com/yegors/poh-perf/internal/config"
	"github.com/yegors/poh-perf/internal/performance"
	"github.com/yegors/poh-perf/pkg/logger"
)

// DataAggregator collects atmospheric, runway wind and performance data into
// a single briefing context
type DataAggregator struct {
	perfService *performance.Service
	config      *config.Config
	logger      *logger.Logger
}

// NewDataAggregator creates a new briefing data aggregator
func NewDataAggregator(perfService *performance.Service, config *config.Config, logger *logger.Logger) *DataAggregator {
	return &DataAggregator{
		perfService: perfService,
		config:      config,
		logger:      logger.Named("briefing"),
	}
}

// GetBriefingContext computes a full pre-departure briefing for the given
// observed conditions. Failing performance queries leave their result nil and
// record the reason in Errors, so the rest of the briefing still comes back.
func (da *DataAggregator) GetBriefingContext(req BriefingRequest) (*BriefingContext, error) {
	fieldElev := da.config.Station.ElevationFeet
	if req.FieldElevationFt != nil {
		fieldElev = *req.FieldElevationFt
	}

	pressureAlt := atmos.PressureAltitude(fieldElev, req.AltimeterInHg)

	context := &BriefingContext{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Airport:   da.getAirportInfo(),
		Atmosphere: Atmosphere{
			FieldElevationFt:   fieldElev,
			AltimeterInHg:      req.AltimeterInHg,
			PressureAltitudeFt: pressureAlt,
			TemperatureC:       req.TemperatureC,
			ISATemperatureC:    atmos.ISATemperature(pressureAlt),
			ISADeviationC:      atmos.ISADeviation(pressureAlt, req.TemperatureC),
			DensityAltitudeFt:  atmos.DensityAltitude(pressureAlt, req.TemperatureC),
		},
		WindSpeedKt: req.WindSpeedKt,
	}

	// Runway headings in config are magnetic, so METAR (true) winds get
	// converted before computing components.
	windDir := req.WindDirectionDeg
	variation := atmos.MagneticVariation(
		da.config.Station.Latitude,
		da.config.Station.Longitude,
		fieldElev,
		context.Timestamp,
	)
	context.MagneticVariationDeg = variation
	if req.WindTrue {
		windDir = atmos.TrueToMagnetic(windDir, variation)
	}
	context.WindDirectionDeg = windDir

	context.Runways = da.getRunwayWinds(windDir, req.WindSpeedKt, context)

	takeoff, err := da.perfService.GetTakeoffDistance(pressureAlt, req.TemperatureC)
	if err != nil {
		da.logger.Warn("Takeoff query failed for briefing", logger.Error(err))
		context.Errors = append(context.Errors, fmt.Sprintf("takeoff_distance: %v", err))
	} else {
		context.Takeoff = takeoff
	}

	landing, err := da.perfService.GetLandingDistance(pressureAlt, req.TemperatureC)
	if err != nil {
		da.logger.Warn("Landing query failed for briefing", logger.Error(err))
		context.Errors = append(context.Errors, fmt.Sprintf("landing_distance: %v", err))
	} else {
		context.Landing = landing
	}

	climb, err := da.perfService.GetClimbGradient(pressureAlt, req.TemperatureC)
	if err != nil {
		da.logger.Warn("Climb query failed for briefing", logger.Error(err))
		context.Errors = append(context.Errors, fmt.Sprintf("takeoff_climb_gradient: %v", err))
	} else {
		if req.RequiredClimbFtPerNM != nil {
			climb.CheckRequirement(*req.RequiredClimbFtPerNM)
		}
		context.Climb = climb
	}

	da.logger.Debug("Briefing context aggregated",
		logger.String("id", context.ID),
		logger.Float64("pressure_alt_ft", pressureAlt),
		logger.Float64("density_alt_ft", context.Atmosphere.DensityAltitudeFt),
		logger.Int("runway_count", len(context.Runways)),
		logger.Int("error_count", len(context.Errors)))

	return context, nil
}

// getRunwayWinds computes wind components for every configured runway
func (da *DataAggregator) getRunwayWinds(windDirDeg, windSpeedKt float64, context *BriefingContext) []RunwayWind {
	runways := make([]RunwayWind, 0, len(da.config.Station.Runways))
	for _, rwy := range da.config.Station.Runways {
		entry := RunwayWind{
			Runway:     rwy.Name,
			HeadingDeg: rwy.HeadingDeg,
			LengthFt:   rwy.LengthFt,
		}

		wind, err := atmos.WindComponents(rwy.HeadingDeg, windDirDeg, windSpeedKt)
		if err != nil {
			da.logger.Warn("Wind computation failed for runway",
				logger.String("runway", rwy.Name),
				logger.Error(err))
			context.Errors = append(context.Errors, fmt.Sprintf("wind %s: %v", rwy.Name, err))
		} else {
			entry.Wind = &wind
		}

		runways = append(runways, entry)
	}

	return runways
}

// getAirportInfo returns airport information from config
func (da *DataAggregator) getAirportInfo() AirportInfo {
	airportName := da.config.Station.AirportName
	if airportName == "" && da.config.Station.AirportCode != "" {
		airportName = "Airport " + da.config.Station.AirportCode
	}

	return AirportInfo{
		Code:        da.config.Station.AirportCode,
		Name:        airportName,
		Coordinates: []float64{da.config.Station.Latitude, da.config.Station.Longitude},
		ElevationFt: da.config.Station.ElevationFeet,
	}
}

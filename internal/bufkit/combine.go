package bufkit

import (
	"github.com/couchcryptid/bufkit-ingest-service/internal/domain"
)

// indexNames maps parsed stability indices to their spelled-out names in
// Sounding.Indexes.
func indexMap(ix Indexes) map[string]float64 {
	m := make(map[string]float64, 13)
	put := func(name string, v *float64) {
		if v != nil {
			m[name] = *v
		}
	}

	put("Showalter", ix.Showalter)
	put("LI", ix.LiftedIndex)
	put("SWeT", ix.Swet)
	put("K", ix.KIndex)
	put("LCL", ix.LCLPressure)
	put("PWAT", ix.PrecipitableWater)
	put("TotalTotals", ix.TotalTotals)
	put("CAPE", ix.CAPE)
	put("LCLTemperature", ix.LCLTemperature)
	put("CIN", ix.CIN)
	put("EquilibriumLevel", ix.EquilibriumLevel)
	put("LFC", ix.LFC)
	put("BulkRichardsonNumber", ix.BulkRichardson)

	if len(m) == 0 {
		return nil
	}
	return m
}

// combine merges an upper-air timestep with the surface row of the same
// valid time into a domain sounding.
func combine(ua UpperAir, sd SurfaceData) domain.Sounding {
	snd := domain.Sounding{
		Station: domain.Station{
			Number:    ua.Num,
			ID:        ua.ID,
			Lat:       ua.Lat,
			Lon:       ua.Lon,
			Elevation: ua.Elevation,
		},
		ValidTime: ua.ValidTime,
		LeadTime:  ua.LeadTime,
		Indexes:   indexMap(ua.Indexes),
		Levels:    combineLevels(ua.Profile),
		Surface: domain.SurfaceObservation{
			MSLP:               sd.MSLP,
			StationPressure:    sd.StationPressure,
			SkinTemperature:    sd.SkinTemperature,
			SoilTempLayer1:     sd.SoilTempLayer1,
			SoilTempLayer2:     sd.SoilTempLayer2,
			Snowfall1Hr:        sd.Snowfall1Hr,
			SoilMoisture:       sd.SoilMoisture,
			Precip1Hr:          sd.Precip1Hr,
			ConvectivePrecip1H: sd.ConvectivePrecip1H,
			LowCloud:           sd.LowCloud,
			MidCloud:           sd.MidCloud,
			HighCloud:          sd.HighCloud,
			SnowRatio:          sd.SnowRatio,
			UWind:              sd.UWind,
			VWind:              sd.VWind,
			Temperature2M:      sd.Temperature2M,
			SpecificHumidity2M: sd.SpecificHumidity2M,
			Dewpoint2M:         sd.Dewpoint2M,
			UStormMotion:       sd.UStormMotion,
			VStormMotion:       sd.VStormMotion,
			Helicity:           sd.Helicity,
			Visibility:         sd.Visibility,
			CloudBasePressure:  sd.CloudBasePressure,
			WxSymbol:           sd.WxSymbol,
			PrecipTypeSnow:     sd.SnowType,
			PrecipTypeIce:      sd.IcePelletsType,
			PrecipTypeFreezing: sd.FreezingRainType,
			PrecipTypeRain:     sd.RainType,
		},
	}
	return snd
}

// combineLevels zips the parallel profile columns into per-level records.
// Wind survives only when both direction and speed are present.
func combineLevels(p Profile) []domain.Level {
	levels := make([]domain.Level, len(p.Pressure))
	at := func(col []*float64, i int) *float64 {
		if i < len(col) {
			return col[i]
		}
		return nil
	}

	for i := range levels {
		lvl := domain.Level{
			Pressure:      at(p.Pressure, i),
			Temperature:   at(p.Temperature, i),
			WetBulb:       at(p.WetBulb, i),
			Dewpoint:      at(p.Dewpoint, i),
			ThetaE:        at(p.ThetaE, i),
			Omega:         at(p.Omega, i),
			CloudFraction: at(p.CloudFraction, i),
			Height:        at(p.Height, i),
		}

		dir, spd := at(p.Direction, i), at(p.Speed, i)
		if dir != nil && spd != nil {
			lvl.WindDirection = dir
			lvl.WindSpeed = spd
		}

		levels[i] = lvl
	}
	return levels
}

package domain

import "time"

// Station identifies where a sounding is valid. Number is the 6-digit
// station number (USAF style, e.g. 727730); ID is the alphanumeric
// designator (e.g. KMSO) when the file carries one.
type Station struct {
	Number    int      `json:"number"`
	ID        string   `json:"id,omitempty"`
	Lat       *float64 `json:"lat,omitempty"`
	Lon       *float64 `json:"lon,omitempty"`
	Elevation *float64 `json:"elevation_m,omitempty"`
}

// Level is one pressure level of the upper-air profile. Nil means the value
// was missing in the source file.
type Level struct {
	Pressure      *float64 `json:"pressure_hpa,omitempty"`
	Temperature   *float64 `json:"temperature_c,omitempty"`
	WetBulb       *float64 `json:"wet_bulb_c,omitempty"`
	Dewpoint      *float64 `json:"dewpoint_c,omitempty"`
	ThetaE        *float64 `json:"theta_e_k,omitempty"`
	WindDirection *float64 `json:"wind_direction_deg,omitempty"`
	WindSpeed     *float64 `json:"wind_speed_kt,omitempty"`
	Omega         *float64 `json:"omega_pa_per_s,omitempty"`
	CloudFraction *float64 `json:"cloud_fraction_pct,omitempty"`
	Height        *float64 `json:"height_m,omitempty"`
}

// SurfaceObservation holds the near-ground fields of one forecast hour.
type SurfaceObservation struct {
	MSLP               *float64 `json:"mslp_hpa,omitempty"`
	StationPressure    *float64 `json:"station_pressure_hpa,omitempty"`
	SkinTemperature    *float64 `json:"skin_temperature_c,omitempty"`
	SoilTempLayer1     *float64 `json:"soil_temp_layer1_k,omitempty"`
	SoilTempLayer2     *float64 `json:"soil_temp_layer2_k,omitempty"`
	Snowfall1Hr        *float64 `json:"snowfall_1hr_kg_per_m2,omitempty"`
	SoilMoisture       *float64 `json:"soil_moisture_pct,omitempty"`
	Precip1Hr          *float64 `json:"precip_1hr_mm,omitempty"`
	ConvectivePrecip1H *float64 `json:"convective_precip_1hr_mm,omitempty"`
	LowCloud           *float64 `json:"low_cloud_pct,omitempty"`
	MidCloud           *float64 `json:"mid_cloud_pct,omitempty"`
	HighCloud          *float64 `json:"high_cloud_pct,omitempty"`
	SnowRatio          *float64 `json:"snow_ratio_pct,omitempty"`
	UWind              *float64 `json:"u_wind_mps,omitempty"`
	VWind              *float64 `json:"v_wind_mps,omitempty"`
	Temperature2M      *float64 `json:"temperature_2m_c,omitempty"`
	SpecificHumidity2M *float64 `json:"specific_humidity_2m,omitempty"`
	Dewpoint2M         *float64 `json:"dewpoint_2m_c,omitempty"`
	UStormMotion       *float64 `json:"u_storm_motion_mps,omitempty"`
	VStormMotion       *float64 `json:"v_storm_motion_mps,omitempty"`
	Helicity           *float64 `json:"helicity_m2_per_s2,omitempty"`
	Visibility         *float64 `json:"visibility_km,omitempty"`
	CloudBasePressure  *float64 `json:"cloud_base_pressure_hpa,omitempty"`
	WxSymbol           *float64 `json:"wx_symbol,omitempty"`
	PrecipTypeSnow     *bool    `json:"precip_type_snow,omitempty"`
	PrecipTypeIce      *bool    `json:"precip_type_ice,omitempty"`
	PrecipTypeFreezing *bool    `json:"precip_type_freezing_rain,omitempty"`
	PrecipTypeRain     *bool    `json:"precip_type_rain,omitempty"`
}

// Sounding is one forecast hour of a Bufkit file: an upper-air block merged
// with the surface row of the same valid time.
type Sounding struct {
	ID        string    `json:"id"`
	Station   Station   `json:"station"`
	ValidTime time.Time `json:"valid_time"`
	LeadTime  int       `json:"lead_time_hours"`

	// Stability indices by spelled-out name, e.g. "CAPE", "Showalter".
	// Missing indices are absent from the map.
	Indexes map[string]float64 `json:"indexes,omitempty"`

	Levels  []Level            `json:"levels"`
	Surface SurfaceObservation `json:"surface"`

	Source      string    `json:"source,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}

// Package catalog enumerates the Bufkit parameter mnemonics this service
// understands, grouped the way the format documents them: the sounding
// station header and stability indices, the upper-air profile columns, and
// the surface section columns.
//
// The catalog is reference data, not parsing configuration. The parser in
// internal/bufkit keys off a subset of these mnemonics; the full table is
// exposed over HTTP so operators can decode field names in sink messages
// without digging through NOAA documentation.
package catalog

// Parameter describes a single Bufkit mnemonic.
type Parameter struct {
	Mnemonic    string `json:"mnemonic"`
	Description string `json:"description"`
	Unit        string `json:"unit,omitempty"`
}

// Section identifies one of the three groups of parameters in a Bufkit file.
type Section string

const (
	// SoundingIndices covers the station header and the stability index
	// block that precede each upper-air profile.
	SoundingIndices Section = "sounding_indices"
	// ProfileLevels covers the per-pressure-level columns of the upper-air
	// profile.
	ProfileLevels Section = "profile_levels"
	// SurfaceParameters covers the columns of the surface section.
	SurfaceParameters Section = "surface_parameters"
)

// Sections returns the three sections in file order.
func Sections() []Section {
	return []Section{SoundingIndices, ProfileLevels, SurfaceParameters}
}

var soundingIndices = []Parameter{
	{Mnemonic: "STID", Description: "Station ID (alphanumeric)"},
	{Mnemonic: "STNM", Description: "6-digit station number"},
	{Mnemonic: "TIME", Description: "Valid time in YYMMDD/HHMM format", Unit: "UTC"},
	{Mnemonic: "SLAT", Description: "Station latitude", Unit: "degrees"},
	{Mnemonic: "SLON", Description: "Station longitude", Unit: "degrees"},
	{Mnemonic: "SELV", Description: "Station elevation", Unit: "m"},
	{Mnemonic: "STIM", Description: "Forecast hour from model initialization", Unit: "h"},
	{Mnemonic: "SHOW", Description: "Showalter index"},
	{Mnemonic: "LIFT", Description: "Lifted index"},
	{Mnemonic: "SWET", Description: "Severe Weather Threat index"},
	{Mnemonic: "KINX", Description: "K index"},
	{Mnemonic: "LCLP", Description: "Pressure at the lifting condensation level", Unit: "hPa"},
	{Mnemonic: "PWAT", Description: "Precipitable water", Unit: "mm"},
	{Mnemonic: "TOTL", Description: "Total Totals index"},
	{Mnemonic: "CAPE", Description: "Convective available potential energy", Unit: "J/kg"},
	{Mnemonic: "LCLT", Description: "Temperature at the lifting condensation level", Unit: "K"},
	{Mnemonic: "CINS", Description: "Convective inhibition", Unit: "J/kg"},
	{Mnemonic: "EQLV", Description: "Equilibrium level", Unit: "hPa"},
	{Mnemonic: "LFCT", Description: "Level of free convection", Unit: "hPa"},
	{Mnemonic: "BRCH", Description: "Bulk Richardson number"},
}

var profileLevels = []Parameter{
	{Mnemonic: "PRES", Description: "Pressure", Unit: "hPa"},
	{Mnemonic: "TMPC", Description: "Temperature", Unit: "C"},
	{Mnemonic: "TMWC", Description: "Wet bulb temperature", Unit: "C"},
	{Mnemonic: "DWPC", Description: "Dewpoint", Unit: "C"},
	{Mnemonic: "THTE", Description: "Equivalent potential temperature", Unit: "K"},
	{Mnemonic: "DRCT", Description: "Wind direction", Unit: "degrees"},
	{Mnemonic: "SKNT", Description: "Wind speed", Unit: "kt"},
	{Mnemonic: "OMEG", Description: "Pressure vertical velocity", Unit: "Pa/s"},
	{Mnemonic: "CFRL", Description: "Fractional cloud coverage", Unit: "percent"},
	{Mnemonic: "HGHT", Description: "Height of the pressure level", Unit: "m"},
}

var surfaceParameters = []Parameter{
	{Mnemonic: "STN", Description: "6-digit station number"},
	{Mnemonic: "YYMMDD/HHMM", Description: "Valid time in numeric format", Unit: "UTC"},
	{Mnemonic: "PMSL", Description: "Mean sea level pressure", Unit: "hPa"},
	{Mnemonic: "PRES", Description: "Station pressure", Unit: "hPa"},
	{Mnemonic: "SKTC", Description: "Skin temperature", Unit: "C"},
	{Mnemonic: "STC1", Description: "Layer 1 soil temperature", Unit: "K"},
	{Mnemonic: "SNFL", Description: "1-hour accumulated snowfall", Unit: "kg/m**2"},
	{Mnemonic: "WTNS", Description: "Soil moisture availability", Unit: "percent"},
	{Mnemonic: "P01M", Description: "1-hour total precipitation", Unit: "mm"},
	{Mnemonic: "C01M", Description: "1-hour convective precipitation", Unit: "mm"},
	{Mnemonic: "P03M", Description: "3-hour total precipitation", Unit: "mm"},
	{Mnemonic: "C03M", Description: "3-hour convective precipitation", Unit: "mm"},
	{Mnemonic: "S03M", Description: "3-hour accumulated snowfall", Unit: "kg/m**2"},
	{Mnemonic: "SWEM", Description: "Snow water equivalent", Unit: "mm"},
	{Mnemonic: "STC2", Description: "Layer 2 soil temperature", Unit: "K"},
	{Mnemonic: "LCLD", Description: "Low cloud coverage", Unit: "percent"},
	{Mnemonic: "MCLD", Description: "Middle cloud coverage", Unit: "percent"},
	{Mnemonic: "HCLD", Description: "High cloud coverage", Unit: "percent"},
	{Mnemonic: "SNRA", Description: "Snow ratio from explicit cloud scheme", Unit: "percent"},
	{Mnemonic: "UWND", Description: "10-meter U wind component", Unit: "m/s"},
	{Mnemonic: "VWND", Description: "10-meter V wind component", Unit: "m/s"},
	{Mnemonic: "R01M", Description: "1-hour accumulated surface runoff", Unit: "mm"},
	{Mnemonic: "BFGR", Description: "1-hour accumulated baseflow-groundwater runoff", Unit: "mm"},
	{Mnemonic: "T2MS", Description: "2-meter temperature", Unit: "C"},
	{Mnemonic: "Q2MS", Description: "2-meter specific humidity", Unit: "g/kg"},
	{Mnemonic: "WXTS", Description: "Snow precipitation type (1 = snow)"},
	{Mnemonic: "WXTP", Description: "Ice pellets precipitation type (1 = ice pellets)"},
	{Mnemonic: "WXTZ", Description: "Freezing rain precipitation type (1 = freezing rain)"},
	{Mnemonic: "WXTR", Description: "Rain precipitation type (1 = rain)"},
	{Mnemonic: "USTM", Description: "U component of storm motion", Unit: "m/s"},
	{Mnemonic: "VSTM", Description: "V component of storm motion", Unit: "m/s"},
	{Mnemonic: "HLCY", Description: "Storm relative helicity", Unit: "m**2/s**2"},
	{Mnemonic: "SLLH", Description: "1-hour surface latent heat flux", Unit: "mm"},
	{Mnemonic: "EVAP", Description: "Surface evaporation", Unit: "mm"},
	{Mnemonic: "WSYM", Description: "Weather type symbol number"},
	{Mnemonic: "CDBP", Description: "Pressure at the base of cloud", Unit: "hPa"},
	{Mnemonic: "VSBK", Description: "Visibility", Unit: "km"},
	{Mnemonic: "TD2M", Description: "2-meter dewpoint", Unit: "C"},
}

var bySection = map[Section][]Parameter{
	SoundingIndices:   soundingIndices,
	ProfileLevels:     profileLevels,
	SurfaceParameters: surfaceParameters,
}

// Parameters returns the parameters of the section in documented order.
// The returned slice is a copy.
func (s Section) Parameters() []Parameter {
	src := bySection[s]
	out := make([]Parameter, len(src))
	copy(out, src)
	return out
}

// Lookup finds a mnemonic in any section. When a mnemonic appears in more
// than one section (PRES is both a profile column and a surface column),
// the first section in file order wins.
func Lookup(mnemonic string) (Parameter, Section, bool) {
	for _, s := range Sections() {
		for _, p := range bySection[s] {
			if p.Mnemonic == mnemonic {
				return p, s, true
			}
		}
	}
	return Parameter{}, "", false
}

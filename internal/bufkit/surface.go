package bufkit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMissingSurfaceColumns reports a surface header without the required
// station number and valid time columns.
var ErrMissingSurfaceColumns = errors.New("missing required column in surface data")

// SurfaceData is one parsed row of the surface section. Nil means the
// column was absent from the file or held the missing sentinel.
type SurfaceData struct {
	StationNum int
	ValidTime  time.Time

	MSLP               *float64
	StationPressure    *float64
	SkinTemperature    *float64
	SoilTempLayer1     *float64
	SoilTempLayer2     *float64
	Snowfall1Hr        *float64
	SoilMoisture       *float64
	Precip1Hr          *float64
	ConvectivePrecip1H *float64
	LowCloud           *float64
	MidCloud           *float64
	HighCloud          *float64
	SnowRatio          *float64
	UWind              *float64
	VWind              *float64
	Temperature2M      *float64
	SpecificHumidity2M *float64
	Dewpoint2M         *float64
	UStormMotion       *float64
	VStormMotion       *float64
	Helicity           *float64
	Visibility         *float64
	CloudBasePressure  *float64
	WxSymbol           *float64
	SnowType           *bool
	IcePelletsType     *bool
	FreezingRainType   *bool
	RainType           *bool
}

type surfaceColumn int

const (
	colNone surfaceColumn = iota
	colStation
	colValidTime
	colMSLP
	colStationPressure
	colSkinTemp
	colSoilTemp1
	colSoilTemp2
	colSnowfall1Hr
	colSoilMoisture
	colPrecip1Hr
	colConvPrecip1Hr
	colLowCloud
	colMidCloud
	colHighCloud
	colSnowRatio
	colUWind
	colVWind
	colTemp2M
	colSpecHumid2M
	colDewpoint2M
	colUStorm
	colVStorm
	colHelicity
	colVisibility
	colCloudBase
	colWxSymbol
	colWxSnow
	colWxIcePellets
	colWxFreezingRain
	colWxRain
)

// surfaceColumnNames maps header mnemonics to columns. Mnemonics the parser
// does not keep (runoff, baseflow, 3-hour accumulations, ...) fall through
// to colNone: their tokens still get validated, then discarded.
var surfaceColumnNames = map[string]surfaceColumn{
	"STN":         colStation,
	"YYMMDD/HHMM": colValidTime,
	"PMSL":        colMSLP,
	"PRES":        colStationPressure,
	"SKTC":        colSkinTemp,
	"STC1":        colSoilTemp1,
	"STC2":        colSoilTemp2,
	"SNFL":        colSnowfall1Hr,
	"WTNS":        colSoilMoisture,
	"P01M":        colPrecip1Hr,
	"C01M":        colConvPrecip1Hr,
	"LCLD":        colLowCloud,
	"MCLD":        colMidCloud,
	"HCLD":        colHighCloud,
	"SNRA":        colSnowRatio,
	"UWND":        colUWind,
	"VWND":        colVWind,
	"T2MS":        colTemp2M,
	"Q2MS":        colSpecHumid2M,
	"TD2M":        colDewpoint2M,
	"USTM":        colUStorm,
	"VSTM":        colVStorm,
	"HLCY":        colHelicity,
	"VSBK":        colVisibility,
	"CDBP":        colCloudBase,
	"WSYM":        colWxSymbol,
	"WXTS":        colWxSnow,
	"WXTP":        colWxIcePellets,
	"WXTZ":        colWxFreezingRain,
	"WXTR":        colWxRain,
}

// surfaceColumns is the parsed layout of one surface section header.
type surfaceColumns struct {
	names []surfaceColumn
}

func (c surfaceColumns) numCols() int { return len(c.names) }

// parseSurfaceColumns maps a surface header onto known columns. Unknown
// mnemonics are kept as placeholders so row widths still line up. The
// station number and valid time columns are required; everything else is
// whatever the model run happened to include.
func parseSurfaceColumns(header string) (surfaceColumns, error) {
	fields := strings.Fields(header)
	cols := surfaceColumns{names: make([]surfaceColumn, 0, len(fields))}

	hasStation, hasValidTime := false, false
	for _, f := range fields {
		col := surfaceColumnNames[f]
		cols.names = append(cols.names, col)
		switch col {
		case colStation:
			hasStation = true
		case colValidTime:
			hasValidTime = true
		}
	}

	if !hasStation || !hasValidTime {
		return surfaceColumns{}, ErrMissingSurfaceColumns
	}
	return cols, nil
}

// parseSurfaceRow parses one row of whitespace separated tokens according
// to the column layout. Every token must be well formed even when its
// column is discarded, so a corrupt row cannot slip through silently.
func parseSurfaceRow(tokens string, cols surfaceColumns) (SurfaceData, error) {
	fields := strings.Fields(tokens)
	if len(fields) != cols.numCols() {
		return SurfaceData{}, fmt.Errorf("surface row has %d tokens, want %d: %w", len(fields), cols.numCols(), errTruncatedRow)
	}

	var sd SurfaceData
	for i, token := range fields {
		col := cols.names[i]

		if col == colStation {
			num, err := strconv.Atoi(token)
			if err != nil {
				return SurfaceData{}, fmt.Errorf("surface station number: %w", err)
			}
			sd.StationNum = num
			continue
		}
		if col == colValidTime {
			vt, err := parseValidTime(token)
			if err != nil {
				return SurfaceData{}, err
			}
			sd.ValidTime = vt
			continue
		}

		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return SurfaceData{}, fmt.Errorf("surface value %q: %w", token, err)
		}
		val := checkMissing(v)

		switch col {
		case colNone:
			// Validated above, not retained.
		case colMSLP:
			sd.MSLP = val
		case colStationPressure:
			sd.StationPressure = val
		case colSkinTemp:
			sd.SkinTemperature = val
		case colSoilTemp1:
			sd.SoilTempLayer1 = val
		case colSoilTemp2:
			sd.SoilTempLayer2 = val
		case colSnowfall1Hr:
			sd.Snowfall1Hr = val
		case colSoilMoisture:
			sd.SoilMoisture = val
		case colPrecip1Hr:
			sd.Precip1Hr = val
		case colConvPrecip1Hr:
			sd.ConvectivePrecip1H = val
		case colLowCloud:
			sd.LowCloud = val
		case colMidCloud:
			sd.MidCloud = val
		case colHighCloud:
			sd.HighCloud = val
		case colSnowRatio:
			sd.SnowRatio = val
		case colUWind:
			sd.UWind = val
		case colVWind:
			sd.VWind = val
		case colTemp2M:
			sd.Temperature2M = val
		case colSpecHumid2M:
			sd.SpecificHumidity2M = val
		case colDewpoint2M:
			sd.Dewpoint2M = val
		case colUStorm:
			sd.UStormMotion = val
		case colVStorm:
			sd.VStormMotion = val
		case colHelicity:
			sd.Helicity = val
		case colVisibility:
			sd.Visibility = val
		case colCloudBase:
			sd.CloudBasePressure = val
		case colWxSymbol:
			sd.WxSymbol = val
		case colWxSnow:
			sd.SnowType = asFlag(val)
		case colWxIcePellets:
			sd.IcePelletsType = asFlag(val)
		case colWxFreezingRain:
			sd.FreezingRainType = asFlag(val)
		case colWxRain:
			sd.RainType = asFlag(val)
		}
	}

	return sd, nil
}

// asFlag interprets a precipitation type column: 1 means the type is
// present, anything else means it is not. Missing stays nil.
func asFlag(v *float64) *bool {
	if v == nil {
		return nil
	}
	b := *v == 1.0
	return &b
}

package bufkit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	// ErrMalformedBlock reports an upper-air block that cannot be split
	// into station info, indices, and profile parts.
	ErrMalformedBlock = errors.New("malformed upper-air block")
	// ErrEmptyProfile reports an upper-air block with no pressure levels.
	ErrEmptyProfile = errors.New("upper-air profile has no pressure levels")
	// ErrRaggedProfile reports profile columns of unequal length.
	ErrRaggedProfile = errors.New("upper-air profile columns have unequal lengths")
)

// StationInfo is the header block of one upper-air timestep.
type StationInfo struct {
	Num       int
	ID        string
	ValidTime time.Time
	LeadTime  int
	Lat       *float64
	Lon       *float64
	Elevation *float64
}

// parseStationInfo parses the STID/STNM/TIME/SLAT/SLON/SELV/STIM header.
// STID may be blank (the file then reads "STID = STNM = ..."); everything
// else is required.
func parseStationInfo(src string) (StationInfo, error) {
	var info StationInfo

	// A blank STID makes the next key's name show up as the value.
	if id, _, err := parseKV(src, "STID",
		func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) },
		func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) },
	); err == nil && id != "STNM" {
		info.ID = id
	}

	num, head, err := parseInt(src, "STNM")
	if err != nil {
		return StationInfo{}, fmt.Errorf("station info: %w", err)
	}
	info.Num = num

	timeStr, head, err := parseKV(head, "TIME",
		func(r rune) bool { return unicode.IsDigit(r) },
		func(r rune) bool { return !unicode.IsDigit(r) && r != '/' },
	)
	if err != nil {
		return StationInfo{}, fmt.Errorf("station info: %w", err)
	}
	vt, err := parseValidTime(timeStr)
	if err != nil {
		return StationInfo{}, fmt.Errorf("station info: %w", err)
	}
	info.ValidTime = vt

	lat, head, err := parseFloat(head, "SLAT")
	if err != nil {
		return StationInfo{}, fmt.Errorf("station info: %w", err)
	}
	lon, head, err := parseFloat(head, "SLON")
	if err != nil {
		return StationInfo{}, fmt.Errorf("station info: %w", err)
	}
	elv, head, err := parseFloat(head, "SELV")
	if err != nil {
		return StationInfo{}, fmt.Errorf("station info: %w", err)
	}
	info.Lat = checkMissing(lat)
	info.Lon = checkMissing(lon)
	info.Elevation = checkMissing(elv)

	lead, _, err := parseInt(head, "STIM")
	if err != nil {
		return StationInfo{}, fmt.Errorf("station info: %w", err)
	}
	info.LeadTime = lead

	return info, nil
}

// Indexes is the stability index block of one upper-air timestep. Any
// subset may be missing; -9999 values come through as nil.
type Indexes struct {
	Showalter         *float64
	LiftedIndex       *float64
	Swet              *float64
	KIndex            *float64
	LCLPressure       *float64
	PrecipitableWater *float64
	TotalTotals       *float64
	CAPE              *float64
	LCLTemperature    *float64
	CIN               *float64
	EquilibriumLevel  *float64
	LFC               *float64
	BulkRichardson    *float64
}

// parseIndexes parses the index block. Each key is searched independently
// in the whole block, so reordered or absent keys cannot shift the rest.
func parseIndexes(src string) Indexes {
	get := func(key string) *float64 {
		v, _, err := parseFloat(src, key)
		if err != nil {
			return nil
		}
		return checkMissing(v)
	}

	return Indexes{
		Showalter:         get("SHOW"),
		LiftedIndex:       get("LIFT"),
		Swet:              get("SWET"),
		KIndex:            get("KINX"),
		LCLPressure:       get("LCLP"),
		PrecipitableWater: get("PWAT"),
		TotalTotals:       get("TOTL"),
		CAPE:              get("CAPE"),
		LCLTemperature:    get("LCLT"),
		CIN:               get("CINS"),
		EquilibriumLevel:  get("EQLV"),
		LFC:               get("LFCT"),
		BulkRichardson:    get("BRCH"),
	}
}

type profileColumn int

const (
	profNone profileColumn = iota
	profPressure
	profTemperature
	profWetBulb
	profDewpoint
	profThetaE
	profDirection
	profSpeed
	profOmega
	profCloudFraction
	profHeight
)

var profileColumnNames = map[string]profileColumn{
	"PRES": profPressure,
	"TMPC": profTemperature,
	"TMWC": profWetBulb,
	"DWPC": profDewpoint,
	"THTE": profThetaE,
	"DRCT": profDirection,
	"SKNT": profSpeed,
	"OMEG": profOmega,
	"CFRL": profCloudFraction,
	"HGHT": profHeight,
}

// Profile holds the per-level columns of one upper-air timestep as
// parallel slices. A nil entry is a missing value at that level.
type Profile struct {
	Pressure      []*float64
	Temperature   []*float64
	WetBulb       []*float64
	Dewpoint      []*float64
	ThetaE        []*float64
	Direction     []*float64
	Speed         []*float64
	Omega         []*float64
	CloudFraction []*float64
	Height        []*float64
}

// parseProfile parses the column header and the rows of level values. An
// unknown column mnemonic is an error: unlike the surface section the
// profile layout is fixed per model and a surprise column means the block
// boundary was found wrong.
func parseProfile(src string) (Profile, error) {
	headerEnd := strings.IndexFunc(src, func(r rune) bool {
		return r == '-' || unicode.IsDigit(r)
	})
	if headerEnd < 0 {
		return Profile{}, fmt.Errorf("profile: %w", ErrMalformedBlock)
	}
	header, values := src[:headerEnd], src[headerEnd:]

	fields := strings.Fields(header)
	cols := make([]profileColumn, 0, len(fields))
	for _, f := range fields {
		col, ok := profileColumnNames[f]
		if !ok {
			return Profile{}, fmt.Errorf("profile: unknown column %q", f)
		}
		cols = append(cols, col)
	}
	if len(cols) == 0 {
		return Profile{}, fmt.Errorf("profile: %w", ErrMalformedBlock)
	}

	// GFS soundings run about 64 levels.
	const initialCapacity = 64
	p := Profile{
		Pressure:      make([]*float64, 0, initialCapacity),
		Temperature:   make([]*float64, 0, initialCapacity),
		WetBulb:       make([]*float64, 0, initialCapacity),
		Dewpoint:      make([]*float64, 0, initialCapacity),
		ThetaE:        make([]*float64, 0, initialCapacity),
		Direction:     make([]*float64, 0, initialCapacity),
		Speed:         make([]*float64, 0, initialCapacity),
		Omega:         make([]*float64, 0, initialCapacity),
		CloudFraction: make([]*float64, 0, initialCapacity),
		Height:        make([]*float64, 0, initialCapacity),
	}

	for i, token := range strings.Fields(values) {
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return Profile{}, fmt.Errorf("profile value %q: %w", token, err)
		}
		val := checkMissing(v)

		switch cols[i%len(cols)] {
		case profPressure:
			p.Pressure = append(p.Pressure, val)
		case profTemperature:
			p.Temperature = append(p.Temperature, val)
		case profWetBulb:
			p.WetBulb = append(p.WetBulb, val)
		case profDewpoint:
			p.Dewpoint = append(p.Dewpoint, val)
		case profThetaE:
			p.ThetaE = append(p.ThetaE, val)
		case profDirection:
			p.Direction = append(p.Direction, val)
		case profSpeed:
			p.Speed = append(p.Speed, val)
		case profOmega:
			p.Omega = append(p.Omega, val)
		case profCloudFraction:
			p.CloudFraction = append(p.CloudFraction, val)
		case profHeight:
			p.Height = append(p.Height, val)
		}
	}

	return p, nil
}

// UpperAir is one fully parsed upper-air timestep.
type UpperAir struct {
	StationInfo
	Indexes
	Profile
}

// ParseUpperAir parses one upper-air block: station info, indices, and
// profile, separated by blank lines.
func ParseUpperAir(text string) (UpperAir, error) {
	brk := findBlankLine(text)
	if brk < 0 {
		return UpperAir{}, ErrMalformedBlock
	}
	stationPart, rest := text[:brk], text[brk:]

	brk = findBlankLine(rest)
	if brk < 0 {
		return UpperAir{}, ErrMalformedBlock
	}
	indexPart, profilePart := rest[:brk], rest[brk:]

	info, err := parseStationInfo(stationPart)
	if err != nil {
		return UpperAir{}, err
	}
	profile, err := parseProfile(profilePart)
	if err != nil {
		return UpperAir{}, err
	}

	return UpperAir{
		StationInfo: info,
		Indexes:     parseIndexes(indexPart),
		Profile:     profile,
	}, nil
}

// Validate checks the profile's shape: pressure is mandatory and every
// other column is either absent or exactly as long.
func (ua *UpperAir) Validate() error {
	levels := len(ua.Pressure)
	if levels == 0 {
		return ErrEmptyProfile
	}

	for _, col := range [][]*float64{
		ua.Temperature, ua.WetBulb, ua.Dewpoint, ua.ThetaE,
		ua.Direction, ua.Speed, ua.Omega, ua.CloudFraction, ua.Height,
	} {
		if len(col) != 0 && len(col) != levels {
			return ErrRaggedProfile
		}
	}
	return nil
}

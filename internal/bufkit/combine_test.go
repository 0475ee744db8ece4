package bufkit

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/bufkit-ingest-service/internal/domain"
)

func TestCombine(t *testing.T) {
	lat, lon, elv := 46.92, -114.08, 972.0
	cape := 1523.0
	mslp, t2m := 1022.1, 10.34
	rain := 1.0
	vt := time.Date(2017, time.April, 1, 0, 0, 0, 0, time.UTC)

	ua := UpperAir{
		StationInfo: StationInfo{
			Num:       727730,
			ID:        "KMSO",
			ValidTime: vt,
			LeadTime:  0,
			Lat:       &lat,
			Lon:       &lon,
			Elevation: &elv,
		},
		Indexes: Indexes{CAPE: &cape},
	}
	sd := SurfaceData{
		StationNum:    727730,
		ValidTime:     vt,
		MSLP:          &mslp,
		Temperature2M: &t2m,
		RainType:      asFlag(&rain),
	}

	got := combine(ua, sd)

	want := domain.Sounding{
		Station: domain.Station{
			Number:    727730,
			ID:        "KMSO",
			Lat:       &lat,
			Lon:       &lon,
			Elevation: &elv,
		},
		ValidTime: vt,
		Indexes:   map[string]float64{"CAPE": 1523.0},
		Levels:    []domain.Level{},
		Surface: domain.SurfaceObservation{
			MSLP:           &mslp,
			Temperature2M:  &t2m,
			PrecipTypeRain: asFlag(&rain),
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("combine mismatch (-want +got):\n%s", diff)
	}
}

func TestCombineLevelsWindRule(t *testing.T) {
	dir, spd, pres := 225.0, 5.0, 900.0
	p := Profile{
		Pressure:  []*float64{&pres, &pres, &pres},
		Direction: []*float64{&dir, nil, &dir},
		Speed:     []*float64{&spd, &spd, nil},
	}

	levels := combineLevels(p)
	require.Len(t, levels, 3)

	// Wind survives only when direction and speed are both present.
	assert.NotNil(t, levels[0].WindDirection)
	assert.NotNil(t, levels[0].WindSpeed)
	assert.Nil(t, levels[1].WindDirection)
	assert.Nil(t, levels[1].WindSpeed)
	assert.Nil(t, levels[2].WindDirection)
	assert.Nil(t, levels[2].WindSpeed)
}

func TestCombineLevelsAbsentColumns(t *testing.T) {
	pres := 900.0
	levels := combineLevels(Profile{Pressure: []*float64{&pres}})
	require.Len(t, levels, 1)
	assert.NotNil(t, levels[0].Pressure)
	assert.Nil(t, levels[0].Temperature)
	assert.Nil(t, levels[0].Height)
}

func TestIndexMapEmpty(t *testing.T) {
	assert.Nil(t, indexMap(Indexes{}))

	v := 1.5
	m := indexMap(Indexes{CAPE: &v})
	require.Len(t, m, 1)
	assert.Equal(t, 1.5, m["CAPE"])
}

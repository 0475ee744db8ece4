package bufkit

import (
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/bufkit-ingest-service/internal/domain"
)

func loadTestFile(t *testing.T) *File {
	t.Helper()
	f, err := Load(filepath.Join("testdata", "17040100Z_gfs3_kmso.buf"))
	require.NoError(t, err)
	return f
}

func TestLoad(t *testing.T) {
	f := loadTestFile(t)
	assert.Equal(t, "17040100Z_gfs3_kmso.buf", f.Name())
	assert.Contains(t, f.RawText(), "STID = KMSO")

	_, err := Load(filepath.Join("testdata", "no-such-file.buf"))
	assert.Error(t, err)
}

func TestFileValidate(t *testing.T) {
	assert.NoError(t, loadTestFile(t).Validate())
}

func TestFileNoBreakPoint(t *testing.T) {
	f := NewFile(upperAirBlock, "truncated.buf")
	_, err := f.Data()
	assert.ErrorIs(t, err, ErrNoBreakPoint)
}

func TestSoundingScanner(t *testing.T) {
	data, err := loadTestFile(t).Data()
	require.NoError(t, err)

	var soundings []domain.Sounding
	sc := data.Soundings()
	for sc.Next() {
		soundings = append(soundings, sc.Sounding())
	}

	// The 0100 surface row has no upper-air block and is dropped.
	require.Len(t, soundings, 2)

	first, second := soundings[0], soundings[1]
	assert.Equal(t, time.Date(2017, time.April, 1, 0, 0, 0, 0, time.UTC), first.ValidTime)
	assert.Equal(t, time.Date(2017, time.April, 1, 2, 0, 0, 0, time.UTC), second.ValidTime)
	assert.Equal(t, 0, first.LeadTime)
	assert.Equal(t, 2, second.LeadTime)
}

func TestSoundingScannerMergedFields(t *testing.T) {
	data, err := loadTestFile(t).Data()
	require.NoError(t, err)

	sc := data.Soundings()
	require.True(t, sc.Next())
	snd := sc.Sounding()

	assert.Equal(t, 727730, snd.Station.Number)
	assert.Equal(t, "KMSO", snd.Station.ID)
	require.NotNil(t, snd.Station.Elevation)
	assert.Equal(t, 972.0, *snd.Station.Elevation)
	assert.Regexp(t, regexp.MustCompile(`^kmso-[0-9a-f]{16}$`), snd.ID)
	assert.Equal(t, "17040100Z_gfs3_kmso.buf", snd.Source)

	assert.Equal(t, 7.42, snd.Indexes["PWAT"])
	assert.Equal(t, 0.0, snd.Indexes["CAPE"])
	_, hasEQLV := snd.Indexes["EquilibriumLevel"]
	assert.False(t, hasEQLV)

	require.Len(t, snd.Levels, 3)
	bottom := snd.Levels[0]
	require.NotNil(t, bottom.Pressure)
	assert.Equal(t, 903.90, *bottom.Pressure)
	require.NotNil(t, bottom.WindDirection)
	assert.Equal(t, 212.01, *bottom.WindDirection)
	require.NotNil(t, bottom.Height)
	assert.Equal(t, 972.0, *bottom.Height)

	require.NotNil(t, snd.Surface.MSLP)
	assert.Equal(t, 1022.10, *snd.Surface.MSLP)
	require.NotNil(t, snd.Surface.Temperature2M)
	assert.Equal(t, 10.34, *snd.Surface.Temperature2M)
	require.NotNil(t, snd.Surface.PrecipTypeRain)
	assert.False(t, *snd.Surface.PrecipTypeRain)

	require.True(t, sc.Next())
	snd = sc.Sounding()
	assert.Nil(t, snd.Levels[0].Omega)
	require.NotNil(t, snd.Surface.PrecipTypeRain)
	assert.False(t, *snd.Surface.PrecipTypeRain)
}

func TestSoundingScannerSkewedStreams(t *testing.T) {
	// Surface rows that start an hour early never find a partner.
	text := upperAirBlock + "\n" + surfaceHeader + "\n" +
		"727730 170331/2300 1022.10 903.90 3.77 -9999.00 0.00 0.00 0.00 2.00 1.66 1.27 10.34 1.13 0.00 0.00\n" +
		"727730 170401/0100 1022.80 905.70 1.31 -9999.00 0.10 29.00 0.00 2.00 1.36 1.92 3.24 2.71 0.00 1.00\n"

	data, err := NewFile(text, "skewed.buf").Data()
	require.NoError(t, err)

	sc := data.Soundings()
	require.True(t, sc.Next())
	assert.Equal(t, time.Date(2017, time.April, 1, 1, 0, 0, 0, time.UTC), sc.Sounding().ValidTime)
	assert.False(t, sc.Next())
}

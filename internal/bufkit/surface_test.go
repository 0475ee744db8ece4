package bufkit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const surfaceHeader = "STN YYMMDD/HHMM PMSL PRES SKTC SLLH P01M LCLD MCLD HCLD " +
	"UWND VWND T2MS TD2M WXTS WXTR"

const surfaceText = surfaceHeader + `
727730 170401/0000 1022.10 903.90 3.77 -9999.00 0.00 0.00 0.00 2.00 1.66 1.27 10.34 1.13 0.00 0.00
727730 170401/0100 1022.80 905.70 1.31 -9999.00 0.10 29.00 0.00 2.00 1.36 1.92 3.24 2.71 0.00 1.00
727730 170401/0200 1023.10 906.90 0.61 -9999.00 0.00 33.00 0.00 2.00 1.15 2.40 2.24 1.92 0.00 0.00
`

func TestParseSurfaceColumns(t *testing.T) {
	cols, err := parseSurfaceColumns(surfaceHeader)
	require.NoError(t, err)
	assert.Equal(t, 16, cols.numCols())

	// SLLH is not a column the parser keeps, but it still occupies a slot.
	assert.Equal(t, colNone, cols.names[5])
	assert.Equal(t, colStation, cols.names[0])
	assert.Equal(t, colValidTime, cols.names[1])
}

func TestParseSurfaceColumnsMissingRequired(t *testing.T) {
	_, err := parseSurfaceColumns("PMSL PRES SKTC")
	assert.ErrorIs(t, err, ErrMissingSurfaceColumns)

	_, err = parseSurfaceColumns("STN PMSL PRES")
	assert.ErrorIs(t, err, ErrMissingSurfaceColumns)
}

func TestParseSurfaceRow(t *testing.T) {
	cols, err := parseSurfaceColumns(surfaceHeader)
	require.NoError(t, err)

	sd, err := parseSurfaceRow("727730 170401/0100 1022.80 905.70 1.31 -9999.00 "+
		"0.10 29.00 0.00 2.00 1.36 1.92 3.24 2.71 0.00 1.00", cols)
	require.NoError(t, err)

	assert.Equal(t, 727730, sd.StationNum)
	assert.Equal(t, time.Date(2017, time.April, 1, 1, 0, 0, 0, time.UTC), sd.ValidTime)
	require.NotNil(t, sd.MSLP)
	assert.Equal(t, 1022.80, *sd.MSLP)
	require.NotNil(t, sd.StationPressure)
	assert.Equal(t, 905.70, *sd.StationPressure)
	require.NotNil(t, sd.LowCloud)
	assert.Equal(t, 29.0, *sd.LowCloud)
	require.NotNil(t, sd.Temperature2M)
	assert.Equal(t, 3.24, *sd.Temperature2M)
	require.NotNil(t, sd.Dewpoint2M)
	assert.Equal(t, 2.71, *sd.Dewpoint2M)

	require.NotNil(t, sd.SnowType)
	assert.False(t, *sd.SnowType)
	require.NotNil(t, sd.RainType)
	assert.True(t, *sd.RainType)

	// Columns the parser does not keep leave no trace.
	assert.Nil(t, sd.Helicity)
	assert.Nil(t, sd.WxSymbol)
}

func TestParseSurfaceRowValidatesDiscardedColumns(t *testing.T) {
	cols, err := parseSurfaceColumns(surfaceHeader)
	require.NoError(t, err)

	// The corrupt token sits in the discarded SLLH column.
	_, err = parseSurfaceRow("727730 170401/0100 1022.80 905.70 1.31 garbage "+
		"0.10 29.00 0.00 2.00 1.36 1.92 3.24 2.71 0.00 1.00", cols)
	assert.Error(t, err)
}

func TestParseSurfaceRowWrongWidth(t *testing.T) {
	cols, err := parseSurfaceColumns(surfaceHeader)
	require.NoError(t, err)

	_, err = parseSurfaceRow("727730 170401/0100 1022.80", cols)
	assert.ErrorIs(t, err, errTruncatedRow)
}

func TestSurfaceScanner(t *testing.T) {
	sec, err := newSurfaceSection(surfaceText)
	require.NoError(t, err)

	sc := sec.scan()
	var times []time.Time
	for sc.Next() {
		times = append(times, sc.Record().ValidTime)
	}

	require.Len(t, times, 3)
	assert.Equal(t, time.Date(2017, time.April, 1, 0, 0, 0, 0, time.UTC), times[0])
	assert.Equal(t, time.Date(2017, time.April, 1, 2, 0, 0, 0, time.UTC), times[2])
}

func TestSurfaceSectionValidate(t *testing.T) {
	sec, err := newSurfaceSection(surfaceText)
	require.NoError(t, err)
	assert.NoError(t, sec.validate())

	truncated, err := newSurfaceSection(surfaceText + "727730 170401/0300 1023.40")
	require.NoError(t, err)
	assert.ErrorIs(t, truncated.validate(), errTruncatedRow)
}

func TestNewSurfaceSectionNoRows(t *testing.T) {
	_, err := newSurfaceSection("STN YYMMDD/HHMM PMSL PRES\n")
	assert.ErrorIs(t, err, ErrNoSurfaceRows)
}

func TestAsFlag(t *testing.T) {
	one, zero := 1.0, 0.0
	require.NotNil(t, asFlag(&one))
	assert.True(t, *asFlag(&one))
	require.NotNil(t, asFlag(&zero))
	assert.False(t, *asFlag(&zero))
	assert.Nil(t, asFlag(nil))
}

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickModeArgCounts(t *testing.T) {
	for _, tc := range []struct {
		inverse, geocent bool
		fwd, rev         string
		nargs            int
	}{
		{false, false, "", "", 4}, // direct
		{true, false, "", "", 4},
		{false, true, "", "", 3},
		{false, false, "48.8,2.3", "", 2},
		{false, false, "", "48.8,2.3", 2},
	} {
		solve, nargs, err := pickMode(tc.inverse, tc.geocent, tc.fwd, tc.rev)
		require.NoError(t, err)
		require.NotNil(t, solve)
		assert.Equal(t, tc.nargs, nargs)
	}
}

func TestPickModeConflict(t *testing.T) {
	for _, tc := range []struct {
		inverse, geocent bool
		fwd, rev         string
	}{
		{true, true, "", ""},
		{true, false, "0,0", ""},
		{false, true, "", "0,0"},
		{false, false, "0,0", "0,0"},
	} {
		_, _, err := pickMode(tc.inverse, tc.geocent, tc.fwd, tc.rev)
		require.Error(t, err, "%+v", tc)
	}
}

func TestPickModeSolve(t *testing.T) {
	solve, _, err := pickMode(true, false, "", "")
	require.NoError(t, err)
	out, ok := solve([]float64{0, 0, 0, 90})
	require.True(t, ok)
	require.NotEmpty(t, out)

	_, ok = solve([]float64{95, 0, 0, 90})
	require.False(t, ok)
}

func TestParseFloats(t *testing.T) {
	vals, err := parseFloats("1.5 -2 3e3", 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2, 3000}, vals)

	_, err = parseFloats("1 2", 3)
	require.Error(t, err)
	_, err = parseFloats("1 2 x", 3)
	require.Error(t, err)
}

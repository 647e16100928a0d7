package availability

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinutes(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{name: "midnight", in: "00:00", want: 0},
		{name: "morning", in: "08:30", want: 510},
		{name: "last minute", in: "23:59", want: 1439},
		{name: "missing zero padding", in: "8:30", wantErr: true},
		{name: "hour out of range", in: "24:00", wantErr: true},
		{name: "minute out of range", in: "12:60", wantErr: true},
		{name: "wrong separator", in: "12-30", wantErr: true},
		{name: "not digits", in: "ab:cd", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ToMinutes(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestToHHMM(t *testing.T) {
	assert.Equal(t, "00:00", ToHHMM(0))
	assert.Equal(t, "08:05", ToHHMM(485))
	assert.Equal(t, "23:59", ToHHMM(1439))
	// Values outside a day normalise modulo 24h.
	assert.Equal(t, "00:30", ToHHMM(1470))
	assert.Equal(t, "23:30", ToHHMM(-30))
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		aS, aE, bS, bE int
		want           bool
	}{
		{name: "disjoint before", aS: 60, aE: 120, bS: 180, bE: 240, want: false},
		{name: "disjoint after", aS: 300, aE: 360, bS: 180, bE: 240, want: false},
		{name: "touching boundary is free", aS: 60, aE: 120, bS: 120, bE: 180, want: false},
		{name: "touching boundary reversed", aS: 120, aE: 180, bS: 60, bE: 120, want: false},
		{name: "partial overlap", aS: 60, aE: 150, bS: 120, bE: 240, want: true},
		{name: "containment", aS: 60, aE: 300, bS: 120, bE: 240, want: true},
		{name: "identical", aS: 60, aE: 120, bS: 60, bE: 120, want: true},
		{name: "one minute shared", aS: 60, aE: 121, bS: 120, bE: 180, want: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aS, tc.aE, tc.bS, tc.bE))
			// The predicate is symmetric.
			assert.Equal(t, tc.want, Overlaps(tc.bS, tc.bE, tc.aS, tc.aE))
		})
	}
}

func TestNewInterval(t *testing.T) {
	iv, err := NewInterval("09:00", 2)
	require.NoError(t, err)
	assert.Equal(t, Interval{Start: 540, End: 660}, iv)

	// Half-hour steps are allowed.
	iv, err = NewInterval("09:00", 1.5)
	require.NoError(t, err)
	assert.Equal(t, "09:00 - 10:30", iv.String())

	// A duration reaching exactly midnight wraps to 0 and is rejected.
	_, err = NewInterval("22:00", 2)
	require.ErrorIs(t, err, ErrInvalidRange)

	// Crossing midnight is rejected, not wrapped.
	_, err = NewInterval("23:00", 3)
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = NewInterval("junk", 1)
	require.ErrorIs(t, err, ErrInvalidTime)
}

func TestParseInterval(t *testing.T) {
	iv, err := ParseInterval("10:00", "12:30")
	require.NoError(t, err)
	assert.Equal(t, Interval{Start: 600, End: 750}, iv)

	_, err = ParseInterval("12:00", "12:00")
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = ParseInterval("14:00", "12:00")
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = ParseInterval("10:00", "25:00")
	require.ErrorIs(t, err, ErrInvalidTime)
}

func TestIntervalJSON(t *testing.T) {
	got, err := json.Marshal(Interval{Start: 540, End: 660})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"09:00","end":"11:00"}`, string(got))
}

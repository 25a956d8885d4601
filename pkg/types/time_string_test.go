package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid morning time", value: "08:30", wantErr: false},
		{name: "valid midnight", value: "00:00", wantErr: false},
		{name: "valid end of day", value: "23:59", wantErr: false},
		{name: "missing leading zero", value: "8:30", wantErr: true},
		{name: "hour out of range", value: "24:00", wantErr: true},
		{name: "minutes out of range", value: "12:60", wantErr: true},
		{name: "with seconds", value: "08:30:00", wantErr: true},
		{name: "empty string", value: "", wantErr: true},
		{name: "garbage", value: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TimeString(tt.value).Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("14:45")
	require.NoError(t, err)
	assert.Equal(t, "14:45", ts.String())

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("08:00").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.True(t, TimeString("10:30").IsAfter("10:29"))
	assert.False(t, TimeString("10:30").IsAfter("10:30"))

	// Ведущие нули делают лексикографическое сравнение корректным
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("09:59").IsBefore("10:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		minutes int
		want    string
	}{
		{name: "within the hour", value: "08:00", minutes: 30, want: "08:30"},
		{name: "across the hour", value: "08:45", minutes: 30, want: "09:15"},
		{name: "capped at end of day", value: "23:30", minutes: 60, want: "23:59"},
		{name: "zero shift", value: "12:00", minutes: 0, want: "12:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimeString(tt.value).AddMinutes(tt.minutes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	_, err := TimeString("bad").AddMinutes(10)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("08:30"))
	assert.Equal(t, TimeString("08:30"), ts)

	// Колонки TIME приходят с секундами
	require.NoError(t, ts.Scan("08:30:00"))
	assert.Equal(t, TimeString("08:30"), ts)

	require.NoError(t, ts.Scan([]byte("17:15:59")))
	assert.Equal(t, TimeString("17:15"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 3, 1, 9, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("09:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.ErrorIs(t, ts.Scan(42), ErrInvalidTimeString)
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("11:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "11:00", v)
}

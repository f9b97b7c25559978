package util

import (
	"errors"
	"testing"
	"time"

	"github.com/napalu/noshell/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"-7", -7, false},
		{"0x10", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInt(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, errs.ErrParseInt))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUint(t *testing.T) {
	got, err := ParseUint("18")
	require.NoError(t, err)
	assert.Equal(t, uint64(18), got)

	_, err = ParseUint("-1")
	assert.True(t, errors.Is(err, errs.ErrParseUint))
}

func TestParseFloat(t *testing.T) {
	got, err := ParseFloat("-2.5e1")
	require.NoError(t, err)
	assert.Equal(t, -25.0, got)

	_, err = ParseFloat("x1")
	assert.True(t, errors.Is(err, errs.ErrParseFloat))
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"1", true, false},
		{"YES", true, false},
		{"on", true, false},
		{"false", false, false},
		{"off", false, false},
		{"no", false, false},
		{"maybe", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBool(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, errs.ErrParseBool))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDuration(t *testing.T) {
	got, err := ParseDuration("1h30m")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, got)

	_, err = ParseDuration("soon")
	assert.True(t, errors.Is(err, errs.ErrParseDuration))
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.March, got.Month())

	_, err = ParseTime("not a date")
	assert.True(t, errors.Is(err, errs.ErrParseTime))
}

func TestParseChoice(t *testing.T) {
	got, err := ParseChoice("json", []string{"text", "json"})
	require.NoError(t, err)
	assert.Equal(t, "json", got)

	_, err = ParseChoice("xml", []string{"text", "json"})
	assert.True(t, errors.Is(err, errs.ErrParseChoice))
	assert.Contains(t, err.Error(), "text, json")
}

func TestIsNegativeNumber(t *testing.T) {
	tests := map[string]bool{
		"-2":    true,
		"-2.5":  true,
		"-1e3":  true,
		"-.5":   true,
		"-":     false,
		"2":     false,
		"-x":    false,
		"-inf":  false,
		"-nan":  false,
		"-2x":   false,
		"--2":   false,
		"-.":    false,
		"-1e":   false,
		"-0x10": false,
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, IsNegativeNumber(in))
		})
	}
}

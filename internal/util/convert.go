package util

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/napalu/noshell/errs"
)

// ParseInt converts a base-10 signed integer
func ParseInt(value string) (int64, error) {
	if val, err := strconv.ParseInt(value, 10, 64); err == nil {
		return val, nil
	}

	return 0, errs.ErrParseInt
}

// ParseUint converts a base-10 unsigned integer
func ParseUint(value string) (uint64, error) {
	if val, err := strconv.ParseUint(value, 10, 64); err == nil {
		return val, nil
	}

	return 0, errs.ErrParseUint
}

// ParseFloat converts a 64-bit float
func ParseFloat(value string) (float64, error) {
	if val, err := strconv.ParseFloat(value, 64); err == nil {
		return val, nil
	}

	return 0, errs.ErrParseFloat
}

// ParseBool accepts the strconv forms plus yes/no and on/off, case-insensitively.
func ParseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "yes", "on", "y":
		return true, nil
	case "no", "off", "n":
		return false, nil
	}

	if val, err := strconv.ParseBool(value); err == nil {
		return val, nil
	}

	return false, errs.ErrParseBool
}

// ParseDuration converts a Go duration string such as 1h30m
func ParseDuration(value string) (time.Duration, error) {
	if val, err := time.ParseDuration(value); err == nil {
		return val, nil
	}

	return 0, errs.ErrParseDuration
}

// ParseTime converts a date or timestamp in any layout dateparse recognises, in local time.
func ParseTime(value string) (time.Time, error) {
	if val, err := dateparse.ParseLocal(value); err == nil {
		return val, nil
	}

	return time.Time{}, errs.ErrParseTime
}

// ParseChoice returns value when it is one of choices.
func ParseChoice(value string, choices []string) (string, error) {
	for _, c := range choices {
		if c == value {
			return value, nil
		}
	}

	return "", errs.ErrParseChoice.WithArgs(strings.Join(choices, ", "))
}

// IsNegativeNumber reports whether s is a negative decimal number such as -2, -2.5, -.5 or -1e3.
// Special float spellings (-inf, -nan) are not numbers here.
func IsNegativeNumber(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}

	c := s[1]
	if c == '.' && len(s) > 2 {
		c = s[2]
	}
	if c < '0' || c > '9' {
		return false
	}

	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

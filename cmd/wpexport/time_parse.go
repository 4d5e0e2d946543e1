package main

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// durationRegex matches relative ages like "24h", "7d", "2w", "6m" or "1y".
var durationRegex = regexp.MustCompile(`^(\d+)([hdwmy])$`)

const dateLayout = "2006-01-02"

// parseSinceValue parses a --since value into the earliest publish time to
// include. Accepts durations (24h, 7d, 2w, 6m, 1y), dates (2024-01-17) and
// RFC 3339 timestamps.
func parseSinceValue(value string) (time.Time, error) {
	t, err := parseTimeValue(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --since value %q; use duration (24h, 7d, 2w) or date (2024-01-17)", value)
	}
	return t, nil
}

// parseUntilValue parses a --until value into the latest publish time to
// include. A bare date covers the whole day.
func parseUntilValue(value string) (time.Time, error) {
	cutoff, err := parseTimeValue(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --until value %q; use duration (24h, 7d, 2w) or date (2024-01-17)", value)
	}
	if _, dateErr := time.Parse(dateLayout, value); dateErr == nil {
		cutoff = cutoff.Add(24*time.Hour - time.Second)
	}
	return cutoff, nil
}

func parseTimeValue(value string) (time.Time, error) {
	if matches := durationRegex.FindStringSubmatch(value); len(matches) == 3 {
		return ago(matches[1], matches[2], time.Now().UTC())
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time value: %s", value)
}

// ago returns now minus num units.
func ago(numStr, unit string, now time.Time) (time.Time, error) {
	num, err := strconv.Atoi(numStr)
	if err != nil || num <= 0 {
		return time.Time{}, fmt.Errorf("invalid duration number: %s", numStr)
	}

	switch unit {
	case "h":
		return now.Add(-time.Duration(num) * time.Hour), nil
	case "d":
		return now.AddDate(0, 0, -num), nil
	case "w":
		return now.AddDate(0, 0, -num*7), nil
	case "m":
		return now.AddDate(0, -num, 0), nil
	case "y":
		return now.AddDate(-num, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unknown duration unit: %s", unit)
	}
}

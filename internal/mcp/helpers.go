package mcp

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/gorewood/wpexport/internal/normalize"
	"github.com/gorewood/wpexport/internal/post"
)

// toSummaries converts posts to PostSummary values.
func toSummaries(posts []post.Post) []PostSummary {
	result := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		result = append(result, PostSummary{
			ID:         p.ID,
			Title:      p.Title,
			Name:       p.Name,
			Status:     p.Status,
			Published:  p.Published.Format(time.RFC3339),
			Author:     p.AuthorName,
			Tags:       p.Tags,
			Categories: p.Categories,
		})
	}
	return result
}

// patternCounts reports how many rules each category holds, sorted by name.
func patternCounts(table normalize.PatternTable) []PatternCount {
	names := slices.Sorted(maps.Keys(table))
	result := make([]PatternCount, 0, len(names))
	for _, name := range names {
		result = append(result, PatternCount{Category: name, Count: len(table[name])})
	}
	return result
}

// parseDurationOrDate parses a duration string (24h, 7d) or ISO date into a time.
func parseDurationOrDate(value string) (time.Time, error) {
	if duration, err := time.ParseDuration(value); err == nil {
		return time.Now().UTC().Add(-duration), nil
	}

	if len(value) > 1 && value[len(value)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(value, "%dd", &days); err == nil && days > 0 {
			return time.Now().UTC().AddDate(0, 0, -days), nil
		}
	}

	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed, nil
	}

	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}

	return time.Time{}, fmt.Errorf("cannot parse %q as duration or date", value)
}

package dto

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidIDList indicates a malformed comma-separated ID filter.
var ErrInvalidIDList = errors.New("invalid id list")

// ParseIDList parses a comma-separated list of positive integer IDs
// from a query parameter. An empty string yields no filter.
func ParseIDList(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, ErrInvalidIDList
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id < 1 {
			return nil, ErrInvalidIDList
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// ParseBoolFlag interprets a query parameter as a boolean flag.
// "1" and "true" are true; everything else is false.
func ParseBoolFlag(s string) bool {
	return s == "1" || strings.EqualFold(s, "true")
}

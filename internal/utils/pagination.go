package utils

import (
	"math"
	"strconv"
)

// PositiveIntOr parses a query value, falling back when it is missing,
// malformed or not positive.
func PositiveIntOr(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}

	return n
}

// Offset converts a 1-based page into the number of documents to skip.
// Products that do not fit in an int saturate at math.MaxInt, which every
// store treats as past the end.
func Offset(page, limit int) int {
	if page < 1 || limit < 1 {
		return 0
	}

	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}

	return (page - 1) * limit
}

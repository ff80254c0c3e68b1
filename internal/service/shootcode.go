package service

import (
	"fmt"
	"strconv"
	"strings"

	"go-studio-ops/internal/model"
)

// shootCodePrefix maps a category to its fixed code prefix. Unknown
// categories fall into the catch-all "O" bucket.
func shootCodePrefix(category model.ShootCategory) string {
	switch category {
	case model.CategoryWedding:
		return "W"
	case model.CategoryCommercial:
		return "CM"
	case model.CategoryBabyShower:
		return "BS"
	default:
		return "O"
	}
}

// nextShootNumber parses the numeric suffix of the latest existing code
// and increments it. No prior code, or a suffix that doesn't parse,
// starts the sequence at 1.
func nextShootNumber(latestCode, prefix string) int {
	if latestCode == "" {
		return 1
	}
	suffix := strings.TrimPrefix(latestCode, prefix+"-")
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 1 {
		return 1
	}
	return n + 1
}

// formatShootCode renders "{prefix}-{number}". Numbers below 100 are
// zero-padded to two digits; from 100 the padding stops ("W-99",
// "W-100"). Lexicographic order breaks at the switch, which is fine:
// the allocator re-parses the numeric suffix instead of trusting string
// order.
func formatShootCode(prefix string, n int) string {
	if n < 100 {
		return fmt.Sprintf("%s-%02d", prefix, n)
	}
	return fmt.Sprintf("%s-%d", prefix, n)
}

package utils

import (
	"time"

	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(utils.DateLayout, s)
}

// MinorUnits converts a whole-rupee amount to paise.
func MinorUnits(amount int64, perUnit int64) int64 {
	return amount * perUnit
}

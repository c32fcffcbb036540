package utils

import "time"

// IsValidTipTime checks a user-supplied daily tip time. Times are stored
// as zero-padded "HH:MM" in UTC, so "9:30" is rejected.
func IsValidTipTime(value string) bool {
	if len(value) != 5 {
		return false
	}
	_, err := time.Parse("15:04", value)
	return err == nil
}

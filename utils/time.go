package utils

import "time"

// ToIST converts UTC time to Indian Standard Time (IST)
func ToIST(t time.Time) time.Time {
	ist, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return t // Fallback to UTC if IST is not available
	}
	return t.In(ist)
}

// DayRange returns the start and end of the day containing t.
func DayRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

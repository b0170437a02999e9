package report

import "time"

// Bangkok is the fixed UTC+7 zone every calendar computation goes through.
// Thailand has no daylight saving, so a constant offset is exact and no
// timezone database lookup is needed. Stored timestamps are UTC; the host
// machine's zone must never leak into bucketing.
var Bangkok = time.FixedZone("ICT", 7*60*60)

// ToLocal returns the instant expressed in Thailand local time.
func ToLocal(t time.Time) time.Time {
	return t.In(Bangkok)
}

// StartOfLocalDay returns the UTC instant of local midnight for the day
// containing t.
func StartOfLocalDay(t time.Time) time.Time {
	local := t.In(Bangkok)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Bangkok)
}

// LocalHour returns the Thailand-local hour of day (0-23).
func LocalHour(t time.Time) int {
	return t.In(Bangkok).Hour()
}

// LocalDay returns the Thailand-local day of month (1-31).
func LocalDay(t time.Time) int {
	return t.In(Bangkok).Day()
}

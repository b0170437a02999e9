package report

import "time"

// Range selects which local calendar period a report covers.
type Range string

const (
	RangeToday  Range = "today"
	RangeWeek   Range = "week"
	RangeMonth  Range = "month"
	RangeCustom Range = "custom"
)

// ParseRange maps a query-string value onto a Range, defaulting to today.
func ParseRange(value string) Range {
	switch Range(value) {
	case RangeWeek:
		return RangeWeek
	case RangeMonth:
		return RangeMonth
	case RangeCustom:
		return RangeCustom
	default:
		return RangeToday
	}
}

// ResolvePeriod returns the half-open UTC interval [start, end) covering the
// requested local calendar range around the reference instant.
//
// A custom range behaves exactly like today: one local day, driven by the
// caller-supplied date instead of the current time.
func ResolvePeriod(kind Range, reference time.Time) (time.Time, time.Time) {
	base := StartOfLocalDay(reference)

	switch kind {
	case RangeWeek:
		start := base.AddDate(0, 0, -mondayOffset(base.Weekday()))
		return start, start.AddDate(0, 0, 7)
	case RangeMonth:
		local := reference.In(Bangkok)
		start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, Bangkok)
		return start, start.AddDate(0, 1, 0)
	default:
		return base, base.AddDate(0, 0, 1)
	}
}

// mondayOffset is the number of days back to the Monday on or before the
// given weekday. Sunday counts as day 7 of its week.
func mondayOffset(day time.Weekday) int {
	if day == time.Sunday {
		return 6
	}
	return int(day) - 1
}

// MonthPeriod returns the half-open UTC interval covering one local calendar
// month. The caller validates that month is in 1..12.
func MonthPeriod(year int, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, Bangkok)
	return start, start.AddDate(0, 1, 0)
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, Bangkok).Day()
}

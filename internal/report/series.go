package report

import (
	"fmt"
	"time"
)

// Business-hours window for the hourly reports. Records outside the window
// still count toward report totals, just not toward the series.
const (
	BusinessHourFirst = 7
	BusinessHourLast  = 18
)

// HourBucket is one entry of an hourly series, labeled "07:00".."18:00".
type HourBucket struct {
	Hour  string
	Value float64
}

// HourlyTotals accumulates values into the 12 business-hour buckets keyed by
// Thailand-local hour of day.
type HourlyTotals struct {
	values [BusinessHourLast - BusinessHourFirst + 1]float64
}

// Add records amount in the bucket for t's local hour. It reports whether the
// hour fell inside the business window.
func (h *HourlyTotals) Add(t time.Time, amount float64) bool {
	hour := LocalHour(t)
	if hour < BusinessHourFirst || hour > BusinessHourLast {
		return false
	}
	h.values[hour-BusinessHourFirst] += amount
	return true
}

// Buckets returns all 12 buckets in order, zeros included.
func (h *HourlyTotals) Buckets() []HourBucket {
	out := make([]HourBucket, len(h.values))
	for i, value := range h.values {
		out[i] = HourBucket{
			Hour:  fmt.Sprintf("%02d:00", BusinessHourFirst+i),
			Value: value,
		}
	}
	return out
}

// DayBucket is one entry of a daily series; Day is the 1-based day of month
// rendered as a string for the chart axis.
type DayBucket struct {
	Day   string
	Value float64
}

// DailyTotals accumulates values into per-day buckets across one local month.
type DailyTotals struct {
	values []float64
}

// NewDailyTotals allocates buckets for every day of the month so days with no
// data report zero rather than being absent.
func NewDailyTotals(daysInMonth int) *DailyTotals {
	return &DailyTotals{values: make([]float64, daysInMonth)}
}

// Add records amount under t's Thailand-local day of month. Days outside the
// month are ignored; the caller's period query makes them impossible anyway.
func (d *DailyTotals) Add(t time.Time, amount float64) {
	day := LocalDay(t)
	if day < 1 || day > len(d.values) {
		return
	}
	d.values[day-1] += amount
}

// Buckets returns one bucket per day of the month, in order.
func (d *DailyTotals) Buckets() []DayBucket {
	out := make([]DayBucket, len(d.values))
	for i, value := range d.values {
		out[i] = DayBucket{Day: fmt.Sprintf("%d", i+1), Value: value}
	}
	return out
}

package report

import (
	"fmt"
	"math"
	"time"
)

// Percent renders part as a percentage of total with one decimal. A zero
// total reports "0.0" instead of NaN so empty periods still render.
func Percent(part float64, total float64) string {
	if total <= 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", math.Round(part/total*1000)/10)
}

// FormatChange renders the percent change against the preceding period the
// way the dashboard displays it. A zero previous period reports +100% when
// anything happened in the current one and +0% otherwise.
func FormatChange(current float64, previous float64) string {
	if previous > 0 {
		change := math.Round((current-previous)/previous*1000) / 10
		sign := ""
		if change >= 0 {
			sign = "+"
		}
		return fmt.Sprintf("%s%.1f%% จากช่วงก่อนหน้า", sign, change)
	}
	if current > 0 {
		return "+100% จากช่วงก่อนหน้า"
	}
	return "+0% จากช่วงก่อนหน้า"
}

// ThaiDate renders a Thai display date, day/month with the Buddhist-era year.
func ThaiDate(t time.Time) string {
	local := t.In(Bangkok)
	return fmt.Sprintf("%d/%d/%d", local.Day(), int(local.Month()), local.Year()+543)
}

// TimeAgo renders a relative Thai timestamp for the activity feed.
func TimeAgo(event time.Time, now time.Time) string {
	minutes := int(now.Sub(event).Minutes())
	if minutes < 1 {
		return "เมื่อสักครู่"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d นาทีที่แล้ว", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%d ชั่วโมงที่แล้ว", hours)
	}
	return fmt.Sprintf("%d วันที่แล้ว", hours/24)
}

// FormatAmount renders a money amount without trailing zeros, matching how
// the dashboard interpolates raw numbers into activity labels.
func FormatAmount(value float64) string {
	if value == math.Trunc(value) {
		return fmt.Sprintf("%d", int64(value))
	}
	return fmt.Sprintf("%g", value)
}

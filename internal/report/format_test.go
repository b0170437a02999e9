package report

import (
	"testing"
	"time"
)

func TestPercent(t *testing.T) {
	cases := []struct {
		part     float64
		total    float64
		expected string
	}{
		{50, 100, "50.0"},
		{1, 3, "33.3"},
		{2, 3, "66.7"},
		{0, 0, "0.0"},
		{10, 0, "0.0"},
		{100, 100, "100.0"},
	}
	for _, tc := range cases {
		if got := Percent(tc.part, tc.total); got != tc.expected {
			t.Fatalf("Percent(%v, %v): expected %s, got %s", tc.part, tc.total, tc.expected, got)
		}
	}
}

func TestFormatChange(t *testing.T) {
	cases := []struct {
		name     string
		current  float64
		previous float64
		expected string
	}{
		{"growth", 150, 100, "+50.0% จากช่วงก่อนหน้า"},
		{"decline", 50, 100, "-50.0% จากช่วงก่อนหน้า"},
		{"flat", 100, 100, "+0.0% จากช่วงก่อนหน้า"},
		{"no previous with activity", 5, 0, "+100% จากช่วงก่อนหน้า"},
		{"no previous no activity", 0, 0, "+0% จากช่วงก่อนหน้า"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatChange(tc.current, tc.previous); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestThaiDate(t *testing.T) {
	// 2024-06-14T17:00Z is local midnight of June 15th; Buddhist year 2567.
	instant := time.Date(2024, 6, 14, 17, 0, 0, 0, time.UTC)
	if got := ThaiDate(instant); got != "15/6/2567" {
		t.Fatalf("expected 15/6/2567, got %s", got)
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name     string
		event    time.Time
		expected string
	}{
		{"just now", now.Add(-30 * time.Second), "เมื่อสักครู่"},
		{"minutes", now.Add(-25 * time.Minute), "25 นาทีที่แล้ว"},
		{"hours", now.Add(-3 * time.Hour), "3 ชั่วโมงที่แล้ว"},
		{"days", now.Add(-50 * time.Hour), "2 วันที่แล้ว"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TimeAgo(tc.event, now); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(500); got != "500" {
		t.Fatalf("expected 500, got %s", got)
	}
	if got := FormatAmount(500.5); got != "500.5" {
		t.Fatalf("expected 500.5, got %s", got)
	}
}

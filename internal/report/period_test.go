package report

import (
	"testing"
	"time"
)

func TestResolvePeriodToday(t *testing.T) {
	reference := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	start, end := ResolvePeriod(RangeToday, reference)

	if !start.Equal(time.Date(2024, 6, 14, 17, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %v", start)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Fatalf("expected 24h period, got %v", end.Sub(start))
	}
}

func TestResolvePeriodCustomMatchesToday(t *testing.T) {
	reference := time.Date(2024, 3, 3, 2, 30, 0, 0, time.UTC)
	todayStart, todayEnd := ResolvePeriod(RangeToday, reference)
	customStart, customEnd := ResolvePeriod(RangeCustom, reference)

	if !todayStart.Equal(customStart) || !todayEnd.Equal(customEnd) {
		t.Fatalf("custom range diverged from today: [%v,%v) vs [%v,%v)",
			customStart, customEnd, todayStart, todayEnd)
	}
}

func TestResolvePeriodWeek(t *testing.T) {
	cases := []struct {
		name      string
		reference time.Time
		wantStart time.Time
	}{
		{
			// 2024-06-12 is a Wednesday in local time.
			name:      "midweek goes back to monday",
			reference: time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 6, 9, 17, 0, 0, 0, time.UTC),
		},
		{
			// 2024-06-10 local is a Monday; start is that same day.
			name:      "monday stays put",
			reference: time.Date(2024, 6, 10, 1, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 6, 9, 17, 0, 0, 0, time.UTC),
		},
		{
			// 2024-06-16 local is a Sunday and counts as day 7 of its week.
			name:      "sunday counts as day seven",
			reference: time.Date(2024, 6, 16, 10, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 6, 9, 17, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := ResolvePeriod(RangeWeek, tc.reference)
			if !start.Equal(tc.wantStart) {
				t.Fatalf("expected start %v, got %v", tc.wantStart, start)
			}
			if ToLocal(start).Weekday() != time.Monday {
				t.Fatalf("week start is not a local monday: %v", ToLocal(start))
			}
			if end.Sub(start) != 7*24*time.Hour {
				t.Fatalf("expected exactly 7 days, got %v", end.Sub(start))
			}
		})
	}
}

func TestResolvePeriodMonth(t *testing.T) {
	reference := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	start, end := ResolvePeriod(RangeMonth, reference)

	wantStart := time.Date(2024, 5, 31, 17, 0, 0, 0, time.UTC) // local June 1st
	wantEnd := time.Date(2024, 6, 30, 17, 0, 0, 0, time.UTC)   // local July 1st
	if !start.Equal(wantStart) {
		t.Fatalf("expected start %v, got %v", wantStart, start)
	}
	if !end.Equal(wantEnd) {
		t.Fatalf("expected end %v, got %v", wantEnd, end)
	}
}

func TestMonthPeriodDecemberRollsOver(t *testing.T) {
	start, end := MonthPeriod(2024, 12)
	if ToLocal(start).Month() != time.December || ToLocal(start).Day() != 1 {
		t.Fatalf("unexpected start %v", ToLocal(start))
	}
	local := ToLocal(end)
	if local.Year() != 2025 || local.Month() != time.January || local.Day() != 1 {
		t.Fatalf("expected local 2025-01-01, got %v", local)
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month int
		want  int
	}{
		{2024, 2, 29},
		{2023, 2, 28},
		{2024, 6, 30},
		{2024, 12, 31},
	}
	for _, tc := range cases {
		if got := DaysInMonth(tc.year, tc.month); got != tc.want {
			t.Fatalf("DaysInMonth(%d, %d): expected %d, got %d", tc.year, tc.month, tc.want, got)
		}
	}
}

func TestParseRange(t *testing.T) {
	if ParseRange("week") != RangeWeek {
		t.Fatalf("expected week")
	}
	if ParseRange("") != RangeToday {
		t.Fatalf("expected default today for empty value")
	}
	if ParseRange("yearly") != RangeToday {
		t.Fatalf("expected default today for unknown value")
	}
}

package handlers

import (
	"testing"
	"time"
)

func TestHourlyVisitSeries(t *testing.T) {
	// Three morning examinations, 2024-06-15 local (UTC 03:00-05:00 is
	// 10:00-12:00 in Thailand).
	visits := []time.Time{
		time.Date(2024, time.June, 15, 3, 0, 0, 0, time.UTC),
		time.Date(2024, time.June, 15, 4, 0, 0, 0, time.UTC),
		time.Date(2024, time.June, 15, 5, 0, 0, 0, time.UTC),
	}

	buckets, total := hourlyVisitSeries(visits)
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	if len(buckets) != 12 {
		t.Fatalf("expected 12 buckets, got %d", len(buckets))
	}

	want := map[string]int64{"10:00": 1, "11:00": 1, "12:00": 1}
	for _, bucket := range buckets {
		if bucket.Registrations != want[bucket.Hour] {
			t.Fatalf("bucket %s: expected %d, got %d", bucket.Hour, want[bucket.Hour], bucket.Registrations)
		}
	}
}

func TestHourlyVisitSeriesOutsideWindow(t *testing.T) {
	// 17:00 UTC is midnight local, outside business hours.
	visits := []time.Time{
		time.Date(2024, time.June, 15, 17, 0, 0, 0, time.UTC),
	}

	buckets, total := hourlyVisitSeries(visits)
	if total != 1 {
		t.Fatalf("expected total 1, got %d", total)
	}
	for _, bucket := range buckets {
		if bucket.Registrations != 0 {
			t.Fatalf("bucket %s: expected 0, got %d", bucket.Hour, bucket.Registrations)
		}
	}
}

func TestHourlyVisitSeriesEmpty(t *testing.T) {
	buckets, total := hourlyVisitSeries(nil)
	if total != 0 {
		t.Fatalf("expected total 0, got %d", total)
	}
	if len(buckets) != 12 {
		t.Fatalf("expected 12 zero buckets, got %d", len(buckets))
	}
}

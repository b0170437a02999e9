package report

import (
	"testing"
	"time"
)

func TestToLocalRoundTrip(t *testing.T) {
	instants := []time.Time{
		time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 17, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC),
	}
	for _, instant := range instants {
		local := ToLocal(instant)
		if !local.Equal(instant) {
			t.Fatalf("conversion changed the instant: %v vs %v", local, instant)
		}
		if back := local.UTC(); !back.Equal(instant) {
			t.Fatalf("round trip lost the instant: %v vs %v", back, instant)
		}
	}
}

func TestToLocalShift(t *testing.T) {
	instant := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	local := ToLocal(instant)
	if local.Hour() != 17 {
		t.Fatalf("expected local hour 17, got %d", local.Hour())
	}
	if local.Day() != 15 {
		t.Fatalf("expected local day 15, got %d", local.Day())
	}

	// Late UTC evening rolls into the next local day.
	evening := time.Date(2024, 6, 15, 20, 30, 0, 0, time.UTC)
	if LocalDay(evening) != 16 {
		t.Fatalf("expected local day 16, got %d", LocalDay(evening))
	}
	if LocalHour(evening) != 3 {
		t.Fatalf("expected local hour 3, got %d", LocalHour(evening))
	}
}

func TestStartOfLocalDay(t *testing.T) {
	cases := []struct {
		name    string
		instant time.Time
		want    time.Time
	}{
		{
			name:    "afternoon stays on the same local day",
			instant: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC),
			want:    time.Date(2024, 6, 14, 17, 0, 0, 0, time.UTC),
		},
		{
			name:    "late utc evening belongs to the next local day",
			instant: time.Date(2024, 6, 15, 20, 0, 0, 0, time.UTC),
			want:    time.Date(2024, 6, 15, 17, 0, 0, 0, time.UTC),
		},
		{
			name:    "exact local midnight maps to itself",
			instant: time.Date(2024, 6, 14, 17, 0, 0, 0, time.UTC),
			want:    time.Date(2024, 6, 14, 17, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := StartOfLocalDay(tc.instant)
			if !got.Equal(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestStartOfLocalDayIgnoresHostZone(t *testing.T) {
	instant := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	want := StartOfLocalDay(instant)

	// The same instant expressed in an unrelated zone must resolve to the
	// same local midnight.
	elsewhere := instant.In(time.FixedZone("UTC-5", -5*3600))
	if got := StartOfLocalDay(elsewhere); !got.Equal(want) {
		t.Fatalf("host zone leaked into day boundary: %v vs %v", got, want)
	}
}

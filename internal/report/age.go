package report

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Historic data entry spread patient age over several alias fields; the first
// field that resolves wins. Probing order matters for documents carrying more
// than one alias.
var (
	ageFields   = []string{"age", "Age", "patientAge", "years"}
	birthFields = []string{"birthDate", "dateOfBirth", "birth_date", "dob"}
)

// ResolveAge probes a patient's legacy demographic fields for an explicit age
// first, then for a birth date to compute one from. It returns false when no
// field yields a valid non-negative age; such patients are silently excluded
// from the histogram.
func ResolveAge(demographics map[string]any, now time.Time) (int, bool) {
	for _, field := range ageFields {
		if age, ok := parseAgeValue(demographics[field]); ok {
			if age >= 0 {
				return age, true
			}
			return 0, false
		}
	}

	for _, field := range birthFields {
		birth, ok := parseBirthDate(demographics[field])
		if !ok {
			continue
		}
		age := int(math.Floor(ToLocal(now).Sub(birth).Hours() / 24 / 365.25))
		if age >= 0 {
			return age, true
		}
		return 0, false
	}

	return 0, false
}

func parseAgeValue(value any) (int, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// parseBirthDate accepts the Thai day-first form DD/MM/YYYY and ISO-ish date
// strings (date only or full RFC3339).
func parseBirthDate(value any) (time.Time, bool) {
	text, ok := value.(string)
	if !ok {
		return time.Time{}, false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	if strings.Contains(text, "/") {
		parts := strings.Split(text, "/")
		if len(parts) != 3 {
			return time.Time{}, false
		}
		day, errDay := strconv.Atoi(parts[0])
		month, errMonth := strconv.Atoi(parts[1])
		year, errYear := strconv.Atoi(parts[2])
		if errDay != nil || errMonth != nil || errYear != nil {
			return time.Time{}, false
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, Bangkok), true
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, text); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// AgeGroup is one histogram bucket with its fixed chart color.
type AgeGroup struct {
	Name  string
	Color string
	Min   int
	Max   int // inclusive; -1 marks the open-ended bucket
}

// AgeGroups are the dashboard's five histogram buckets, in display order.
var AgeGroups = []AgeGroup{
	{Name: "0-7 ปี", Color: "#8884d8", Min: 0, Max: 7},
	{Name: "8-17 ปี", Color: "#82ca9d", Min: 8, Max: 17},
	{Name: "18-35 ปี", Color: "#ffc658", Min: 18, Max: 35},
	{Name: "36-60 ปี", Color: "#ff7300", Min: 36, Max: 60},
	{Name: "60+ ปี", Color: "#00ff88", Min: 61, Max: -1},
}

// AgeGroupIndex maps an age onto its bucket, or -1 for a negative age.
func AgeGroupIndex(age int) int {
	for i, group := range AgeGroups {
		if age < group.Min {
			continue
		}
		if group.Max < 0 || age <= group.Max {
			return i
		}
	}
	return -1
}

// AgeGroupHistogram counts resolved ages into the five buckets and renders
// the chart rows. The percentage denominator is the number of patients whose
// age resolved, not every patient in the period.
type AgeGroupRow struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Count int64   `json:"count"`
	Color string  `json:"color"`
}

func AgeGroupHistogram(ages []int) []AgeGroupRow {
	counts := make([]int64, len(AgeGroups))
	var total int64
	for _, age := range ages {
		if idx := AgeGroupIndex(age); idx >= 0 {
			counts[idx]++
			total++
		}
	}

	rows := make([]AgeGroupRow, len(AgeGroups))
	for i, group := range AgeGroups {
		pct, err := strconv.ParseFloat(Percent(float64(counts[i]), float64(total)), 64)
		if err != nil {
			pct = 0
		}
		rows[i] = AgeGroupRow{
			Name:  group.Name,
			Value: pct,
			Count: counts[i],
			Color: group.Color,
		}
	}
	return rows
}

// SplitPatientName splits a denormalized "first last" visit name for the
// best-effort patient lookup; everything after the first space is the last
// name.
func SplitPatientName(full string) (string, string) {
	parts := strings.Fields(strings.TrimSpace(full))
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

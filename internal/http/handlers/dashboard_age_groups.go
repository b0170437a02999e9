package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jamesatitpong11/labflowadmin/internal/report"
	"github.com/jamesatitpong11/labflowadmin/pkg/response"
)

// AgeGroups builds the age histogram for the patients seen on one local day.
// Each visit is matched to a patient by reference first, then by the
// denormalized visit name; visits whose patient cannot be found or whose age
// cannot be resolved stay out of the histogram.
func (h *Handler) AgeGroups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reference, err := parseSelectedDate(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	start := report.StartOfLocalDay(reference)
	end := start.Add(24 * time.Hour)

	rows, err := h.DB.Query(ctx, `
		select v.patient_name, p.demographics
		from visits v
		left join patients p on p.id = v.patient_id
		where v.created_at >= $1 and v.created_at < $2
	`, start, end)
	if err != nil {
		h.Logger.Error("age groups query failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to fetch age groups")
		return
	}
	defer rows.Close()

	now := time.Now()
	var (
		ages        []int
		totalVisits int64
		resolved    int64
		unmatched   []string
	)
	for rows.Next() {
		var (
			patientName  string
			demographics []byte
		)
		if err := rows.Scan(&patientName, &demographics); err != nil {
			h.Logger.Error("age groups scan failed", zapError(err))
			response.Error(w, http.StatusInternalServerError, "Failed to fetch age groups")
			return
		}
		totalVisits++

		if demographics == nil {
			unmatched = append(unmatched, patientName)
			continue
		}
		if age, ok := decodeAge(demographics, now); ok {
			ages = append(ages, age)
		}
		resolved++
	}
	if err := rows.Err(); err != nil {
		h.Logger.Error("age groups rows failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to fetch age groups")
		return
	}

	// Fallback lookup by visit name for visits without a patient reference.
	for _, name := range unmatched {
		demographics, err := h.patientDemographicsByName(ctx, name)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			h.Logger.Error("age groups name lookup failed", zapError(err))
			response.Error(w, http.StatusInternalServerError, "Failed to fetch age groups")
			return
		}
		if age, ok := decodeAge(demographics, now); ok {
			ages = append(ages, age)
		}
		resolved++
	}

	data := map[string]any{
		"ageGroupData":  report.AgeGroupHistogram(ages),
		"totalPatients": resolved,
		"totalVisits":   totalVisits,
		"date":          report.ThaiDate(start),
	}
	response.Success(w, http.StatusOK, data, "Age groups retrieved successfully")
}

func (h *Handler) patientDemographicsByName(ctx context.Context, name string) ([]byte, error) {
	firstName, lastName := report.SplitPatientName(name)
	if firstName == "" {
		return nil, pgx.ErrNoRows
	}
	var demographics []byte
	err := h.DB.QueryRow(ctx, `
		select demographics
		from patients
		where first_name = $1 and last_name = $2
		limit 1
	`, firstName, lastName).Scan(&demographics)
	if err != nil {
		return nil, err
	}
	return demographics, nil
}

func decodeAge(demographics []byte, now time.Time) (int, bool) {
	var fields map[string]any
	if err := json.Unmarshal(demographics, &fields); err != nil {
		return 0, false
	}
	return report.ResolveAge(fields, now)
}

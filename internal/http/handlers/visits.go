package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jamesatitpong11/labflowadmin/pkg/response"
)

type visitPayload struct {
	ID            int64     `json:"id"`
	PatientID     *int64    `json:"patientId"`
	PatientName   string    `json:"patientName"`
	VisitNumber   string    `json:"visitNumber"`
	VisitType     string    `json:"visitType"`
	Department    string    `json:"department"`
	PatientRights string    `json:"patientRights"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

type createVisitRequest struct {
	PatientID     *int64 `json:"patientId"`
	PatientName   string `json:"patientName"`
	VisitNumber   string `json:"visitNumber"`
	VisitType     string `json:"visitType"`
	Department    string `json:"department"`
	PatientRights string `json:"patientRights"`
	Status        string `json:"status"`
}

func (h *Handler) ListVisits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rows, err := h.DB.Query(ctx, `
		select id, patient_id, patient_name, visit_number, visit_type,
		       department, patient_rights, status, created_at
		from visits
		order by created_at desc
		limit 100
	`)
	if err != nil {
		h.Logger.Error("list visits failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to fetch visits")
		return
	}
	defer rows.Close()

	visits := make([]visitPayload, 0)
	for rows.Next() {
		var visit visitPayload
		if err := rows.Scan(&visit.ID, &visit.PatientID, &visit.PatientName, &visit.VisitNumber,
			&visit.VisitType, &visit.Department, &visit.PatientRights, &visit.Status, &visit.CreatedAt); err != nil {
			h.Logger.Error("list visits scan failed", zapError(err))
			response.Error(w, http.StatusInternalServerError, "Failed to fetch visits")
			return
		}
		visits = append(visits, visit)
	}
	if err := rows.Err(); err != nil {
		h.Logger.Error("list visits rows failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to fetch visits")
		return
	}

	response.Success(w, http.StatusOK, map[string]any{"visits": visits}, "Visits retrieved successfully")
}

func (h *Handler) CreateVisit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.PatientName = strings.TrimSpace(req.PatientName)
	if req.PatientID == nil && req.PatientName == "" {
		response.Error(w, http.StatusBadRequest, "Patient reference or patient name is required")
		return
	}
	if req.Status == "" {
		req.Status = "รอตรวจ"
	}

	// Denormalize the patient name when only a reference was supplied.
	if req.PatientID != nil && req.PatientName == "" {
		var firstName, lastName string
		err := h.DB.QueryRow(ctx, `
			select first_name, last_name from patients where id = $1
		`, *req.PatientID).Scan(&firstName, &lastName)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				response.Error(w, http.StatusBadRequest, "Patient not found")
				return
			}
			h.Logger.Error("create visit patient lookup failed", zapError(err))
			response.Error(w, http.StatusInternalServerError, "Failed to create visit")
			return
		}
		req.PatientName = strings.TrimSpace(firstName + " " + lastName)
	}

	var visit visitPayload
	err := h.DB.QueryRow(ctx, `
		insert into visits (patient_id, patient_name, visit_number, visit_type, department, patient_rights, status)
		values ($1, $2, $3, $4, $5, $6, $7)
		returning id, patient_id, patient_name, visit_number, visit_type, department, patient_rights, status, created_at
	`, req.PatientID, req.PatientName, req.VisitNumber, req.VisitType, req.Department, req.PatientRights, req.Status).
		Scan(&visit.ID, &visit.PatientID, &visit.PatientName, &visit.VisitNumber, &visit.VisitType,
			&visit.Department, &visit.PatientRights, &visit.Status, &visit.CreatedAt)
	if err != nil {
		h.Logger.Error("create visit failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to create visit")
		return
	}

	response.Success(w, http.StatusCreated, map[string]any{"visit": visit}, "Visit created successfully")
}

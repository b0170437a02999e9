package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/jamesatitpong11/labflowadmin/pkg/response"
)

type patientPayload struct {
	ID           int64          `json:"id"`
	FirstName    string         `json:"firstName"`
	LastName     string         `json:"lastName"`
	Phone        string         `json:"phone"`
	Gender       string         `json:"gender"`
	Address      string         `json:"address"`
	Demographics map[string]any `json:"demographics"`
	CreatedAt    time.Time      `json:"createdAt"`
}

type createPatientRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender"`
	Address   string `json:"address"`
	Age       *int   `json:"age"`
	BirthDate string `json:"birthDate"`
}

func (h *Handler) ListPatients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	search := strings.TrimSpace(r.URL.Query().Get("search"))
	query := `
		select id, first_name, last_name, phone, gender, address, demographics, created_at
		from patients
	`
	args := []any{}
	if search != "" {
		query += ` where first_name ilike $1 or last_name ilike $1 or phone ilike $1`
		args = append(args, "%"+search+"%")
	}
	query += ` order by created_at desc limit 100`

	rows, err := h.DB.Query(ctx, query, args...)
	if err != nil {
		h.Logger.Error("list patients failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to fetch patients")
		return
	}
	defer rows.Close()

	patients := make([]patientPayload, 0)
	for rows.Next() {
		var (
			patient      patientPayload
			demographics []byte
		)
		if err := rows.Scan(&patient.ID, &patient.FirstName, &patient.LastName, &patient.Phone,
			&patient.Gender, &patient.Address, &demographics, &patient.CreatedAt); err != nil {
			h.Logger.Error("list patients scan failed", zapError(err))
			response.Error(w, http.StatusInternalServerError, "Failed to fetch patients")
			return
		}
		_ = json.Unmarshal(demographics, &patient.Demographics)
		patients = append(patients, patient)
	}
	if err := rows.Err(); err != nil {
		h.Logger.Error("list patients rows failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to fetch patients")
		return
	}

	response.Success(w, http.StatusOK, map[string]any{"patients": patients}, "Patients retrieved successfully")
}

func (h *Handler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.FirstName == "" {
		response.Error(w, http.StatusBadRequest, "First name is required")
		return
	}

	demographics := map[string]any{}
	if req.Age != nil {
		demographics["age"] = *req.Age
	}
	if req.BirthDate != "" {
		demographics["birthDate"] = req.BirthDate
	}
	encoded, err := json.Marshal(demographics)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid demographics")
		return
	}

	var patient patientPayload
	err = h.DB.QueryRow(ctx, `
		insert into patients (first_name, last_name, phone, gender, address, demographics)
		values ($1, $2, $3, $4, $5, $6)
		returning id, first_name, last_name, phone, gender, address, created_at
	`, req.FirstName, req.LastName, req.Phone, req.Gender, req.Address, encoded).
		Scan(&patient.ID, &patient.FirstName, &patient.LastName, &patient.Phone,
			&patient.Gender, &patient.Address, &patient.CreatedAt)
	if err != nil {
		h.Logger.Error("create patient failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to create patient")
		return
	}
	patient.Demographics = demographics

	response.Success(w, http.StatusCreated, map[string]any{"patient": patient}, "Patient created successfully")
}

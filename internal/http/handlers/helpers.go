package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/jamesatitpong11/labflowadmin/internal/report"
)

func zapError(err error) zap.Field {
	return zap.Error(err)
}

type handlerError struct {
	message string
}

func (e *handlerError) Error() string {
	return e.message
}

// parseSelectedDate reads the optional selectedDate query param. Absent means
// "now"; a bare date is interpreted in Thailand local time.
func parseSelectedDate(r *http.Request) (time.Time, error) {
	value := r.URL.Query().Get("selectedDate")
	if value == "" {
		return time.Now(), nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	if parsed, err := time.ParseInLocation("2006-01-02", value, report.Bangkok); err == nil {
		return parsed, nil
	}
	return time.Time{}, &handlerError{message: "Invalid selectedDate"}
}

// parseYearMonth reads and validates the required year/month query params.
// Out-of-range months are rejected rather than overflow-normalized.
func parseYearMonth(r *http.Request) (int, int, error) {
	query := r.URL.Query()
	yearValue := query.Get("year")
	monthValue := query.Get("month")
	if yearValue == "" || monthValue == "" {
		return 0, 0, &handlerError{message: "Year and month are required"}
	}

	year, err := strconv.Atoi(yearValue)
	if err != nil || year < 1 {
		return 0, 0, &handlerError{message: "Invalid year"}
	}
	month, err := strconv.Atoi(monthValue)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, &handlerError{message: "Invalid month"}
	}
	return year, month, nil
}

func numericToFloat64(value pgtype.Numeric) float64 {
	if !value.Valid {
		return 0
	}
	f, err := value.Float64Value()
	if err == nil {
		return f.Float64
	}
	text, err := value.MarshalJSON()
	if err != nil {
		return 0
	}
	var out float64
	if _, err := fmt.Sscan(string(text), &out); err != nil {
		return 0
	}
	return out
}

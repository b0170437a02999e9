package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jamesatitpong11/labflowadmin/internal/report"
	"github.com/jamesatitpong11/labflowadmin/pkg/response"
)

const noDataTodayMessage = "วันนี้ยังไม่มีข้อมูลการตรวจ การลงทะเบียน หรือการขาย"

type activityEvent struct {
	ID      int64
	Action  string
	Patient string
	At      time.Time
}

// ActivityItem is one entry of the dashboard's recent-activity feed.
type ActivityItem struct {
	ID      int64  `json:"id"`
	Action  string `json:"action"`
	Patient string `json:"patient"`
	Time    string `json:"time"`
}

// RecentActivity returns the newest registrations, visits and orders merged
// into one feed. The stats endpoint and the live activity stream share it.
func (h *Handler) RecentActivity(ctx context.Context, now time.Time, limit int) ([]ActivityItem, error) {
	events, err := h.recentActivityEvents(ctx)
	if err != nil {
		return nil, err
	}
	return mergeActivity(events, now, limit), nil
}

func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reference, err := parseSelectedDate(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	kind := report.ParseRange(r.URL.Query().Get("dateRange"))
	start, end := report.ResolvePeriod(kind, reference)
	prevStart := start.Add(-end.Sub(start))
	prevEnd := start

	totalPatients, err := h.countRows(ctx, `select count(*) from patients`)
	if err != nil {
		h.Logger.Error("dashboard stats patient total failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}

	newPatients, err := h.countRows(ctx,
		`select count(*) from patients where created_at >= $1 and created_at < $2`, start, end)
	if err != nil {
		h.Logger.Error("dashboard stats new patients failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}

	periodVisits, err := h.countRows(ctx,
		`select count(*) from visits where created_at >= $1 and created_at < $2`, start, end)
	if err != nil {
		h.Logger.Error("dashboard stats visits failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}

	periodSales, err := h.sumSales(ctx, start, end)
	if err != nil {
		h.Logger.Error("dashboard stats sales failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}

	prevPatients, err := h.countRows(ctx,
		`select count(*) from patients where created_at >= $1 and created_at < $2`, prevStart, prevEnd)
	if err != nil {
		h.Logger.Error("dashboard stats previous patients failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}

	prevVisits, err := h.countRows(ctx,
		`select count(*) from visits where created_at >= $1 and created_at < $2`, prevStart, prevEnd)
	if err != nil {
		h.Logger.Error("dashboard stats previous visits failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}

	prevSales, err := h.sumSales(ctx, prevStart, prevEnd)
	if err != nil {
		h.Logger.Error("dashboard stats previous sales failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}

	activity, err := h.RecentActivity(ctx, time.Now(), 4)
	if err != nil {
		h.Logger.Error("dashboard stats activity failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}

	// hasDataToday is informational only; the frontend keys off noDataMessage.
	noDataMessage := ""
	if kind == report.RangeToday {
		periodOrders, err := h.countRows(ctx,
			`select count(*) from orders
			 where order_date >= $1 and order_date < $2
			   and status in ('process','completed')`, start, end)
		if err != nil {
			h.Logger.Error("dashboard stats order check failed", zapError(err))
			response.Error(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
			return
		}
		if periodOrders == 0 && newPatients == 0 && periodVisits == 0 {
			noDataMessage = noDataTodayMessage
		}
	}

	stats := map[string]any{
		"totalPatients": totalPatients,
		"newPatients":   newPatients,
		"todayVisits":   periodVisits,
		"todaySales":    periodSales,
		"changes": map[string]string{
			"patients": report.FormatChange(float64(newPatients), float64(prevPatients)),
			"visits":   report.FormatChange(float64(periodVisits), float64(prevVisits)),
			"sales":    report.FormatChange(periodSales, prevSales),
		},
		"recentActivity": activity,
		"dateRange": map[string]any{
			"start":         start.UTC().Format(time.RFC3339),
			"end":           end.UTC().Format(time.RFC3339),
			"range":         string(kind),
			"hasDataToday":  true,
			"noDataMessage": noDataMessage,
			"displayDate":   report.ThaiDate(start),
		},
	}

	response.Success(w, http.StatusOK, stats, "Dashboard stats retrieved successfully")
}

func (h *Handler) countRows(ctx context.Context, query string, args ...any) (int64, error) {
	var count int64
	if err := h.DB.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// sumSales totals order amounts in [start, end) across the sales statuses.
func (h *Handler) sumSales(ctx context.Context, start time.Time, end time.Time) (float64, error) {
	var total pgtype.Numeric
	err := h.DB.QueryRow(ctx, `
		select coalesce(sum(total_amount), 0)
		from orders
		where order_date >= $1
		  and order_date < $2
		  and status in ('process','completed')
	`, start, end).Scan(&total)
	if err != nil {
		return 0, err
	}
	return numericToFloat64(total), nil
}

func (h *Handler) recentActivityEvents(ctx context.Context) ([]activityEvent, error) {
	events := make([]activityEvent, 0, 15)

	rows, err := h.DB.Query(ctx, `
		select id, first_name, last_name, created_at
		from patients
		order by created_at desc
		limit 5
	`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var (
			id        int64
			firstName string
			lastName  string
			createdAt time.Time
		)
		if err := rows.Scan(&id, &firstName, &lastName, &createdAt); err != nil {
			rows.Close()
			return nil, err
		}
		events = append(events, activityEvent{
			ID:      id,
			Action:  "ผู้ป่วยใหม่ลงทะเบียน",
			Patient: firstName + " " + lastName,
			At:      createdAt,
		})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = h.DB.Query(ctx, `
		select v.id, v.status, v.patient_name, p.first_name, p.last_name, v.created_at
		from visits v
		join patients p on p.id = v.patient_id
		order by v.created_at desc
		limit 5
	`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var (
			id          int64
			status      string
			patientName string
			firstName   string
			lastName    string
			createdAt   time.Time
		)
		if err := rows.Scan(&id, &status, &patientName, &firstName, &lastName, &createdAt); err != nil {
			rows.Close()
			return nil, err
		}
		label := patientName
		if label == "" {
			label = firstName + " " + lastName
		}
		events = append(events, activityEvent{
			ID:      id,
			Action:  visitAction(status),
			Patient: label,
			At:      createdAt,
		})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = h.DB.Query(ctx, `
		select id, total_amount, status, order_date
		from orders
		order by order_date desc
		limit 5
	`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var (
			id        int64
			total     pgtype.Numeric
			status    string
			orderDate time.Time
		)
		if err := rows.Scan(&id, &total, &status, &orderDate); err != nil {
			rows.Close()
			return nil, err
		}
		action := "สร้างใบสั่งซื้อ"
		if status == "completed" {
			action = "ชำระเงินแล้ว"
		}
		events = append(events, activityEvent{
			ID:      id,
			Action:  action,
			Patient: "ยอดเงิน ฿" + report.FormatAmount(numericToFloat64(total)),
			At:      orderDate,
		})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func visitAction(status string) string {
	if status == "completed" {
		return "ตรวจเสร็จสิ้น"
	}
	return "เข้ารับการตรวจ"
}

// mergeActivity orders the combined feed newest first and keeps the top
// entries for the dashboard card.
func mergeActivity(events []activityEvent, now time.Time, limit int) []ActivityItem {
	sorted := make([]activityEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].At.After(sorted[j].At)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	items := make([]ActivityItem, 0, len(sorted))
	for _, event := range sorted {
		items = append(items, ActivityItem{
			ID:      event.ID,
			Action:  event.Action,
			Patient: event.Patient,
			Time:    report.TimeAgo(event.At, now),
		})
	}
	return items
}

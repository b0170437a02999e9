package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jamesatitpong11/labflowadmin/internal/report"
	"github.com/jamesatitpong11/labflowadmin/pkg/response"
)

// monthlyOrder is one paid order of the reporting month, with the visit's
// department already inferred. Orders without a linked visit count toward
// totals but carry no department; they never enter the department grouping.
type monthlyOrder struct {
	Date          time.Time
	Amount        float64
	Status        string
	PaymentMethod string
	HasVisit      bool
	Department    string
	Items         []report.LineItem
}

func (h *Handler) loadMonthlyOrders(ctx context.Context, year int, month int) ([]monthlyOrder, error) {
	start, end := report.MonthPeriod(year, month)

	rows, err := h.DB.Query(ctx, `
		select o.order_date, o.total_amount, o.status,
		       coalesce(o.payment_method, ''), o.lab_orders,
		       v.id, coalesce(v.department, ''), coalesce(v.patient_rights, '')
		from orders o
		left join visits v on v.id = o.visit_id
		where o.order_date >= $1 and o.order_date < $2
		  and o.status in ('process','completed')
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []monthlyOrder
	for rows.Next() {
		var (
			orderDate     time.Time
			amount        pgtype.Numeric
			status        string
			paymentMethod string
			labOrders     []byte
			visitID       *int64
			department    string
			patientRights string
		)
		if err := rows.Scan(&orderDate, &amount, &status, &paymentMethod, &labOrders, &visitID, &department, &patientRights); err != nil {
			return nil, err
		}
		order := monthlyOrder{
			Date:          orderDate,
			Amount:        numericToFloat64(amount),
			Status:        status,
			PaymentMethod: paymentMethod,
			Items:         report.ParseLabOrders(labOrders),
		}
		if visitID != nil {
			order.HasVisit = true
			order.Department = report.InferDepartment(department, patientRights)
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// monthlySalesSummary aggregates one month of paid orders for the sales
// report and its PDF export.
type monthlySalesSummary struct {
	Year              int
	Month             int
	TotalSales        float64
	TotalOrders       int64
	SalesByStatus     map[string]float64
	SalesByDepartment map[string]float64
	PaymentMethods    map[string]report.PaymentStat
	TopServices       []report.ServiceStat
	DailySales        []report.DayBucket
}

func summarizeMonthlySales(orders []monthlyOrder, year int, month int) monthlySalesSummary {
	summary := monthlySalesSummary{
		Year:              year,
		Month:             month,
		SalesByStatus:     make(map[string]float64),
		SalesByDepartment: make(map[string]float64),
	}

	payments := report.NewPaymentBreakdown()
	daily := report.NewDailyTotals(report.DaysInMonth(year, month))
	var items []report.LineItem

	for _, order := range orders {
		summary.TotalSales += order.Amount
		summary.TotalOrders++
		summary.SalesByStatus[order.Status] += order.Amount
		if order.HasVisit {
			summary.SalesByDepartment[order.Department] += order.Amount
		}
		payments.Add(order.PaymentMethod, order.Amount)
		daily.Add(order.Date, order.Amount)
		items = append(items, order.Items...)
	}

	summary.PaymentMethods = payments.Result(summary.TotalSales)
	summary.TopServices = report.TopServices(items, 5)
	summary.DailySales = daily.Buckets()
	return summary
}

func (h *Handler) MonthlySales(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	year, month, err := parseYearMonth(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	orders, err := h.loadMonthlyOrders(ctx, year, month)
	if err != nil {
		h.Logger.Error("monthly sales query failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to fetch monthly sales")
		return
	}
	summary := summarizeMonthlySales(orders, year, month)

	data := map[string]any{
		"totalSales":           summary.TotalSales,
		"totalOrders":          summary.TotalOrders,
		"salesByStatus":        summary.SalesByStatus,
		"salesByDepartment":    summary.SalesByDepartment,
		"salesByPaymentMethod": summary.PaymentMethods,
		"topServices":          summary.TopServices,
		"dailySales":           dailySalesBuckets(summary.DailySales),
		"month":                month,
		"year":                 year,
		"monthDisplay":         monthDisplay(month, year),
	}
	response.Success(w, http.StatusOK, data, "Monthly sales retrieved successfully")
}

func (h *Handler) DepartmentSales(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	year, month, err := parseYearMonth(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	department := r.URL.Query().Get("department")
	if department == "" {
		response.Error(w, http.StatusBadRequest, "Department is required")
		return
	}

	orders, err := h.loadMonthlyOrders(ctx, year, month)
	if err != nil {
		h.Logger.Error("department sales query failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to fetch department sales")
		return
	}

	var (
		totalSales  float64
		totalOrders int64
		items       []report.LineItem
	)
	payments := report.NewPaymentBreakdown()
	for _, order := range orders {
		if !order.HasVisit || order.Department != department {
			continue
		}
		totalSales += order.Amount
		totalOrders++
		payments.Add(order.PaymentMethod, order.Amount)
		items = append(items, order.Items...)
	}

	data := map[string]any{
		"department":     department,
		"totalSales":     totalSales,
		"totalOrders":    totalOrders,
		"paymentMethods": payments.Result(totalSales),
		"topServices":    report.TopServices(items, 5),
		"month":          month,
		"year":           year,
	}
	response.Success(w, http.StatusOK, data, "Department sales retrieved successfully")
}

func (h *Handler) MonthlyVisits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	year, month, err := parseYearMonth(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	start, end := report.MonthPeriod(year, month)

	rows, err := h.DB.Query(ctx, `
		select v.created_at, coalesce(v.department, ''), coalesce(v.patient_rights, '')
		from visits v
		where v.created_at >= $1 and v.created_at < $2
	`, start, end)
	if err != nil {
		h.Logger.Error("monthly visits query failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to fetch monthly visits")
		return
	}
	defer rows.Close()

	var totalVisits int64
	byDepartment := make(map[string]int64)
	daily := report.NewDailyTotals(report.DaysInMonth(year, month))
	for rows.Next() {
		var (
			createdAt     time.Time
			department    string
			patientRights string
		)
		if err := rows.Scan(&createdAt, &department, &patientRights); err != nil {
			h.Logger.Error("monthly visits scan failed", zapError(err))
			response.Error(w, http.StatusInternalServerError, "Failed to fetch monthly visits")
			return
		}
		totalVisits++
		byDepartment[report.InferDepartment(department, patientRights)]++
		daily.Add(createdAt, 1)
	}
	if err := rows.Err(); err != nil {
		h.Logger.Error("monthly visits rows failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to fetch monthly visits")
		return
	}

	data := map[string]any{
		"totalVisits": totalVisits,
		"totalCount":  totalVisits,
		"visitsByStatus": map[string]int64{
			"active":    totalVisits,
			"completed": 0,
		},
		"visitsByDepartment": byDepartment,
		"dailyVisits":        dailyVisitBuckets(daily.Buckets()),
		"month":              month,
		"year":               year,
		"monthDisplay":       monthDisplay(month, year),
	}
	response.Success(w, http.StatusOK, data, "Monthly visits retrieved successfully")
}

type dailySalesBucket struct {
	Day   string  `json:"day"`
	Sales float64 `json:"sales"`
}

type dailyVisitBucket struct {
	Day    string `json:"day"`
	Visits int64  `json:"visits"`
}

func dailySalesBuckets(buckets []report.DayBucket) []dailySalesBucket {
	out := make([]dailySalesBucket, len(buckets))
	for i, bucket := range buckets {
		out[i] = dailySalesBucket{Day: bucket.Day, Sales: bucket.Value}
	}
	return out
}

func dailyVisitBuckets(buckets []report.DayBucket) []dailyVisitBucket {
	out := make([]dailyVisitBucket, len(buckets))
	for i, bucket := range buckets {
		out[i] = dailyVisitBucket{Day: bucket.Day, Visits: int64(bucket.Value)}
	}
	return out
}

func monthDisplay(month int, year int) string {
	return fmt.Sprintf("%d/%d", month, year)
}

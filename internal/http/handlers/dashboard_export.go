package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"

	"github.com/phpdave11/gofpdf"

	"github.com/jamesatitpong11/labflowadmin/internal/report"
	"github.com/jamesatitpong11/labflowadmin/pkg/response"
)

// The PDF renderer sticks to the core fonts, which cannot encode Thai glyphs.
// Known Thai labels are mapped to English equivalents; anything else falls
// through unchanged.
var pdfLabels = map[string]string{
	report.MethodCash:            "Cash",
	report.MethodTransfer:        "Bank transfer",
	report.MethodNHSO:            "NHSO",
	report.MethodSocialSecurity:  "Social security",
	report.DepartmentProInterLab: "Pro Inter Lab Chaiya",
	report.DepartmentChaiyaRuam:  "Chaiya Ruam Phaet Clinic",
	report.UnspecifiedService:    "Unspecified",
	"process":                    "Processing",
	"completed":                  "Completed",
}

func pdfLabel(value string) string {
	if label, ok := pdfLabels[value]; ok {
		return label
	}
	return value
}

// MonthlySalesExport renders the monthly sales report as a downloadable PDF.
func (h *Handler) MonthlySalesExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	year, month, err := parseYearMonth(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	orders, err := h.loadMonthlyOrders(ctx, year, month)
	if err != nil {
		h.Logger.Error("monthly sales export query failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to export monthly sales")
		return
	}
	summary := summarizeMonthlySales(orders, year, month)

	buf, err := renderMonthlySalesPDF(summary)
	if err != nil {
		h.Logger.Error("monthly sales export render failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to export monthly sales")
		return
	}

	filename := fmt.Sprintf("monthly_sales_%04d_%02d.pdf", year, month)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func renderMonthlySalesPDF(summary monthlySalesSummary) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("Monthly Sales Report %d/%d", summary.Month, summary.Year), "", 1, "C", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, "Summary", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, fmt.Sprintf("Total sales: %.2f THB", summary.TotalSales), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Total orders: %d", summary.TotalOrders), "", 1, "L", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, "Sales by status", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, status := range sortedKeys(summary.SalesByStatus) {
		pdf.CellFormat(0, 5, fmt.Sprintf("%s: %.2f THB", pdfLabel(status), summary.SalesByStatus[status]), "", 1, "L", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, "Sales by department", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, department := range sortedKeys(summary.SalesByDepartment) {
		pdf.CellFormat(0, 5, fmt.Sprintf("%s: %.2f THB", pdfLabel(department), summary.SalesByDepartment[department]), "", 1, "L", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, "Payment methods", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, method := range []string{report.MethodCash, report.MethodTransfer, report.MethodNHSO, report.MethodSocialSecurity} {
		stat := summary.PaymentMethods[method]
		pdf.CellFormat(0, 5,
			fmt.Sprintf("%s: %.2f THB (%d orders, %s)", pdfLabel(method), stat.Amount, stat.Count, stat.Percentage),
			"", 1, "L", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, "Top services", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for i, service := range summary.TopServices {
		pdf.CellFormat(0, 5,
			fmt.Sprintf("%d. %s - %d orders, %.2f THB (avg %d)", i+1, pdfLabel(service.Name), service.Count, service.TotalAmount, service.AvgPrice),
			"", 1, "L", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, "Daily sales", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	for _, bucket := range summary.DailySales {
		if bucket.Value == 0 {
			continue
		}
		pdf.CellFormat(0, 4, fmt.Sprintf("Day %s: %.2f THB", bucket.Day, bucket.Value), "", 1, "L", false, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func sortedKeys(values map[string]float64) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

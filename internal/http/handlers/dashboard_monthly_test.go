package handlers

import (
	"testing"
	"time"

	"github.com/jamesatitpong11/labflowadmin/internal/report"
)

func TestSummarizeMonthlySales(t *testing.T) {
	orders := []monthlyOrder{
		{
			Date:          time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC),
			Amount:        500,
			Status:        "completed",
			PaymentMethod: report.MethodCash,
			HasVisit:      true,
			Department:    report.DepartmentChaiyaRuam,
			Items: []report.LineItem{
				{Name: "CBC", Price: 250, Quantity: 2},
			},
		},
		{
			Date:          time.Date(2024, time.June, 15, 11, 0, 0, 0, time.UTC),
			Amount:        300,
			Status:        "process",
			PaymentMethod: report.MethodSocialSecurity,
			HasVisit:      true,
			Department:    report.DepartmentNHSO,
			Items: []report.LineItem{
				{Name: "FBS", Price: 300, Quantity: 1},
			},
		},
		{
			Date:          time.Date(2024, time.June, 20, 9, 0, 0, 0, time.UTC),
			Amount:        200,
			Status:        "completed",
			PaymentMethod: report.MethodTransfer,
			HasVisit:      true,
			Department:    report.DepartmentChaiyaRuam,
			Items: []report.LineItem{
				{Name: "CBC", Price: 200, Quantity: 1},
			},
		},
	}

	summary := summarizeMonthlySales(orders, 2024, 6)

	if summary.TotalSales != 1000 {
		t.Fatalf("expected total sales 1000, got %v", summary.TotalSales)
	}
	if summary.TotalOrders != 3 {
		t.Fatalf("expected 3 orders, got %d", summary.TotalOrders)
	}
	if summary.SalesByStatus["completed"] != 700 || summary.SalesByStatus["process"] != 300 {
		t.Fatalf("unexpected status breakdown: %v", summary.SalesByStatus)
	}
	if summary.SalesByDepartment[report.DepartmentChaiyaRuam] != 700 {
		t.Fatalf("unexpected department breakdown: %v", summary.SalesByDepartment)
	}

	// Social security folds into the NHSO bucket.
	nhso := summary.PaymentMethods[report.MethodNHSO]
	if nhso.Amount != 300 || nhso.Count != 1 {
		t.Fatalf("unexpected NHSO bucket: %+v", nhso)
	}
	social := summary.PaymentMethods[report.MethodSocialSecurity]
	if social.Amount != 0 || social.Percentage != "0.0%" {
		t.Fatalf("unexpected social security bucket: %+v", social)
	}
	cash := summary.PaymentMethods[report.MethodCash]
	if cash.Percentage != "50.0%" {
		t.Fatalf("expected cash 50.0%%, got %s", cash.Percentage)
	}

	if len(summary.TopServices) != 2 {
		t.Fatalf("expected 2 services, got %d", len(summary.TopServices))
	}
	if summary.TopServices[0].Name != "CBC" || summary.TopServices[0].Count != 3 {
		t.Fatalf("unexpected top service: %+v", summary.TopServices[0])
	}

	if len(summary.DailySales) != 30 {
		t.Fatalf("expected 30 daily buckets, got %d", len(summary.DailySales))
	}
	// 2024-06-15T10:00Z and 11:00Z are both local day 15.
	if summary.DailySales[14].Value != 800 {
		t.Fatalf("expected 800 on day 15, got %v", summary.DailySales[14].Value)
	}
	if summary.DailySales[19].Value != 200 {
		t.Fatalf("expected 200 on day 20, got %v", summary.DailySales[19].Value)
	}
	if summary.DailySales[0].Value != 0 {
		t.Fatalf("expected zero on day 1, got %v", summary.DailySales[0].Value)
	}
}

func TestSummarizeMonthlySalesSkipsVisitlessOrdersInDepartments(t *testing.T) {
	orders := []monthlyOrder{
		{
			Date:          time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC),
			Amount:        400,
			Status:        "completed",
			PaymentMethod: report.MethodCash,
			HasVisit:      true,
			Department:    report.DepartmentChaiyaRuam,
		},
		{
			// Walk-in sale with no visit record: counted in every total,
			// absent from the department grouping.
			Date:          time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC),
			Amount:        250,
			Status:        "completed",
			PaymentMethod: report.MethodCash,
		},
	}

	summary := summarizeMonthlySales(orders, 2024, 6)

	if summary.TotalSales != 650 || summary.TotalOrders != 2 {
		t.Fatalf("expected totals 650/2, got %v/%d", summary.TotalSales, summary.TotalOrders)
	}
	if summary.DailySales[9].Value != 650 {
		t.Fatalf("expected 650 on day 10, got %v", summary.DailySales[9].Value)
	}
	if got := summary.SalesByDepartment[report.DepartmentChaiyaRuam]; got != 400 {
		t.Fatalf("expected department sum 400, got %v", got)
	}
	if len(summary.SalesByDepartment) != 1 {
		t.Fatalf("expected 1 department, got %v", summary.SalesByDepartment)
	}
	if summary.PaymentMethods[report.MethodCash].Amount != 650 {
		t.Fatalf("expected cash bucket 650, got %+v", summary.PaymentMethods[report.MethodCash])
	}
}

func TestSummarizeMonthlySalesEmpty(t *testing.T) {
	summary := summarizeMonthlySales(nil, 2024, 2)

	if summary.TotalSales != 0 || summary.TotalOrders != 0 {
		t.Fatalf("expected empty totals, got %+v", summary)
	}
	if len(summary.DailySales) != 29 {
		t.Fatalf("expected 29 buckets for a leap February, got %d", len(summary.DailySales))
	}
	for _, stat := range summary.PaymentMethods {
		if stat.Percentage != "0.0%" {
			t.Fatalf("expected 0.0%% on empty month, got %s", stat.Percentage)
		}
	}
	if len(summary.TopServices) != 0 {
		t.Fatalf("expected no services, got %d", len(summary.TopServices))
	}
}

func TestMonthDisplay(t *testing.T) {
	if got := monthDisplay(6, 2024); got != "6/2024" {
		t.Fatalf("expected 6/2024, got %s", got)
	}
	if got := monthDisplay(12, 2025); got != "12/2025" {
		t.Fatalf("expected 12/2025, got %s", got)
	}
}

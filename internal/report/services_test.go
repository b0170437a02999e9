package report

import (
	"testing"
)

func TestParseLabOrders(t *testing.T) {
	raw := []byte(`[
		{"testName":"CBC","price":150,"quantity":2},
		{"name":"Glucose","price":80},
		{"price":50},
		{"testName":"Lipid","quantity":0}
	]`)

	items := ParseLabOrders(raw)
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}
	if items[0].Name != "CBC" || items[0].Quantity != 2 || items[0].Price != 150 {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[1].Name != "Glucose" || items[1].Quantity != 1 {
		t.Fatalf("name fallback or default quantity broken: %+v", items[1])
	}
	if items[2].Name != UnspecifiedService {
		t.Fatalf("missing name should fall back to %q, got %q", UnspecifiedService, items[2].Name)
	}
	if items[3].Quantity != 1 {
		t.Fatalf("non-positive quantity should default to 1, got %d", items[3].Quantity)
	}

	if got := ParseLabOrders([]byte(`not json`)); got != nil {
		t.Fatalf("malformed column should yield no items, got %+v", got)
	}
	if got := ParseLabOrders(nil); got != nil {
		t.Fatalf("empty column should yield no items")
	}
}

func TestTopServices(t *testing.T) {
	items := []LineItem{
		{Name: "CBC", Price: 150, Quantity: 2},
		{Name: "Glucose", Price: 80, Quantity: 1},
		{Name: "CBC", Price: 150, Quantity: 1},
		{Name: "Lipid", Price: 300, Quantity: 1},
	}

	ranked := TopServices(items, 5)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 services, got %d", len(ranked))
	}
	if ranked[0].Name != "CBC" || ranked[0].Count != 3 {
		t.Fatalf("expected CBC first with count 3, got %+v", ranked[0])
	}
	if ranked[0].TotalAmount != 450 || ranked[0].AvgPrice != 150 {
		t.Fatalf("unexpected CBC totals: %+v", ranked[0])
	}
	if ranked[0].Percentage != "60.0" {
		t.Fatalf("expected 60.0, got %s", ranked[0].Percentage)
	}

	// Glucose and Lipid tie on count; input order breaks the tie.
	if ranked[1].Name != "Glucose" || ranked[2].Name != "Lipid" {
		t.Fatalf("tie order broken: %s then %s", ranked[1].Name, ranked[2].Name)
	}
}

func TestTopServicesTruncation(t *testing.T) {
	items := make([]LineItem, 0, 8)
	names := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	for i, name := range names {
		items = append(items, LineItem{Name: name, Price: 100, Quantity: int64(len(names) - i)})
	}

	ranked := TopServices(items, 5)
	if len(ranked) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Count > ranked[i-1].Count {
			t.Fatalf("not sorted descending at %d: %+v", i, ranked)
		}
	}
}

func TestTopServicesAvgPriceRounds(t *testing.T) {
	ranked := TopServices([]LineItem{
		{Name: "Culture", Price: 166.5, Quantity: 1},
		{Name: "Culture", Price: 166.6, Quantity: 1},
	}, 5)
	if len(ranked) != 1 {
		t.Fatalf("expected one service")
	}
	// 333.1 / 2 = 166.55 -> 167
	if ranked[0].AvgPrice != 167 {
		t.Fatalf("expected rounded avg 167, got %d", ranked[0].AvgPrice)
	}
}

func TestTopServicesEmpty(t *testing.T) {
	if got := TopServices(nil, 5); len(got) != 0 {
		t.Fatalf("expected empty ranking, got %+v", got)
	}
}

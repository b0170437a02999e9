package report

import (
	"encoding/json"
	"math"
	"sort"
)

// UnspecifiedService labels line items whose records carry no service name.
const UnspecifiedService = "ไม่ระบุ"

// LineItem is one lab order inside an order's line-item array.
type LineItem struct {
	Name     string
	Price    float64
	Quantity int64
}

// ParseLabOrders decodes an order's lab_orders jsonb column. Legacy documents
// name the service either testName or name and may omit price and quantity;
// a malformed column yields no items rather than an error.
func ParseLabOrders(raw []byte) []LineItem {
	if len(raw) == 0 {
		return nil
	}

	var entries []map[string]any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	items := make([]LineItem, 0, len(entries))
	for _, entry := range entries {
		item := LineItem{
			Name:     UnspecifiedService,
			Quantity: 1,
		}
		if name := stringField(entry, "testName"); name != "" {
			item.Name = name
		} else if name := stringField(entry, "name"); name != "" {
			item.Name = name
		}
		if price, ok := numberField(entry, "price"); ok {
			item.Price = price
		}
		if qty, ok := numberField(entry, "quantity"); ok && qty > 0 {
			item.Quantity = int64(qty)
		}
		items = append(items, item)
	}
	return items
}

// ServiceStat is one ranked service in a top-services listing.
type ServiceStat struct {
	Name        string  `json:"name"`
	Count       int64   `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
	AvgPrice    int64   `json:"avgPrice"`
	Percentage  string  `json:"percentage"`
}

// TopServices groups line items by service name, sums quantity and amount,
// and returns the most-ordered services. Sorting is descending by count with
// ties kept in first-seen order; the result never exceeds limit entries.
func TopServices(items []LineItem, limit int) []ServiceStat {
	type serviceTotals struct {
		count  int64
		amount float64
	}

	totals := make(map[string]*serviceTotals)
	order := make([]string, 0)
	var grandTotal int64

	for _, item := range items {
		entry := totals[item.Name]
		if entry == nil {
			entry = &serviceTotals{}
			totals[item.Name] = entry
			order = append(order, item.Name)
		}
		entry.count += item.Quantity
		entry.amount += item.Price * float64(item.Quantity)
		grandTotal += item.Quantity
	}

	ranked := make([]ServiceStat, 0, len(order))
	for _, name := range order {
		entry := totals[name]
		ranked = append(ranked, ServiceStat{
			Name:        name,
			Count:       entry.count,
			TotalAmount: entry.amount,
			AvgPrice:    int64(math.Round(entry.amount / float64(entry.count))),
			Percentage:  Percent(float64(entry.count), float64(grandTotal)),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func stringField(entry map[string]any, key string) string {
	value, _ := entry[key].(string)
	return value
}

func numberField(entry map[string]any, key string) (float64, bool) {
	switch value := entry[key].(type) {
	case float64:
		return value, true
	case json.Number:
		parsed, err := value.Float64()
		return parsed, err == nil
	default:
		return 0, false
	}
}

package report

// Payment method labels as recorded at checkout.
const (
	MethodCash           = "เงินสด"
	MethodTransfer       = "เงินโอน"
	MethodNHSO           = "สปสช."
	MethodSocialSecurity = "ประกันสังคม"
)

// paymentMethodOrder fixes the bucket set and its presentation order. The
// social-security bucket stays in the output even though normalization folds
// its orders into the NHSO bucket.
var paymentMethodOrder = []string{MethodCash, MethodTransfer, MethodNHSO, MethodSocialSecurity}

// PaymentStat is one payment-method bucket of a sales breakdown.
type PaymentStat struct {
	Amount     float64 `json:"amount"`
	Count      int64   `json:"count"`
	Percentage string  `json:"percentage"`
}

// PaymentBreakdown accumulates order amounts per payment method.
type PaymentBreakdown struct {
	amounts map[string]float64
	counts  map[string]int64
}

func NewPaymentBreakdown() *PaymentBreakdown {
	return &PaymentBreakdown{
		amounts: make(map[string]float64),
		counts:  make(map[string]int64),
	}
}

// Add records one order. Social security is normalized into the NHSO bucket;
// methods outside the known set are dropped from the breakdown (the order
// still counts toward the report's totals).
func (p *PaymentBreakdown) Add(method string, amount float64) {
	if method == "" {
		return
	}
	if method == MethodSocialSecurity {
		method = MethodNHSO
	}
	if !knownPaymentMethod(method) {
		return
	}
	p.amounts[method] += amount
	p.counts[method]++
}

// Result renders the fixed bucket set with percentage-of-total strings.
// A zero total reports "0.0%" across the board.
func (p *PaymentBreakdown) Result(totalSales float64) map[string]PaymentStat {
	out := make(map[string]PaymentStat, len(paymentMethodOrder))
	for _, method := range paymentMethodOrder {
		out[method] = PaymentStat{
			Amount:     p.amounts[method],
			Count:      p.counts[method],
			Percentage: Percent(p.amounts[method], totalSales) + "%",
		}
	}
	return out
}

func knownPaymentMethod(method string) bool {
	for _, known := range paymentMethodOrder {
		if method == known {
			return true
		}
	}
	return false
}

package report

import "testing"

func TestPaymentBreakdown(t *testing.T) {
	breakdown := NewPaymentBreakdown()
	breakdown.Add(MethodCash, 300)
	breakdown.Add(MethodCash, 200)
	breakdown.Add(MethodTransfer, 400)
	breakdown.Add(MethodSocialSecurity, 100) // folds into the NHSO bucket
	breakdown.Add("บัตรเครดิต", 999)          // unknown method, dropped
	breakdown.Add("", 50)

	result := breakdown.Result(1000)
	if len(result) != 4 {
		t.Fatalf("expected the fixed 4 buckets, got %d", len(result))
	}

	cash := result[MethodCash]
	if cash.Amount != 500 || cash.Count != 2 || cash.Percentage != "50.0%" {
		t.Fatalf("unexpected cash bucket: %+v", cash)
	}
	nhso := result[MethodNHSO]
	if nhso.Amount != 100 || nhso.Count != 1 {
		t.Fatalf("social security did not normalize into NHSO: %+v", nhso)
	}
	social := result[MethodSocialSecurity]
	if social.Amount != 0 || social.Count != 0 || social.Percentage != "0.0%" {
		t.Fatalf("social security bucket should stay present but empty: %+v", social)
	}
}

func TestPaymentBreakdownZeroTotal(t *testing.T) {
	result := NewPaymentBreakdown().Result(0)
	for method, stat := range result {
		if stat.Percentage != "0.0%" {
			t.Fatalf("%s: expected 0.0%% on zero total, got %s", method, stat.Percentage)
		}
	}
}

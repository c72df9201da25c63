package utils

import "testing"

func TestSplitCommissionIdentity(t *testing.T) {
	cases := []struct {
		price float64
		rate  float64
	}{
		{1000, 10},
		{99, 10},
		{0, 10},
		{1234.56, 12.5},
		{1, 0},
		{1, 100},
	}

	for _, tc := range cases {
		agency, commission := SplitCommission(tc.price, tc.rate)
		if got := RoundMoney(agency + commission); got != tc.price {
			t.Errorf("price=%v rate=%v: agency %v + commission %v = %v, want %v",
				tc.price, tc.rate, agency, commission, got, tc.price)
		}
		if commission < 0 || agency < 0 {
			t.Errorf("price=%v rate=%v: negative component agency=%v commission=%v",
				tc.price, tc.rate, agency, commission)
		}
	}
}

func TestSplitCommissionRoundsHalfUp(t *testing.T) {
	// 99 * 10% = 9.9, stays exact at 2 decimals
	agency, commission := SplitCommission(99, 10)
	if commission != 9.9 || agency != 89.1 {
		t.Fatalf("99 @ 10%%: got agency=%v commission=%v", agency, commission)
	}

	// 10.125 needs the half-up rule at the third decimal
	if got := RoundMoney(10.125); got != 10.13 {
		t.Fatalf("RoundMoney(10.125) = %v, want 10.13", got)
	}
	if got := RoundMoney(-10.125); got != -10.13 {
		t.Fatalf("RoundMoney(-10.125) = %v, want -10.13 (half away from zero)", got)
	}
}

func TestPerPersonDisplay(t *testing.T) {
	if got := PerPersonDisplay(900, 2); got != 450 {
		t.Fatalf("900/2 = %v, want 450", got)
	}
	if got := PerPersonDisplay(1000, 3); got != 333.33 {
		t.Fatalf("1000/3 = %v, want 333.33", got)
	}
	if got := PerPersonDisplay(900, 0); got != 0 {
		t.Fatalf("zero occupants must yield 0, got %v", got)
	}
}

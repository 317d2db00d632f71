package pool

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestToDisplayScalesAndDivides(t *testing.T) {
	// 5e9 base units at 9 decimals is 5 tokens; ratio 2 halves it.
	raw := decimal.NewFromInt(5_000_000_000)
	rate := decimal.NewFromInt(2)

	got := ToDisplay(raw, rate, 9)
	if !got.Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("expected 2.5, got %s", got)
	}

	// Rounding half away from zero at the target decimal count.
	got = ToDisplay(raw, decimal.NewFromInt(3), 9)
	if !got.Equal(decimal.RequireFromString("1.666666667")) {
		t.Errorf("expected 1.666666667, got %s", got)
	}
}

func TestToRawInvertsDisplay(t *testing.T) {
	display := decimal.RequireFromString("2.5")
	rate := decimal.NewFromInt(2)

	if got := ToRaw(display, rate, 9); !got.Equal(decimal.NewFromInt(5_000_000_000)) {
		t.Errorf("expected 5000000000, got %s", got)
	}
}

func TestZeroRateFallsBackToOne(t *testing.T) {
	raw := decimal.NewFromInt(42)

	if got := ToDisplay(raw, decimal.Zero, 9); !got.Equal(decimal.RequireFromString("0.000000042")) {
		t.Errorf("expected 0.000000042, got %s", got)
	}
	if got := ToRaw(raw, decimal.Zero, 9); !got.Equal(decimal.NewFromInt(42_000_000_000)) {
		t.Errorf("expected 42000000000, got %s", got)
	}
}

func TestRoundTripStableAfterFirstRounding(t *testing.T) {
	cases := []struct {
		raw      string
		rate     string
		decimals int32
	}{
		{"5000000000", "2", 9},
		{"1", "3", 9},
		{"123456789123456789", "7", 6},
		{"999999999", "0.5", 9},
	}
	for _, tc := range cases {
		raw := decimal.RequireFromString(tc.raw)
		rate := decimal.RequireFromString(tc.rate)

		display := ToDisplay(raw, rate, tc.decimals)
		again := ToDisplay(ToRaw(display, rate, tc.decimals), rate, tc.decimals)
		if !again.Equal(display) {
			t.Errorf("round trip drifted for raw=%s rate=%s: %s != %s", tc.raw, tc.rate, again, display)
		}
	}
}

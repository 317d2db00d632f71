package webserver

import "testing"

func TestDecimalColumn(t *testing.T) {
	// Columns hold both base-unit integers and display-unit fractions; the
	// helper must read either form as-is.
	for _, tc := range []struct {
		col  string
		want string
	}{
		{"5000000000", "5000000000"},
		{"2.5", "2.5"},
		{"0", "0"},
	} {
		if got := decimalColumn(tc.col).String(); got != tc.want {
			t.Errorf("decimalColumn(%q) = %s, want %s", tc.col, got, tc.want)
		}
	}

	if got := decimalColumn("garbage"); !got.IsZero() {
		t.Errorf("decimalColumn(garbage) = %s, want 0", got)
	}
}

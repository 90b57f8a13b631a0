package domain

import (
	"math"
	"strings"
	"testing"
)

func TestFormatBRL(t *testing.T) {

	cases := []struct {
		in   float64
		want string
	}{
		{800, "R$800,00"},
		{75.50, "R$75,50"},
		{1234.56, "R$1.234,56"},
		{0, "R$0,00"},
	}

	for _, c := range cases {
		if got := FormatBRL(c.in); got != c.want {
			t.Errorf("FormatBRL(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatBRL_NonFiniteFallsBackToZero(t *testing.T) {

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		got := FormatBRL(v)
		if !strings.Contains(got, "0,00") {
			t.Errorf("FormatBRL(%v) = %q, want zero fallback", v, got)
		}
	}
}

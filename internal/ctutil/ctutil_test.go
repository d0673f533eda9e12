package ctutil_test

import (
	"testing"

	"github.com/ctkcrypto/chachapoly/internal/ctutil"
)

func TestEqual(t *testing.T) {
	tt := map[string]struct {
		a, b []byte
		want bool
	}{
		"equal":          {a: []byte{1, 2, 3}, b: []byte{1, 2, 3}, want: true},
		"different byte": {a: []byte{1, 2, 3}, b: []byte{1, 2, 4}, want: false},
		"different len":  {a: []byte{1, 2, 3}, b: []byte{1, 2}, want: false},
		"both empty":     {a: []byte{}, b: []byte{}, want: true},
	}

	for name, tc := range tt {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := ctutil.Equal(tc.a, tc.b); got != tc.want {
				t.Errorf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestEqU32(t *testing.T) {
	if ctutil.EqU32(5, 5) != 1 {
		t.Error("expected equal values to yield 1")
	}
	if ctutil.EqU32(5, 6) != 0 {
		t.Error("expected unequal values to yield 0")
	}
}

func TestGtU32(t *testing.T) {
	if ctutil.GtU32(5, 3) != 1 {
		t.Error("expected 5 > 3 to yield 1")
	}
	if ctutil.GtU32(3, 5) != 0 {
		t.Error("expected 3 > 5 to yield 0")
	}
	if ctutil.GtU32(5, 5) != 0 {
		t.Error("expected 5 > 5 to yield 0")
	}
}

func TestSelectU32(t *testing.T) {
	if got := ctutil.SelectU32(1, 10, 20); got != 10 {
		t.Errorf("cond=1: want 10, got %d", got)
	}
	if got := ctutil.SelectU32(0, 10, 20); got != 20 {
		t.Errorf("cond=0: want 20, got %d", got)
	}
}

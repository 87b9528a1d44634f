package postgres

import "testing"

func TestClampLimit(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{-5, 100},
		{0, 100},
		{1, 1},
		{100, 100},
		{500, 100},
	}
	for _, c := range cases {
		if got := clampLimit(c.in); got != c.want {
			t.Errorf("clampLimit(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

// Query offsets come straight from the URL, so negatives must be
// flattened before they reach OFFSET.
func TestClampOffset(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{-1, 0},
		{0, 0},
		{25, 25},
	}
	for _, c := range cases {
		if got := clampOffset(c.in); got != c.want {
			t.Errorf("clampOffset(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

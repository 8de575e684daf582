package promptcore

import "testing"

func TestWritePositionEmpty(t *testing.T) {
	cases := []struct {
		p    WritePosition
		want bool
	}{
		{WritePosition{Width: 5, Height: 5}, false},
		{WritePosition{Width: 0, Height: 5}, true},
		{WritePosition{Width: 5, Height: -1}, true},
		{WritePosition{Width: -1, Height: -1}, true},
	}
	for _, c := range cases {
		if got := c.p.Empty(); got != c.want {
			t.Fatalf("Empty(%+v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestWritePositionContains(t *testing.T) {
	p := WritePosition{X: 2, Y: 3, Width: 4, Height: 2}
	if !p.Contains(2, 3) {
		t.Fatalf("expected origin to be contained")
	}
	if !p.Contains(5, 4) {
		t.Fatalf("expected (5,4) to be contained")
	}
	if p.Contains(6, 3) {
		t.Fatalf("expected (6,3) to be outside (width exhausted)")
	}
	if p.Contains(2, 5) {
		t.Fatalf("expected (2,5) to be outside (height exhausted)")
	}
}

func TestWritePositionContainsEmptyAlwaysFalse(t *testing.T) {
	p := WritePosition{X: 0, Y: 0, Width: 0, Height: 10}
	if p.Contains(0, 0) {
		t.Fatalf("empty region must never contain anything")
	}
}

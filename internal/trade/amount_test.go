package trade

import (
	"errors"
	"testing"
)

func TestResolveBuyAmount(t *testing.T) {
	cases := []struct {
		in   string
		want uint64
	}{
		{"0.01", 10_000_000},
		{"1", 1_000_000_000},
		{"0", 0},
		{"2.5", 2_500_000_000},
		{"0.000000001", 1},
		{"0.0000000009", 0}, // sub-lamport truncates to zero
		{" 0.25 ", 250_000_000},
	}
	for _, c := range cases {
		got, err := ResolveBuyAmount(c.in)
		if err != nil {
			t.Fatalf("ResolveBuyAmount(%q) returned error: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ResolveBuyAmount(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestResolveBuyAmountInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3", "-0.5"} {
		if _, err := ResolveBuyAmount(in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("ResolveBuyAmount(%q): expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestResolveSellAmount(t *testing.T) {
	cases := []struct {
		balance uint64
		percent uint64
		want    uint64
	}{
		{1000, 50, 500},
		{1000, 100, 1000},
		{3, 50, 1}, // floor
		{0, 100, 0},
		{0, 50, 0},
	}
	for _, c := range cases {
		got, err := ResolveSellAmount(c.balance, c.percent)
		if err != nil {
			t.Fatalf("ResolveSellAmount(%d, %d) returned error: %v", c.balance, c.percent, err)
		}
		if got != c.want {
			t.Fatalf("ResolveSellAmount(%d, %d) = %d, want %d", c.balance, c.percent, got, c.want)
		}
	}
}

func TestResolveSellAmountNeverExceedsBalance(t *testing.T) {
	for _, balance := range []uint64{0, 1, 7, 999, 123_456_789} {
		got, err := ResolveSellAmount(balance, 100)
		if err != nil {
			t.Fatalf("ResolveSellAmount(%d, 100) returned error: %v", balance, err)
		}
		if got > balance {
			t.Fatalf("ResolveSellAmount(%d, 100) = %d exceeds balance", balance, got)
		}
	}
}

func TestResolveSellAmountRejectsOtherPercents(t *testing.T) {
	for _, percent := range []uint64{0, 1, 49, 51, 99, 101, 200} {
		if _, err := ResolveSellAmount(100, percent); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("ResolveSellAmount(100, %d): expected ErrInvalidInput, got %v", percent, err)
		}
	}
}

package otpcode

import (
	"strconv"
	"testing"
)

func TestNumericGenerateWidth(t *testing.T) {
	gen := NewNumeric()

	for range 1000 {
		code := gen.Generate()

		if len(code) != Digits {
			t.Fatalf("code %q has width %d, want %d", code, len(code), Digits)
		}

		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric: %v", code, err)
		}

		if n < 100000 || n > 999999 {
			t.Fatalf("code %d out of fixed-width range", n)
		}
	}
}

func TestNumericGenerateVaries(t *testing.T) {
	gen := NewNumeric()

	seen := map[string]struct{}{}
	for range 50 {
		seen[gen.Generate()] = struct{}{}
	}

	if len(seen) < 2 {
		t.Fatal("generator returned a constant code")
	}
}

package entity

import "testing"

func TestDestinationSingle(t *testing.T) {
	d := NewDestination("0912345678")

	if d.Primary() != "0912345678" {
		t.Fatalf("primary = %q", d.Primary())
	}
	if d.IsEmpty() {
		t.Fatal("single destination reported empty")
	}
	if d.String() != "0912345678" {
		t.Fatalf("string = %q", d.String())
	}
}

func TestDestinationBatchDropsEmpties(t *testing.T) {
	d := NewBatchDestination([]string{"0912345678", "", "0987654321"})

	if d.Primary() != "0912345678" {
		t.Fatalf("primary = %q", d.Primary())
	}
	if d.String() != "0912345678,0987654321" {
		t.Fatalf("string = %q", d.String())
	}
}

func TestDestinationEmpty(t *testing.T) {
	d := NewBatchDestination(nil)

	if !d.IsEmpty() {
		t.Fatal("empty destination not reported empty")
	}
	if d.Primary() != "" {
		t.Fatalf("primary = %q, want empty", d.Primary())
	}
}

func TestDestinationRoundTrip(t *testing.T) {
	d := DestinationFromString("0912345678,0987654321")

	if d.String() != "0912345678,0987654321" {
		t.Fatalf("string = %q", d.String())
	}
	if DestinationFromString("").IsEmpty() != true {
		t.Fatal("parsing empty string yielded recipients")
	}
}

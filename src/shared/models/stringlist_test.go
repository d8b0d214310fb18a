package models

import "testing"

func TestStringListRoundTrip(t *testing.T) {
	l := StringList{"black", "backpack"}
	v, err := l.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var got StringList
	if err := got.Scan(v); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 2 || got[0] != "black" || got[1] != "backpack" {
		t.Errorf("round trip = %v", got)
	}
}

func TestStringListScanNil(t *testing.T) {
	var l StringList
	if err := l.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	if l != nil {
		t.Errorf("expected nil list, got %v", l)
	}
}

func TestStringListNilValue(t *testing.T) {
	var l StringList
	v, err := l.Value()
	if err != nil || v != "[]" {
		t.Errorf("Value() = %v, %v; want \"[]\"", v, err)
	}
}

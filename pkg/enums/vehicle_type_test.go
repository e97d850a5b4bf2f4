package enums

import "testing"

func TestParseVehicleType(t *testing.T) {
	t.Parallel()

	got, err := ParseVehicleType("flatbed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != VehicleTypeFlatbed {
		t.Fatalf("unexpected vehicle type %s", got)
	}

	if _, err := ParseVehicleType("hovercraft"); err == nil {
		t.Fatal("expected error for unknown vehicle type")
	}
}

func TestVehicleTypeLabelFallsBackToCode(t *testing.T) {
	t.Parallel()

	if label := VehicleTypeCraneTruck.Label(); label != "Crane truck" {
		t.Fatalf("unexpected label %q", label)
	}
	if label := VehicleType("weird").Label(); label != "weird" {
		t.Fatalf("expected raw code fallback, got %q", label)
	}
}

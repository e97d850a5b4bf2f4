package cart

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/buildmat/buildmat-backend/internal/allocation"
	"github.com/buildmat/buildmat-backend/pkg/enums"
	"github.com/buildmat/buildmat-backend/pkg/types"
)

func upgradeDefaults() allocation.SlotDefaults {
	return allocation.SlotDefaults{
		DeliveryTime: "09:00",
		VehicleType:  enums.VehicleTypeVan,
	}
}

func TestDecodeItemsUpgradesLegacyRecord(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	legacy := []byte(`[{
		"product": {"id": "` + productID.String() + `", "name": "Rebar 12mm", "type": "steel", "unit": "piece"},
		"quantity": "250",
		"delivery_date": "2025-04-01",
		"note": "cut to 6m"
	}]`)

	items, err := decodeItems(legacy, upgradeDefaults())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d", len(items))
	}

	item := items[0]
	if !item.Ledger.TotalQuantity.Equal(dec("250")) {
		t.Fatalf("expected total 250, got %s", item.Ledger.TotalQuantity)
	}
	if len(item.Ledger.Slots) != 1 {
		t.Fatalf("expected synthesized single slot, got %d", len(item.Ledger.Slots))
	}

	slot := item.Ledger.Slots[0]
	if !slot.Quantity.Equal(dec("250")) {
		t.Fatalf("expected slot to cover full quantity, got %s", slot.Quantity)
	}
	if slot.DeliveryDate != "2025-04-01" {
		t.Fatalf("expected legacy date carried over, got %q", slot.DeliveryDate)
	}
	if slot.DeliveryTime != "09:00" {
		t.Fatalf("expected default time, got %q", slot.DeliveryTime)
	}
	if slot.ID == uuid.Nil {
		t.Fatal("expected generated slot id")
	}
	if item.Note != "cut to 6m" {
		t.Fatalf("expected note preserved, got %q", item.Note)
	}
}

func TestDecodeItemsRoundTripsCurrentRecords(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	ledger := allocation.NewLedger(dec("10"), upgradeDefaults())
	ledger.AddSlot(upgradeDefaults())

	original := []Item{{
		Product: types.ProductSnapshot{ID: productID, Name: "Sand 0-4mm", Type: "aggregate", Unit: enums.ProductUnitTon},
		Ledger:  ledger,
	}}
	raw, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	items, err := decodeItems(raw, upgradeDefaults())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || len(items[0].Ledger.Slots) != 2 {
		t.Fatalf("expected ledger to survive intact, got %+v", items)
	}
	if items[0].Ledger.Slots[0].ID != ledger.Slots[0].ID {
		t.Fatal("slot identity must be stable across persistence")
	}
}

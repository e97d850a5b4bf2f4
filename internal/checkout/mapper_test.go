package checkout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/buildmat/buildmat-backend/internal/allocation"
	"github.com/buildmat/buildmat-backend/internal/cart"
	"github.com/buildmat/buildmat-backend/pkg/enums"
	"github.com/buildmat/buildmat-backend/pkg/types"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBuildSubmissionMapsItemsAndSlots(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	ledger := allocation.NewLedger(dec("10"), allocation.SlotDefaults{
		DeliveryDate: "2025-03-01",
		DeliveryTime: "08:00",
		VehicleType:  enums.VehicleTypeDumpTruck,
	})
	six := dec("6")
	if err := ledger.UpdateSlot(ledger.Slots[0].ID, allocation.SlotPatch{Quantity: &six}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := ledger.AddSlot(allocation.SlotDefaults{DeliveryDate: "2025-03-02", DeliveryTime: "10:00", VehicleType: enums.VehicleTypeVan})
	four := dec("4")
	if err := ledger.UpdateSlot(second.ID, allocation.SlotPatch{Quantity: &four}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items := []cart.Item{{
		Product: types.ProductSnapshot{ID: productID, Name: "Ready-mix C25", Type: "concrete", Unit: enums.ProductUnitCubicMeter},
		Note:    "pump truck access from north gate",
		Ledger:  ledger,
	}}
	form := OrderForm{ProjectID: "prj-7", DeliveryAddress: "12 Dockside Rd", ContactPhone: "+15550100"}

	sub := BuildSubmission(items, form)

	if sub.ProjectID != "prj-7" || sub.DeliveryAddress != "12 Dockside Rd" {
		t.Fatalf("order-level fields must pass through, got %+v", sub)
	}
	if len(sub.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(sub.Items))
	}

	item := sub.Items[0]
	if item.ProductID != productID {
		t.Fatalf("unexpected product id %s", item.ProductID)
	}
	if !item.Quantity.Equal(dec("10")) {
		t.Fatalf("item quantity must be the ledger total, got %s", item.Quantity)
	}
	if item.CustomNote != "pump truck access from north gate" {
		t.Fatalf("unexpected note %q", item.CustomNote)
	}
	if len(item.Slots) != 2 {
		t.Fatalf("expected two slots, got %d", len(item.Slots))
	}
	if item.Slots[0].Date != "2025-03-01" || !item.Slots[0].Quantity.Equal(dec("6")) {
		t.Fatalf("unexpected first slot %+v", item.Slots[0])
	}
	if item.Slots[1].VehicleType != "van" {
		t.Fatalf("unexpected vehicle %q", item.Slots[1].VehicleType)
	}
}

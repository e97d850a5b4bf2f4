package schedule

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

func scheduledDefaults() allocation.SlotDefaults {
	return allocation.SlotDefaults{
		DeliveryDate: "2025-03-01",
		DeliveryTime: "08:00",
		VehicleType:  enums.VehicleTypeFlatbed,
	}
}

func lineItem(total string, defaults allocation.SlotDefaults) cart.Item {
	return cart.Item{
		Product: types.ProductSnapshot{ID: uuid.New(), Name: "Gravel 8-16mm", Type: "aggregate", Unit: enums.ProductUnitTon},
		Ledger:  allocation.NewLedger(dec(total), defaults),
	}
}

func issueKinds(issues []Issue) map[enums.AllocationIssueKind]bool {
	kinds := map[enums.AllocationIssueKind]bool{}
	for _, issue := range issues {
		kinds[issue.Kind] = true
	}
	return kinds
}

func TestValidateBalancedCompleteCartPasses(t *testing.T) {
	t.Parallel()

	items := []cart.Item{lineItem("12", scheduledDefaults())}
	res := Validate(items, Requirements{RequireTime: true, RequireVehicle: true})

	if !res.OK {
		t.Fatalf("expected valid cart, got issues %v", res.Issues)
	}
}

func TestValidateReportsOverAllocation(t *testing.T) {
	t.Parallel()

	item := lineItem("5", scheduledDefaults())
	item.Ledger.AddSlot(scheduledDefaults()) // 5 + 1 = over by 1

	res := Validate([]cart.Item{item}, Requirements{})
	if res.OK {
		t.Fatal("expected invalid cart")
	}

	issues := res.Issues[item.Product.ID]
	kinds := issueKinds(issues)
	if !kinds[enums.AllocationIssueOverAllocated] {
		t.Fatalf("expected over-allocation issue, got %v", issues)
	}
	for _, issue := range issues {
		if issue.Kind == enums.AllocationIssueOverAllocated {
			if issue.Remaining == nil || !issue.Remaining.Equal(dec("1")) {
				t.Fatalf("expected over-by remainder 1, got %+v", issue.Remaining)
			}
			if issue.Unit != enums.ProductUnitTon {
				t.Fatalf("expected unit carried for display, got %s", issue.Unit)
			}
		}
	}
}

func TestValidateReportsUnallocatedRemainder(t *testing.T) {
	t.Parallel()

	item := lineItem("10", scheduledDefaults())
	half := dec("4")
	if err := item.Ledger.UpdateSlot(item.Ledger.Slots[0].ID, allocation.SlotPatch{Quantity: &half}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := Validate([]cart.Item{item}, Requirements{})
	issues := res.Issues[item.Product.ID]
	kinds := issueKinds(issues)
	if !kinds[enums.AllocationIssueUnallocated] {
		t.Fatalf("expected unallocated issue, got %v", issues)
	}
}

func TestValidateReportsBothIssueKindsAtOnce(t *testing.T) {
	t.Parallel()

	// over-allocated AND the new slot has no date: both must surface,
	// neither may overwrite the other
	item := lineItem("5", scheduledDefaults())
	item.Ledger.AddSlot(allocation.SlotDefaults{})

	res := Validate([]cart.Item{item}, Requirements{})
	issues := res.Issues[item.Product.ID]
	if len(issues) != 2 {
		t.Fatalf("expected two issues, got %v", issues)
	}
	kinds := issueKinds(issues)
	if !kinds[enums.AllocationIssueOverAllocated] || !kinds[enums.AllocationIssueIncompleteFields] {
		t.Fatalf("expected both issue kinds, got %v", issues)
	}
}

func TestValidateFieldRequirementsFollowFlow(t *testing.T) {
	t.Parallel()

	defaults := allocation.SlotDefaults{DeliveryDate: "2025-03-01"} // no time, no vehicle
	item := lineItem("5", defaults)

	if res := Validate([]cart.Item{item}, Requirements{}); !res.OK {
		t.Fatalf("date-only flow should pass, got %v", res.Issues)
	}

	res := Validate([]cart.Item{item}, Requirements{RequireTime: true})
	if res.OK {
		t.Fatal("expected failure when flow requires a time")
	}
	kinds := issueKinds(res.Issues[item.Product.ID])
	if !kinds[enums.AllocationIssueIncompleteFields] {
		t.Fatalf("expected incomplete-fields issue, got %v", res.Issues)
	}

	res = Validate([]cart.Item{item}, Requirements{RequireVehicle: true})
	if res.OK {
		t.Fatal("expected failure when flow requires a vehicle")
	}
}

func TestValidateFlagsDegenerateTotal(t *testing.T) {
	t.Parallel()

	item := lineItem("0", scheduledDefaults())

	res := Validate([]cart.Item{item}, Requirements{})
	kinds := issueKinds(res.Issues[item.Product.ID])
	if !kinds[enums.AllocationIssueDegenerateTotal] {
		t.Fatalf("expected degenerate-total issue, got %v", res.Issues)
	}
}

func TestValidateEmptyCartIsOK(t *testing.T) {
	t.Parallel()

	if res := Validate(nil, Requirements{}); !res.OK {
		t.Fatalf("empty cart must validate, got %v", res.Issues)
	}
}

// Package schedule gates the wizard's scheduling step and derives the
// date/time review view. Both halves are pure: they read ledgers and return
// data, never mutating and never throwing for expected states like an
// unbalanced allocation.
package schedule

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/buildmat/buildmat-backend/internal/allocation"
	"github.com/buildmat/buildmat-backend/internal/cart"
	"github.com/buildmat/buildmat-backend/pkg/enums"
)

// Requirements selects which slot fields the current flow makes mandatory.
// Date is always required; time and vehicle vary per wizard variant.
type Requirements struct {
	RequireTime    bool
	RequireVehicle bool
}

// Issue is one reason a line item cannot advance past the scheduling step.
type Issue struct {
	Kind      enums.AllocationIssueKind `json:"kind"`
	Message   string                    `json:"message"`
	Remaining *decimal.Decimal          `json:"remaining,omitempty"`
	Unit      enums.ProductUnit         `json:"unit,omitempty"`
}

// Result is the outcome of validating a whole cart. Issues are keyed by
// product id. A single item can carry several issue kinds at once: an
// allocation imbalance never hides missing slot fields, or vice versa.
type Result struct {
	OK     bool                  `json:"ok"`
	Issues map[uuid.UUID][]Issue `json:"issues,omitempty"`
}

// Validate checks every line item for allocation balance and slot field
// completeness.
func Validate(items []cart.Item, req Requirements) Result {
	issues := map[uuid.UUID][]Issue{}

	for _, item := range items {
		var itemIssues []Issue

		if item.Ledger.TotalQuantity.IsZero() {
			itemIssues = append(itemIssues, Issue{
				Kind:    enums.AllocationIssueDegenerateTotal,
				Message: "set a quantity before scheduling deliveries",
				Unit:    item.Product.Unit,
			})
		} else if status := item.Ledger.Status(); !status.IsBalanced {
			if status.Remaining.IsPositive() {
				remaining := status.Remaining
				itemIssues = append(itemIssues, Issue{
					Kind:      enums.AllocationIssueUnallocated,
					Message:   fmt.Sprintf("%s %s not scheduled for delivery yet", remaining, item.Product.Unit),
					Remaining: &remaining,
					Unit:      item.Product.Unit,
				})
			} else {
				over := status.Remaining.Abs()
				itemIssues = append(itemIssues, Issue{
					Kind:      enums.AllocationIssueOverAllocated,
					Message:   fmt.Sprintf("delivery slots exceed the ordered quantity by %s %s", over, item.Product.Unit),
					Remaining: &over,
					Unit:      item.Product.Unit,
				})
			}
		}

		if hasIncompleteSlot(item.Ledger, req) {
			itemIssues = append(itemIssues, Issue{
				Kind:    enums.AllocationIssueIncompleteFields,
				Message: "one or more delivery slots are missing required fields",
				Unit:    item.Product.Unit,
			})
		}

		if len(itemIssues) > 0 {
			issues[item.Product.ID] = itemIssues
		}
	}

	return Result{OK: len(issues) == 0, Issues: issues}
}

func hasIncompleteSlot(ledger allocation.Ledger, req Requirements) bool {
	for _, slot := range ledger.Slots {
		if slot.DeliveryDate == "" {
			return true
		}
		if req.RequireTime && slot.DeliveryTime == "" {
			return true
		}
		if req.RequireVehicle && slot.VehicleType == "" {
			return true
		}
	}
	return false
}

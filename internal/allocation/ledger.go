// Package allocation implements the delivery-slot ledger: the per-line-item
// split of an ordered quantity across one or more delivery events, with
// proportional rescaling when the total changes and an epsilon-tolerant
// balance check.
package allocation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/buildmat/buildmat-backend/pkg/enums"
	pkgerrors "github.com/buildmat/buildmat-backend/pkg/errors"
)

// Epsilon is the absolute tolerance for the balance check. Quantities are
// rounded to two decimal places on every rescale, so sums can drift by less
// than a cent-equivalent; anything below this is considered balanced.
var Epsilon = decimal.New(1, -2) // 0.01

// quantityScale is the number of decimal places quantities are rounded to at
// the point of rescale.
const quantityScale = 2

// Slot is one scheduled delivery event carrying a portion of a line item's
// total quantity. The ID is generated once at creation and never reused;
// slots are edited and removed by identity, not by position.
type Slot struct {
	ID           uuid.UUID         `json:"id"`
	Quantity     decimal.Decimal   `json:"quantity"`
	DeliveryDate string            `json:"delivery_date,omitempty"` // ISO YYYY-MM-DD, empty until set
	DeliveryTime string            `json:"delivery_time,omitempty"` // 24h HH:mm
	VehicleType  enums.VehicleType `json:"vehicle_type,omitempty"`
}

// SlotDefaults seeds newly created slots. Supplied by configuration, not
// hard-coded, so the engine is reusable across markets.
type SlotDefaults struct {
	DeliveryDate string
	DeliveryTime string
	VehicleType  enums.VehicleType
}

// Ledger owns the slot list and the authoritative total quantity for one
// line item. The sum invariant (slot quantities add up to the total within
// Epsilon) is allowed to break transiently mid-edit; the validator blocks
// progression while it does.
type Ledger struct {
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	Slots         []Slot          `json:"slots"`
}

// Status is the balance summary for a ledger.
type Status struct {
	Allocated  decimal.Decimal
	Remaining  decimal.Decimal
	Percentage float64
	IsBalanced bool
}

// SlotPatch carries a partial slot edit. Nil fields are left untouched.
type SlotPatch struct {
	Quantity     *decimal.Decimal
	DeliveryDate *string
	DeliveryTime *string
	VehicleType  *enums.VehicleType
}

// NewLedger builds a ledger with a single default slot covering the full
// quantity.
func NewLedger(total decimal.Decimal, defaults SlotDefaults) Ledger {
	return Ledger{
		TotalQuantity: total,
		Slots: []Slot{
			{
				ID:           uuid.New(),
				Quantity:     total,
				DeliveryDate: defaults.DeliveryDate,
				DeliveryTime: defaults.DeliveryTime,
				VehicleType:  defaults.VehicleType,
			},
		},
	}
}

// Allocated returns the sum of all slot quantities.
func (l *Ledger) Allocated() decimal.Decimal {
	sum := decimal.Zero
	for _, slot := range l.Slots {
		sum = sum.Add(slot.Quantity)
	}
	return sum
}

// Status computes the balance summary.
func (l *Ledger) Status() Status {
	allocated := l.Allocated()
	remaining := l.TotalQuantity.Sub(allocated)

	percentage := 0.0
	if !l.TotalQuantity.IsZero() {
		pct, _ := allocated.Div(l.TotalQuantity).Mul(decimal.NewFromInt(100)).Float64()
		percentage = pct
	}

	return Status{
		Allocated:  allocated,
		Remaining:  remaining,
		Percentage: percentage,
		IsBalanced: remaining.Abs().LessThan(Epsilon),
	}
}

// SetTotalQuantity changes the line item's total and rescales every slot
// proportionally, preserving the user's chosen split (a 60/40 spread across
// two delivery days stays 60/40). Quantities are rounded to two decimal
// places afterwards.
//
// When the previous total is zero there is no proportion to preserve, so the
// new total is distributed evenly across the existing slots, with the last
// slot absorbing the rounding remainder.
func (l *Ledger) SetTotalQuantity(newTotal decimal.Decimal) error {
	if newTotal.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "total quantity cannot be negative")
	}

	oldTotal := l.TotalQuantity
	if oldTotal.IsZero() {
		l.distributeEvenly(newTotal)
		l.TotalQuantity = newTotal
		return nil
	}

	ratio := newTotal.Div(oldTotal)
	for i := range l.Slots {
		l.Slots[i].Quantity = l.Slots[i].Quantity.Mul(ratio).Round(quantityScale)
	}
	l.TotalQuantity = newTotal
	return nil
}

func (l *Ledger) distributeEvenly(total decimal.Decimal) {
	n := len(l.Slots)
	if n == 0 {
		return
	}
	share := total.Div(decimal.NewFromInt(int64(n))).Round(quantityScale)
	running := decimal.Zero
	for i := range l.Slots[:n-1] {
		l.Slots[i].Quantity = share
		running = running.Add(share)
	}
	// last slot absorbs the rounding remainder so the sum stays exact
	l.Slots[n-1].Quantity = total.Sub(running)
}

// AddSlot appends a new slot seeded from the defaults. Its starting quantity
// is the unallocated remainder capped at 1, or 1 when nothing remains: the
// user always gets a non-zero quantity to edit, even though that can leave
// the ledger visibly over-allocated until they fix it.
func (l *Ledger) AddSlot(defaults SlotDefaults) Slot {
	one := decimal.NewFromInt(1)
	quantity := one
	if remaining := l.TotalQuantity.Sub(l.Allocated()); remaining.IsPositive() {
		quantity = decimal.Min(remaining, one)
	}

	slot := Slot{
		ID:           uuid.New(),
		Quantity:     quantity,
		DeliveryDate: defaults.DeliveryDate,
		DeliveryTime: defaults.DeliveryTime,
		VehicleType:  defaults.VehicleType,
	}
	l.Slots = append(l.Slots, slot)
	return slot
}

// RemoveSlot deletes the slot with the given id. The last remaining slot is
// never removed; a line item always keeps at least one slot. Returns whether
// a slot was removed.
func (l *Ledger) RemoveSlot(id uuid.UUID) bool {
	if len(l.Slots) <= 1 {
		return false
	}
	for i, slot := range l.Slots {
		if slot.ID == id {
			l.Slots = append(l.Slots[:i], l.Slots[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateSlot applies a partial edit to the slot with the given id. Editing
// one slot never rebalances its siblings; the user owns the remainder.
func (l *Ledger) UpdateSlot(id uuid.UUID, patch SlotPatch) error {
	idx := -1
	for i, slot := range l.Slots {
		if slot.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "slot not found")
	}

	if patch.Quantity != nil {
		if !patch.Quantity.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeValidation, "slot quantity must be positive")
		}
		l.Slots[idx].Quantity = *patch.Quantity
	}
	if patch.DeliveryDate != nil {
		if *patch.DeliveryDate != "" {
			if _, err := time.Parse("2006-01-02", *patch.DeliveryDate); err != nil {
				return pkgerrors.New(pkgerrors.CodeValidation, "delivery date must be YYYY-MM-DD")
			}
		}
		l.Slots[idx].DeliveryDate = *patch.DeliveryDate
	}
	if patch.DeliveryTime != nil {
		if *patch.DeliveryTime != "" {
			if _, err := time.Parse("15:04", *patch.DeliveryTime); err != nil {
				return pkgerrors.New(pkgerrors.CodeValidation, "delivery time must be HH:mm")
			}
		}
		l.Slots[idx].DeliveryTime = *patch.DeliveryTime
	}
	if patch.VehicleType != nil {
		if *patch.VehicleType != "" && !patch.VehicleType.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown vehicle type")
		}
		l.Slots[idx].VehicleType = *patch.VehicleType
	}
	return nil
}

// Slot returns a copy of the slot with the given id.
func (l *Ledger) Slot(id uuid.UUID) (Slot, bool) {
	for _, slot := range l.Slots {
		if slot.ID == id {
			return slot, true
		}
	}
	return Slot{}, false
}

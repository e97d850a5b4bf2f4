package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/buildmat/buildmat-backend/internal/allocation"
	"github.com/buildmat/buildmat-backend/pkg/enums"
)

// AddItemRequest adds a product to the cart or rescales it when already present.
type AddItemRequest struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Note      string          `json:"note,omitempty" validate:"max=500"`
}

type UpdateQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

type UpdateNoteRequest struct {
	Note string `json:"note" validate:"max=500"`
}

// UpdateSlotRequest is a partial slot edit; absent fields stay untouched.
type UpdateSlotRequest struct {
	Quantity     *decimal.Decimal `json:"quantity,omitempty"`
	DeliveryDate *string          `json:"delivery_date,omitempty"`
	DeliveryTime *string          `json:"delivery_time,omitempty"`
	VehicleType  *string          `json:"vehicle_type,omitempty"`
}

func (r UpdateSlotRequest) toPatch() allocation.SlotPatch {
	patch := allocation.SlotPatch{
		Quantity:     r.Quantity,
		DeliveryDate: r.DeliveryDate,
		DeliveryTime: r.DeliveryTime,
	}
	if r.VehicleType != nil {
		vt := enums.VehicleType(*r.VehicleType)
		patch.VehicleType = &vt
	}
	return patch
}

// Package checkout turns a validated cart into the order-creation payload
// and hands it to the external order API.
package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/buildmat/buildmat-backend/internal/cart"
)

// SlotPayload is one delivery event on the wire.
type SlotPayload struct {
	Quantity    decimal.Decimal `json:"quantity"`
	Date        string          `json:"date"`
	Time        string          `json:"time,omitempty"`
	VehicleType string          `json:"vehicle_type,omitempty"`
}

// ItemPayload is one line item on the wire.
type ItemPayload struct {
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	CustomNote string          `json:"custom_note,omitempty"`
	Slots      []SlotPayload   `json:"slots"`
}

// OrderForm carries the order-level fields collected outside the engine.
type OrderForm struct {
	ProjectID       string `json:"project_id"`
	DeliveryAddress string `json:"delivery_address"`
	ContactPhone    string `json:"contact_phone,omitempty"`
	Note            string `json:"note,omitempty"`
}

// Submission is the payload the order-creation API consumes verbatim.
type Submission struct {
	ProjectID       string        `json:"project_id"`
	DeliveryAddress string        `json:"delivery_address"`
	ContactPhone    string        `json:"contact_phone,omitempty"`
	Note            string        `json:"note,omitempty"`
	Items           []ItemPayload `json:"items"`
}

// BuildSubmission maps the cart and order form onto the wire payload. It
// performs no validation: callers must have run the scheduling gate first,
// and the mapper trusts them.
func BuildSubmission(items []cart.Item, form OrderForm) Submission {
	payloadItems := make([]ItemPayload, 0, len(items))
	for _, item := range items {
		slots := make([]SlotPayload, 0, len(item.Ledger.Slots))
		for _, slot := range item.Ledger.Slots {
			slots = append(slots, SlotPayload{
				Quantity:    slot.Quantity,
				Date:        slot.DeliveryDate,
				Time:        slot.DeliveryTime,
				VehicleType: slot.VehicleType.String(),
			})
		}
		payloadItems = append(payloadItems, ItemPayload{
			ProductID:  item.Product.ID,
			Quantity:   item.Ledger.TotalQuantity,
			CustomNote: item.Note,
			Slots:      slots,
		})
	}

	return Submission{
		ProjectID:       form.ProjectID,
		DeliveryAddress: form.DeliveryAddress,
		ContactPhone:    form.ContactPhone,
		Note:            form.Note,
		Items:           payloadItems,
	}
}

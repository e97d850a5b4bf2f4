package types

import (
	"github.com/google/uuid"

	"github.com/buildmat/buildmat-backend/pkg/enums"
)

// ProductSnapshot is the subset of catalog data copied onto a cart item at
// add time. It is never refreshed from the catalog afterwards, so a cart
// keeps showing what the buyer actually added.
type ProductSnapshot struct {
	ID       uuid.UUID         `json:"id"`
	Name     string            `json:"name"`
	Type     string            `json:"type"`
	Unit     enums.ProductUnit `json:"unit"`
	PhotoURL string            `json:"photo_url,omitempty"`
}

// VehicleOption is one entry of the configured vehicle catalog exposed to
// clients rendering the slot editor.
type VehicleOption struct {
	Code  enums.VehicleType `json:"code"`
	Label string            `json:"label"`
}

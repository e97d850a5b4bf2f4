package cart

import (
	"time"

	"github.com/buildmat/buildmat-backend/internal/allocation"
	"github.com/buildmat/buildmat-backend/pkg/types"
)

// Item is one line item in a cart: a product snapshot plus the allocation
// ledger splitting its quantity across delivery slots. A cart holds at most
// one Item per distinct product.
type Item struct {
	Product types.ProductSnapshot `json:"product"`
	// Note is the free-text customization (e.g. a custom concrete mix),
	// independent of allocation.
	Note    string            `json:"note,omitempty"`
	Ledger  allocation.Ledger `json:"ledger"`
	AddedAt time.Time         `json:"added_at"`
}

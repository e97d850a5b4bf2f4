package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/buildmat/buildmat-backend/internal/allocation"
	cartsvc "github.com/buildmat/buildmat-backend/internal/cart"
	"github.com/buildmat/buildmat-backend/pkg/types"
)

// AllocationStatusView is the balance summary rendered on every line item.
type AllocationStatusView struct {
	Allocated  decimal.Decimal `json:"allocated"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage float64         `json:"percentage"`
	IsBalanced bool            `json:"is_balanced"`
}

type ItemView struct {
	Product       types.ProductSnapshot `json:"product"`
	Note          string                `json:"note,omitempty"`
	TotalQuantity decimal.Decimal       `json:"total_quantity"`
	Slots         []allocation.Slot     `json:"slots"`
	Status        AllocationStatusView  `json:"status"`
	AddedAt       time.Time             `json:"added_at"`
}

type CartView struct {
	Items []ItemView `json:"items"`
}

func newItemView(item cartsvc.Item) ItemView {
	status := item.Ledger.Status()
	return ItemView{
		Product:       item.Product,
		Note:          item.Note,
		TotalQuantity: item.Ledger.TotalQuantity,
		Slots:         item.Ledger.Slots,
		Status: AllocationStatusView{
			Allocated:  status.Allocated,
			Remaining:  status.Remaining,
			Percentage: status.Percentage,
			IsBalanced: status.IsBalanced,
		},
		AddedAt: item.AddedAt,
	}
}

func newCartView(items []cartsvc.Item) CartView {
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, newItemView(item))
	}
	return CartView{Items: views}
}

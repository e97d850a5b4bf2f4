// Package cart owns the session-scoped cart: an ordered list of line items,
// each carrying an allocation ledger, persisted as one record in an external
// key-value store. Every mutation is a read-modify-write of the whole record
// so total quantity and slots can never be persisted inconsistently.
package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/buildmat/buildmat-backend/internal/allocation"
	pkgerrors "github.com/buildmat/buildmat-backend/pkg/errors"
	"github.com/buildmat/buildmat-backend/pkg/metrics"
	"github.com/buildmat/buildmat-backend/pkg/types"
)

type productLoader interface {
	Snapshot(ctx context.Context, id uuid.UUID) (types.ProductSnapshot, error)
}

// Service exposes cart and slot mutations for one session key.
type Service interface {
	Items(ctx context.Context, sessionKey string) ([]Item, error)
	AddItem(ctx context.Context, sessionKey string, productID uuid.UUID, quantity decimal.Decimal, note string) (Item, error)
	UpdateQuantity(ctx context.Context, sessionKey string, productID uuid.UUID, quantity decimal.Decimal) (Item, error)
	UpdateNote(ctx context.Context, sessionKey string, productID uuid.UUID, note string) (Item, error)
	RemoveItem(ctx context.Context, sessionKey string, productID uuid.UUID) error
	Clear(ctx context.Context, sessionKey string) error

	AddSlot(ctx context.Context, sessionKey string, productID uuid.UUID) (allocation.Slot, error)
	UpdateSlot(ctx context.Context, sessionKey string, productID uuid.UUID, slotID uuid.UUID, patch allocation.SlotPatch) (Item, error)
	RemoveSlot(ctx context.Context, sessionKey string, productID uuid.UUID, slotID uuid.UUID) (Item, error)
}

type service struct {
	repo     Repository
	products productLoader
	defaults allocation.SlotDefaults
	metrics  *metrics.EngineMetrics
}

// NewService builds a cart service. Metrics may be nil.
func NewService(repo Repository, products productLoader, defaults allocation.SlotDefaults, m *metrics.EngineMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, products: products, defaults: defaults, metrics: m}, nil
}

func (s *service) Items(ctx context.Context, sessionKey string) ([]Item, error) {
	if err := requireKey(sessionKey); err != nil {
		return nil, err
	}
	return s.repo.Load(ctx, sessionKey)
}

// AddItem snapshots the product and appends a line item with a single
// default slot covering the full quantity. Adding a product already in the
// cart rescales its ledger to the new quantity instead of duplicating it.
func (s *service) AddItem(ctx context.Context, sessionKey string, productID uuid.UUID, quantity decimal.Decimal, note string) (Item, error) {
	if err := requireKey(sessionKey); err != nil {
		return Item{}, err
	}
	if !quantity.IsPositive() {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	items, err := s.repo.Load(ctx, sessionKey)
	if err != nil {
		return Item{}, err
	}

	if idx := indexOf(items, productID); idx >= 0 {
		if err := items[idx].Ledger.SetTotalQuantity(quantity); err != nil {
			return Item{}, err
		}
		if note != "" {
			items[idx].Note = note
		}
		if err := s.repo.Save(ctx, sessionKey, items); err != nil {
			return Item{}, err
		}
		s.metrics.IncCartMutation("add_item")
		return items[idx], nil
	}

	snapshot, err := s.products.Snapshot(ctx, productID)
	if err != nil {
		return Item{}, err
	}

	item := Item{
		Product: snapshot,
		Note:    note,
		Ledger:  allocation.NewLedger(quantity, s.defaults),
		AddedAt: time.Now().UTC(),
	}
	items = append(items, item)

	if err := s.repo.Save(ctx, sessionKey, items); err != nil {
		return Item{}, err
	}
	s.metrics.IncCartMutation("add_item")
	return item, nil
}

// UpdateQuantity changes the ordered total and rescales the item's slots
// proportionally.
func (s *service) UpdateQuantity(ctx context.Context, sessionKey string, productID uuid.UUID, quantity decimal.Decimal) (Item, error) {
	item, err := s.mutateItem(ctx, sessionKey, productID, func(item *Item) error {
		return item.Ledger.SetTotalQuantity(quantity)
	})
	if err != nil {
		return Item{}, err
	}
	s.metrics.IncCartMutation("update_quantity")
	s.metrics.IncRescale()
	return item, nil
}

func (s *service) UpdateNote(ctx context.Context, sessionKey string, productID uuid.UUID, note string) (Item, error) {
	item, err := s.mutateItem(ctx, sessionKey, productID, func(item *Item) error {
		item.Note = note
		return nil
	})
	if err != nil {
		return Item{}, err
	}
	s.metrics.IncCartMutation("update_note")
	return item, nil
}

func (s *service) RemoveItem(ctx context.Context, sessionKey string, productID uuid.UUID) error {
	if err := requireKey(sessionKey); err != nil {
		return err
	}

	items, err := s.repo.Load(ctx, sessionKey)
	if err != nil {
		return err
	}
	idx := indexOf(items, productID)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "line item not found")
	}
	items = append(items[:idx], items[idx+1:]...)

	if err := s.repo.Save(ctx, sessionKey, items); err != nil {
		return err
	}
	s.metrics.IncCartMutation("remove_item")
	return nil
}

func (s *service) Clear(ctx context.Context, sessionKey string) error {
	if err := requireKey(sessionKey); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, sessionKey); err != nil {
		return err
	}
	s.metrics.IncCartMutation("clear")
	return nil
}

func (s *service) AddSlot(ctx context.Context, sessionKey string, productID uuid.UUID) (allocation.Slot, error) {
	var slot allocation.Slot
	_, err := s.mutateItem(ctx, sessionKey, productID, func(item *Item) error {
		slot = item.Ledger.AddSlot(s.defaults)
		return nil
	})
	if err != nil {
		return allocation.Slot{}, err
	}
	s.metrics.IncCartMutation("add_slot")
	return slot, nil
}

func (s *service) UpdateSlot(ctx context.Context, sessionKey string, productID uuid.UUID, slotID uuid.UUID, patch allocation.SlotPatch) (Item, error) {
	item, err := s.mutateItem(ctx, sessionKey, productID, func(item *Item) error {
		return item.Ledger.UpdateSlot(slotID, patch)
	})
	if err != nil {
		return Item{}, err
	}
	s.metrics.IncCartMutation("update_slot")
	return item, nil
}

// RemoveSlot deletes a slot by id. Removing the last slot of a line item is
// rejected; a line item always keeps at least one slot.
func (s *service) RemoveSlot(ctx context.Context, sessionKey string, productID uuid.UUID, slotID uuid.UUID) (Item, error) {
	item, err := s.mutateItem(ctx, sessionKey, productID, func(item *Item) error {
		if len(item.Ledger.Slots) <= 1 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "a line item must keep at least one delivery slot")
		}
		if !item.Ledger.RemoveSlot(slotID) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "slot not found")
		}
		return nil
	})
	if err != nil {
		return Item{}, err
	}
	s.metrics.IncCartMutation("remove_slot")
	return item, nil
}

// mutateItem loads the cart, applies fn to the targeted line item and writes
// the whole cart back.
func (s *service) mutateItem(ctx context.Context, sessionKey string, productID uuid.UUID, fn func(*Item) error) (Item, error) {
	if err := requireKey(sessionKey); err != nil {
		return Item{}, err
	}

	items, err := s.repo.Load(ctx, sessionKey)
	if err != nil {
		return Item{}, err
	}
	idx := indexOf(items, productID)
	if idx < 0 {
		return Item{}, pkgerrors.New(pkgerrors.CodeNotFound, "line item not found")
	}

	if err := fn(&items[idx]); err != nil {
		return Item{}, err
	}

	if err := s.repo.Save(ctx, sessionKey, items); err != nil {
		return Item{}, err
	}
	return items[idx], nil
}

func indexOf(items []Item, productID uuid.UUID) int {
	for i, item := range items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

func requireKey(sessionKey string) error {
	if sessionKey == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart session key is required")
	}
	return nil
}

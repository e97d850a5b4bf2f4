package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/buildmat/buildmat-backend/internal/allocation"
	pkgerrors "github.com/buildmat/buildmat-backend/pkg/errors"
	"github.com/buildmat/buildmat-backend/pkg/redis"
	"github.com/buildmat/buildmat-backend/pkg/types"
)

// Repository persists a session's cart as a single record. Writes are
// last-writer-wins; concurrent multi-device edits are not merged.
type Repository interface {
	Load(ctx context.Context, sessionKey string) ([]Item, error)
	Save(ctx context.Context, sessionKey string, items []Item) error
	Delete(ctx context.Context, sessionKey string) error
}

type redisStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionKey string) string
}

// RedisRepository stores the cart JSON-encoded under a namespaced key.
type RedisRepository struct {
	store    redisStore
	ttl      time.Duration
	defaults allocation.SlotDefaults
}

// NewRedisRepository builds the cart repository.
func NewRedisRepository(store redisStore, ttl time.Duration, defaults allocation.SlotDefaults) (*RedisRepository, error) {
	if store == nil {
		return nil, fmt.Errorf("redis store required")
	}
	return &RedisRepository{store: store, ttl: ttl, defaults: defaults}, nil
}

// Load reads the session's cart. A missing key is an empty cart, not an
// error. Legacy records written before slot scheduling existed are upgraded
// in memory with a single default slot covering the full quantity.
func (r *RedisRepository) Load(ctx context.Context, sessionKey string) ([]Item, error) {
	raw, err := r.store.Get(ctx, r.store.CartKey(sessionKey))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Item{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	items, err := decodeItems([]byte(raw), r.defaults)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode cart")
	}
	return items, nil
}

// Save writes the whole cart in one operation.
func (r *RedisRepository) Save(ctx context.Context, sessionKey string, items []Item) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := r.store.Set(ctx, r.store.CartKey(sessionKey), payload, r.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

// Delete drops the session's cart entirely.
func (r *RedisRepository) Delete(ctx context.Context, sessionKey string) error {
	if err := r.store.Del(ctx, r.store.CartKey(sessionKey)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart")
	}
	return nil
}

// storedItem tolerates both the current record shape and the legacy one that
// carried a flat quantity and per-item delivery fields instead of a ledger.
type storedItem struct {
	Product types.ProductSnapshot `json:"product"`
	Note    string                `json:"note,omitempty"`
	AddedAt time.Time             `json:"added_at"`
	Ledger  *allocation.Ledger    `json:"ledger,omitempty"`

	LegacyQuantity     *decimal.Decimal `json:"quantity,omitempty"`
	LegacyDeliveryDate string           `json:"delivery_date,omitempty"`
	LegacyDeliveryTime string           `json:"delivery_time,omitempty"`
}

func decodeItems(raw []byte, defaults allocation.SlotDefaults) ([]Item, error) {
	var stored []storedItem
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(stored))
	for _, s := range stored {
		items = append(items, upgradeItem(s, defaults))
	}
	return items, nil
}

func upgradeItem(s storedItem, defaults allocation.SlotDefaults) Item {
	item := Item{
		Product: s.Product,
		Note:    s.Note,
		AddedAt: s.AddedAt,
	}

	if s.Ledger != nil && len(s.Ledger.Slots) > 0 {
		item.Ledger = *s.Ledger
		return item
	}

	// legacy record: synthesize a single slot covering the full quantity
	total := decimal.Zero
	if s.LegacyQuantity != nil {
		total = *s.LegacyQuantity
	} else if s.Ledger != nil {
		total = s.Ledger.TotalQuantity
	}
	slotDefaults := defaults
	if s.LegacyDeliveryDate != "" {
		slotDefaults.DeliveryDate = s.LegacyDeliveryDate
	}
	if s.LegacyDeliveryTime != "" {
		slotDefaults.DeliveryTime = s.LegacyDeliveryTime
	}
	item.Ledger = allocation.NewLedger(total, slotDefaults)
	return item
}

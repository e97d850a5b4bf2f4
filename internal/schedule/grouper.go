package schedule

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/buildmat/buildmat-backend/internal/cart"
	"github.com/buildmat/buildmat-backend/pkg/enums"
	"github.com/buildmat/buildmat-backend/pkg/types"
)

// LineSummary is one line item's contribution to a (date, time) delivery.
type LineSummary struct {
	Product  types.ProductSnapshot `json:"product"`
	Quantity decimal.Decimal       `json:"quantity"`
	Unit     enums.ProductUnit     `json:"unit"`
	Note     string                `json:"note,omitempty"`
}

// TimeGroup collects every delivery happening at one time of day.
type TimeGroup struct {
	Time  string        `json:"time"`
	Items []LineSummary `json:"items"`
}

// DateGroup collects a day's deliveries, ordered by time ascending.
type DateGroup struct {
	Date  string      `json:"date"`  // ISO YYYY-MM-DD, empty for unscheduled slots
	Label string      `json:"label"` // locale-formatted display label
	Times []TimeGroup `json:"times"`
}

// Group flattens every line item's slots and builds the date → time → items
// review tree. It is a pure projection over the ledgers: re-derivable at any
// time, never the system of record, and total — every slot appears exactly
// once in the output. Dates and times sort ascending by their ISO string
// keys, which is also chronological; slots without a date sort last.
func Group(items []cart.Item, country string) []DateGroup {
	byDate := map[string]map[string][]LineSummary{}

	for _, item := range items {
		for _, slot := range item.Ledger.Slots {
			times, ok := byDate[slot.DeliveryDate]
			if !ok {
				times = map[string][]LineSummary{}
				byDate[slot.DeliveryDate] = times
			}
			times[slot.DeliveryTime] = append(times[slot.DeliveryTime], LineSummary{
				Product:  item.Product,
				Quantity: slot.Quantity,
				Unit:     item.Product.Unit,
				Note:     item.Note,
			})
		}
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool {
		// undated group always renders last
		if dates[i] == "" {
			return false
		}
		if dates[j] == "" {
			return true
		}
		return dates[i] < dates[j]
	})

	groups := make([]DateGroup, 0, len(dates))
	for _, date := range dates {
		times := make([]string, 0, len(byDate[date]))
		for tm := range byDate[date] {
			times = append(times, tm)
		}
		sort.Strings(times)

		timeGroups := make([]TimeGroup, 0, len(times))
		for _, tm := range times {
			timeGroups = append(timeGroups, TimeGroup{Time: tm, Items: byDate[date][tm]})
		}

		groups = append(groups, DateGroup{
			Date:  date,
			Label: FormatDateLabel(date, country),
			Times: timeGroups,
		})
	}
	return groups
}

// FormatDateLabel renders an ISO date for display in the configured market.
func FormatDateLabel(date, country string) string {
	if date == "" {
		return "Unscheduled"
	}
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	switch country {
	case "US":
		return parsed.Format("Jan 2, 2006")
	default:
		return parsed.Format("2 Jan 2006")
	}
}

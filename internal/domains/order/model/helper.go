package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MinorUnitThreshold disambiguates client-sent amounts: integer values at
// or above this are treated as already being in minor units, anything
// else as major units. Both order creation and payment verification go
// through ToMinorUnits so the threshold applies consistently.
const MinorUnitThreshold = 10000

// ToMinorUnits converts a client-sent amount to the smallest currency
// unit. 499 resolves to 49900 (rupees -> paise), 49900 stays 49900.
func ToMinorUnits(amount decimal.Decimal) int64 {
	if amount.IsInteger() && amount.GreaterThanOrEqual(decimal.NewFromInt(MinorUnitThreshold)) {
		return amount.IntPart()
	}
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// SummarizeItems builds the length-bounded human-readable summary, one
// entry per line item. The store caps field sizes, so each entry is
// truncated to MaxItemSummaryLen; ItemsJSON keeps the full data.
func SummarizeItems(items []LineItem) []string {
	if len(items) == 0 {
		return nil
	}

	summaries := make([]string, 0, len(items))
	for _, item := range items {
		s := fmt.Sprintf("%s x%d @ %.2f", item.ProductRef, item.Quantity, item.UnitPrice)
		if item.Variant != "" {
			s = fmt.Sprintf("%s (%s)", s, item.Variant)
		}
		summaries = append(summaries, Truncate(s, MaxItemSummaryLen))
	}
	return summaries
}

// SerializeItems returns the full, unbounded serialization of the items
func SerializeItems(items []LineItem) string {
	data, err := json.Marshal(items)
	if err != nil {
		// Line items are plain values; marshaling cannot realistically fail
		return "[]"
	}
	return string(data)
}

// FlattenPrimaryAddress duplicates the primary shipping address into the
// record's indexable sub-fields. A missing country falls back to
// defaultCountry. An out-of-range primary index falls back to the first
// address.
func (o *OrderRecord) FlattenPrimaryAddress(defaultCountry string) {
	if len(o.ShippingAddresses) == 0 {
		return
	}

	idx := o.PrimaryAddressIndex
	if idx < 0 || idx >= len(o.ShippingAddresses) {
		idx = 0
		o.PrimaryAddressIndex = 0
	}

	addr := o.ShippingAddresses[idx]
	if addr.Country == "" {
		addr.Country = defaultCountry
		o.ShippingAddresses[idx].Country = defaultCountry
	}

	o.ShipName = addr.Name
	o.ShipPhone = addr.Phone
	o.ShipLine1 = addr.Line1
	o.ShipLine2 = addr.Line2
	o.ShipCity = addr.City
	o.ShipRegion = addr.Region
	o.ShipPostalCode = addr.PostalCode
	o.ShipCountry = addr.Country
}

// Truncate bounds s to max bytes
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

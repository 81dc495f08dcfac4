package extract

import "strconv"

// Column names used by the aggregator and the tabular sink.
const (
	ColOrderNumber       = "order_number"
	ColOrderFull         = "order_full"
	ColItemID            = "item_id"
	ColTitle             = "title"
	ColItemURL           = "item_url"
	ColQuantitySold      = "qty_sold"
	ColQuantityAvailable = "qty_available"
	ColPrice             = "price"
	ColPriceText         = "price_text"
	ColSource            = "source"
)

// PreferredColumns is the presentation order for well-known columns. Columns
// outside this list are appended after it in first-seen order.
func PreferredColumns() []string {
	return []string{
		ColOrderNumber, ColOrderFull,
		ColItemID, ColTitle, ColItemURL,
		ColQuantitySold, ColQuantityAvailable,
		ColPrice, ColPriceText,
		ColSource,
	}
}

// Record is one extracted order line. ItemID is always set; every other field
// may be absent. Records are never mutated after field extraction — filtering
// only removes them.
type Record struct {
	OrderNumber       string
	OrderFull         string
	ItemID            string
	Title             string
	ItemURL           string
	QuantitySold      *int
	QuantityAvailable *int
	Price             *float64
	PriceText         string
	Source            string
}

// Fields returns the record's present fields keyed by column name. Absent
// optional fields have no entry, which is what drives the aggregator's
// column-union and backfill behavior.
func (r Record) Fields() map[string]string {
	fields := map[string]string{
		ColItemID:  r.ItemID,
		ColItemURL: r.ItemURL,
	}
	if r.OrderNumber != "" {
		fields[ColOrderNumber] = r.OrderNumber
	}
	if r.OrderFull != "" {
		fields[ColOrderFull] = r.OrderFull
	}
	if r.Title != "" {
		fields[ColTitle] = r.Title
	}
	if r.QuantitySold != nil {
		fields[ColQuantitySold] = strconv.Itoa(*r.QuantitySold)
	}
	if r.QuantityAvailable != nil {
		fields[ColQuantityAvailable] = strconv.Itoa(*r.QuantityAvailable)
	}
	if r.Price != nil {
		fields[ColPrice] = strconv.FormatFloat(*r.Price, 'f', 2, 64)
	}
	if r.PriceText != "" {
		fields[ColPriceText] = r.PriceText
	}
	if r.Source != "" {
		fields[ColSource] = r.Source
	}
	return fields
}

// dedupKey identifies a logical item within one pipeline run. The same item
// routinely appears under several anchors in the markup.
type dedupKey struct {
	itemID string
	title  string
}

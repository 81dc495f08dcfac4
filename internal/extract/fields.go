package extract

import (
	"strings"

	"github.com/ordersift/ordersift/internal/dom"
)

// Selectors for the seller-orders page family. Markup shifts between
// revisions, so each field is located through an ordered fallback chain
// rather than a single authoritative selector.
const (
	// ItemLinkSelector matches anchors that reference one item.
	ItemLinkSelector = `a[href*="/itm/"]`

	orderDetailsSelector      = `a[href*="/mesh/ord/details"]`
	anyLinkSelector           = "a"
	availableQuantitySelector = `[class*="available-quantity"]`
	priceColumnSelector       = "div.price-column-item"
	soldMarkerTag             = "strong"
)

// RawFields holds the unparsed field values pulled from one resolved row.
// Empty string means the field was absent or unreadable.
type RawFields struct {
	OrderFull         string
	QuantityAvailable string
	QuantitySold      string
	PriceText         string
}

// fieldRule is one step in a field's fallback chain: a scoped selector plus
// an acceptance check on the candidate text. Rules are data so new fallbacks
// can be added without touching the evaluation loop.
type fieldRule struct {
	selector string
	accept   func(text string) bool
}

// orderTextRules locate the order-number text: prefer the order-details link,
// fall back to any link whose text carries the order separator.
var orderTextRules = []fieldRule{
	{selector: orderDetailsSelector, accept: hasOrderSeparator},
	{selector: anyLinkSelector, accept: hasOrderSeparator},
}

func hasOrderSeparator(text string) bool {
	return text != "" && strings.Contains(text, orderSeparator)
}

// firstByRules evaluates the fallback chain in order, returning the text of
// the first element accepted by its rule. Failed queries simply move the
// chain along.
func firstByRules(row dom.Node, rules []fieldRule) string {
	for _, rule := range rules {
		for _, node := range row.Find(rule.selector) {
			if text := node.Text(); rule.accept(text) {
				return text
			}
		}
	}
	return ""
}

// ExtractFields pulls the raw field values out of a resolved row. Every field
// query is independently fault-tolerant: a missing element or a detached node
// leaves that one field empty and the rest unaffected.
func ExtractFields(row dom.Node) RawFields {
	var raw RawFields

	// Order text is only kept when the candidate matches the canonical
	// order-number shape. A near-miss is discarded, not coerced.
	if cand := firstByRules(row, orderTextRules); isOrderFull(cand) {
		raw.OrderFull = strings.TrimSpace(cand)
	}

	if avail, ok := row.FindFirst(availableQuantitySelector); ok {
		raw.QuantityAvailable = avail.Text()
		raw.QuantitySold = soldMarkerText(avail)
	}

	if price, ok := row.FindFirst(priceColumnSelector); ok {
		raw.PriceText = price.Text()
	}

	return raw
}

// soldMarkerText finds the quantity-sold marker for an available-quantity
// element: the immediately preceding sibling when it is a strong-emphasis
// element, otherwise the nearest strong element preceding it in document
// order.
func soldMarkerText(avail dom.Node) string {
	if prev, ok := avail.PrevSibling(); ok && prev.TagName() == soldMarkerTag {
		return prev.Text()
	}
	if marker, ok := avail.Preceding(soldMarkerTag); ok {
		return marker.Text()
	}
	return ""
}

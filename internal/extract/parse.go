// Package extract implements the record-extraction pipeline for seller-orders
// pages: anchor discovery, row resolution, ordered-fallback field extraction,
// parsing, deduplication, and filtering.
package extract

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Order numbers carry a fixed two-group-plus-check shape, e.g. 27-13984-70927.
const orderSeparator = "-"

var (
	reOrderFull = regexp.MustCompile(`^\d{2}-\d{5}-\d{5}$`)
	reAvailable = regexp.MustCompile(`(?i)\((\d+)\s+available\)`)
	rePrice     = regexp.MustCompile(`[-+]?\$?\s*([0-9]+(?:\.[0-9]{1,2})?)`)
	reItemPath  = regexp.MustCompile(`/itm/(\d+)`)
)

// ParseQuantityAvailable extracts the integer from an "(N available)" marker.
func ParseQuantityAvailable(text string) (int, bool) {
	m := reAvailable.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParsePrice extracts a decimal price from display text such as "$1,299.99".
// Thousands separators are stripped before matching.
func ParsePrice(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	m := rePrice.FindStringSubmatch(strings.ReplaceAll(text, ",", ""))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseItemIDFromURL extracts the numeric item identifier following the /itm/
// path marker. Only the URL path is inspected; the query string is ignored.
// A href that does not parse as a URL is matched as a raw path.
func ParseItemIDFromURL(href string) (string, bool) {
	path := href
	if u, err := url.Parse(href); err == nil {
		path = u.Path
	}
	m := reItemPath.FindStringSubmatch(path)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ParseOrderShort derives the short order number from the canonical full form:
// "27-13984-70927" becomes "13984-70927". Text that does not match the
// canonical pattern yields no value.
func ParseOrderShort(fullText string) (string, bool) {
	t := strings.TrimSpace(fullText)
	if !reOrderFull.MatchString(t) {
		return "", false
	}
	parts := strings.Split(t, orderSeparator)
	return parts[1] + orderSeparator + parts[2], true
}

// isOrderFull reports whether text matches the canonical order-number shape.
func isOrderFull(text string) bool {
	return reOrderFull.MatchString(strings.TrimSpace(text))
}

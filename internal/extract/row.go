package extract

import (
	"strings"

	"github.com/ordersift/ordersift/internal/dom"
)

// DefaultMaxHops bounds the upward walk from an anchor to its row container.
// Malformed trees must not turn the resolver into an unbounded traversal.
const DefaultMaxHops = 12

// RowPredicate decides whether a node is an acceptable row container based on
// its lowercase tag name, class attribute, and role attribute.
type RowPredicate func(tag, class, role string) bool

// DefaultRowPredicates returns the acceptance predicates for seller-orders
// markup, in evaluation order. The page family renders order lines as table
// rows, ARIA rows, or card-styled containers depending on revision.
func DefaultRowPredicates() []RowPredicate {
	return []RowPredicate{
		func(tag, _, _ string) bool { return tag == "tr" },
		func(_, _, role string) bool { return role == "row" || role == "rowgroup" },
		func(_, class, _ string) bool {
			return strings.Contains(class, "order") &&
				(strings.Contains(class, "row") || strings.Contains(class, "card"))
		},
		func(_, class, _ string) bool {
			return strings.Contains(class, "shui") && strings.Contains(class, "card")
		},
	}
}

// ResolveRow ascends from an anchor to the smallest enclosing node accepted by
// one of the predicates, visiting at most maxHops nodes. A failed tag read or
// a missing parent ends the walk early. The result is always usable: if no
// candidate is accepted, the last successfully visited node is returned.
func ResolveRow(anchor dom.Node, predicates []RowPredicate, maxHops int) dom.Node {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}

	cur := anchor
	for hop := 0; hop < maxHops; hop++ {
		tag := cur.TagName()
		if tag == "" {
			// Node detached mid-walk.
			return cur
		}
		class, _ := cur.Attr("class")
		role, _ := cur.Attr("role")
		class = strings.ToLower(class)
		role = strings.ToLower(role)

		for _, accept := range predicates {
			if accept(tag, class, role) {
				return cur
			}
		}

		parent, ok := cur.Parent()
		if !ok {
			return cur
		}
		cur = parent
	}
	return cur
}

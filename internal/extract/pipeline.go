package extract

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ordersift/ordersift/internal/dom"
	"github.com/ordersift/ordersift/internal/logger"
)

// Tree is the whole-document query surface the pipeline runs against.
// *dom.Document satisfies it; tests substitute synthetic trees.
type Tree interface {
	Find(selector string) []dom.Node
}

// Options configure one pipeline instance.
type Options struct {
	// MaxRecords caps the number of records produced in one run. Anchors
	// beyond the cap are not processed at all. Zero means no cap.
	MaxRecords int
	// Filter, when non-nil, retains only records whose title matches.
	Filter *KeywordFilter
	// MaxHops bounds the row-resolution walk. Zero selects DefaultMaxHops.
	MaxHops int
}

// Pipeline turns a rendered document tree into an ordered set of records.
// All state is local to one Run call; a Pipeline may be reused across runs
// and trees.
type Pipeline struct {
	logger     logger.Interface
	opts       Options
	predicates []RowPredicate
}

// NewPipeline creates a record pipeline with the default row predicates.
func NewPipeline(log logger.Interface, opts Options) *Pipeline {
	return &Pipeline{
		logger:     log,
		opts:       opts,
		predicates: DefaultRowPredicates(),
	}
}

// Run executes the extraction phases in order: discover anchors, then per
// anchor resolve the row, extract and parse fields, deduplicate, drop
// phantoms, apply the keyword filter, and stop at the record cap. A failure
// on one anchor never aborts the run.
func (p *Pipeline) Run(tree Tree) []Record {
	log := p.logger.WithRun(uuid.NewString())

	anchors := tree.Find(ItemLinkSelector)
	log.Debug("Discovered item anchors", "count", len(anchors))

	var records []Record
	seen := make(map[dedupKey]struct{})

	for _, anchor := range anchors {
		href, _ := anchor.Attr("href")
		href = strings.TrimSpace(href)
		title := anchor.Text()

		itemID, ok := ParseItemIDFromURL(href)
		if !ok {
			// Not an item link after all.
			continue
		}

		// Dedup before resolving the row: repeated anchors for the same
		// item are common and resolving them again buys nothing.
		key := dedupKey{itemID: itemID, title: title}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		row := ResolveRow(anchor, p.predicates, p.opts.MaxHops)
		raw := ExtractFields(row)
		rec := buildRecord(itemID, title, href, raw)

		if isPhantom(rec) {
			log.Debug("Dropped phantom row", "item_id", itemID)
			continue
		}
		if p.opts.Filter != nil && !p.opts.Filter.Match(rec.Title) {
			continue
		}

		records = append(records, rec)
		if p.opts.MaxRecords > 0 && len(records) >= p.opts.MaxRecords {
			log.Debug("Record cap reached, stopping anchor scan",
				"max_records", p.opts.MaxRecords)
			break
		}
	}

	log.Info("Pipeline run complete",
		"anchors", len(anchors),
		"records", len(records))
	return records
}

// buildRecord parses raw field text into a typed record.
func buildRecord(itemID, title, href string, raw RawFields) Record {
	rec := Record{
		ItemID:    itemID,
		Title:     title,
		ItemURL:   href,
		OrderFull: raw.OrderFull,
		PriceText: strings.TrimSpace(raw.PriceText),
	}

	// The short order number is always derived from the full form, never
	// set independently.
	if short, ok := ParseOrderShort(raw.OrderFull); ok {
		rec.OrderNumber = short
	}
	if sold := strings.TrimSpace(raw.QuantitySold); isDigits(sold) {
		if n, err := strconv.Atoi(sold); err == nil {
			rec.QuantitySold = &n
		}
	}
	if avail, ok := ParseQuantityAvailable(raw.QuantityAvailable); ok {
		rec.QuantityAvailable = &avail
	}
	if price, ok := ParsePrice(rec.PriceText); ok {
		rec.Price = &price
	}

	return rec
}

// isPhantom reports whether a record carries no identifying signal beyond the
// bare item id. A price or quantity without any textual identity is still
// noise: title, full order, and short order must not all be empty.
func isPhantom(rec Record) bool {
	return rec.Title == "" && rec.OrderFull == "" && rec.OrderNumber == ""
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

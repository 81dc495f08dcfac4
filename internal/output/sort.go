package output

import (
	"sort"

	"github.com/ordersift/ordersift/internal/aggregate"
	"github.com/ordersift/ordersift/internal/extract"
)

// SortForDisplay returns a copy of the dataset ordered by order number, then
// item id, with records missing an order number last. The sort lives at the
// sink so pipeline output keeps its first-discovery order everywhere else.
func SortForDisplay(ds *aggregate.Dataset) *aggregate.Dataset {
	records := make([]extract.Record, len(ds.Records))
	copy(records, ds.Records)

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if (a.OrderNumber == "") != (b.OrderNumber == "") {
			return a.OrderNumber != ""
		}
		if a.OrderNumber != b.OrderNumber {
			return a.OrderNumber < b.OrderNumber
		}
		return a.ItemID < b.ItemID
	})

	return &aggregate.Dataset{Columns: ds.Columns, Records: records}
}

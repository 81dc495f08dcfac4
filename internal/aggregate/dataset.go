package aggregate

import "github.com/ordersift/ordersift/internal/extract"

// Dataset is the merged output of all source runs: a uniform column set and
// the records in their merged order. Every record renders a value (possibly
// empty) for every column, so the sink never sees ragged rows.
type Dataset struct {
	Columns []string
	Records []extract.Record
}

// newDataset computes the column union across records, ordered by the
// preferred presentation order with unanticipated columns appended in
// first-seen order.
func newDataset(records []extract.Record) *Dataset {
	present := make(map[string]bool)
	var extras []string

	preferred := extract.PreferredColumns()
	known := make(map[string]bool, len(preferred))
	for _, col := range preferred {
		known[col] = true
	}

	for _, rec := range records {
		for col := range rec.Fields() {
			if present[col] {
				continue
			}
			present[col] = true
			if !known[col] {
				extras = append(extras, col)
			}
		}
	}

	columns := make([]string, 0, len(present))
	for _, col := range preferred {
		if present[col] {
			columns = append(columns, col)
		}
	}
	columns = append(columns, extras...)

	return &Dataset{Columns: columns, Records: records}
}

// Rows renders every record against the full column set, backfilling empty
// strings for absent fields.
func (d *Dataset) Rows() [][]string {
	rows := make([][]string, 0, len(d.Records))
	for _, rec := range d.Records {
		fields := rec.Fields()
		row := make([]string, len(d.Columns))
		for i, col := range d.Columns {
			row[i] = fields[col]
		}
		rows = append(rows, row)
	}
	return rows
}

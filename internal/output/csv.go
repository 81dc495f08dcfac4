package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ordersift/ordersift/internal/aggregate"
	"github.com/ordersift/ordersift/internal/logger"
)

// CSVWriter persists datasets as a delimited file: one header row from the
// dataset's column set, one line per record, empty string for absent fields.
type CSVWriter struct {
	logger logger.Interface
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(log logger.Interface) *CSVWriter {
	return &CSVWriter{logger: log}
}

// Write writes the dataset to path.
func (w *CSVWriter) Write(path string, ds *aggregate.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(ds.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range ds.Rows() {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	w.logger.Info("Saved CSV", "path", path, "records", len(ds.Records))
	return nil
}

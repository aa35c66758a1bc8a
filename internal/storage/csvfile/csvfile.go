// Package csvfile implements the storage interfaces over plain CSV files.
// These are the primary stores: the snapshot log is the only interface
// between the collector and the analyzer. Files are opened in append mode
// with no locking; concurrent writers are unsupported.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
)

// TimeLayout is the timestamp format used in all CSV files.
const TimeLayout = "2006-01-02 15:04:05"

// appendRecords appends records to the file at path, writing the header
// first when the file is new or empty. Records are buffered up front so a
// validation failure never leaves a partial run in the log.
func appendRecords(path string, header []string, records [][]string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header to %s: %w", path, err)
		}
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row to %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// readRecords reads all data records from path in file order, skipping the
// header line. Every record must have exactly wantFields fields.
func readRecords(path string, wantFields int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = wantFields

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil
}

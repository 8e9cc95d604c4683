package telemetry

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// WriteCSV writes the day series as CSV with a header row.
func WriteCSV(w io.Writer, days []DayStats) error {
	if err := gocsv.Marshal(&days, w); err != nil {
		return fmt.Errorf("marshal day series: %w", err)
	}
	return nil
}

// ExportCSV writes the day series to a file, replacing any existing one.
func ExportCSV(path string, days []DayStats) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, days); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

package reporting

import (
	"fmt"
	"os"
	"path/filepath"
)

// Output file names.
const (
	HistoricalFileName = "historical_sales.csv"
	TelemetryFileName  = "intraday_telemetry.csv"
)

// WriteFiles writes both rendered CSVs under the output directory, creating
// it if needed.
func WriteFiles(outputDir, historicalCSV, telemetryCSV string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	histPath := filepath.Join(outputDir, HistoricalFileName)
	if err := os.WriteFile(histPath, []byte(historicalCSV), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", HistoricalFileName, err)
	}

	telemPath := filepath.Join(outputDir, TelemetryFileName)
	if err := os.WriteFile(telemPath, []byte(telemetryCSV), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", TelemetryFileName, err)
	}

	return nil
}

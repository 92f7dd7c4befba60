// Package export writes generated portfolio reports to their delivery
// targets. The JSON file exporter is the reference target; report rows are
// also recorded in the audit trail by the job itself.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/application/report"
)

// JSONExporter writes each report as a pretty-printed JSON file under a
// directory, named by cadence and period start date.
type JSONExporter struct {
	dir    string
	logger *slog.Logger
}

// NewJSONExporter creates an exporter writing into dir. The directory is
// created on first export.
func NewJSONExporter(dir string, logger *slog.Logger) *JSONExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONExporter{dir: dir, logger: logger}
}

// Export writes the report to disk.
func (e *JSONExporter) Export(ctx context.Context, r *report.PortfolioReport) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("export: failed to create report directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("export: failed to marshal report: %w", err)
	}

	name := fmt.Sprintf("portfolio_report_%s_%s.json", r.PeriodLabel, r.PeriodStart.Format("2006-01-02"))
	path := filepath.Join(e.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export: failed to write report file: %w", err)
	}

	e.logger.Info("report exported", "path", path, "bytes", len(data))
	return nil
}

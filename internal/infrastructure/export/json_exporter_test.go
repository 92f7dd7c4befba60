package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/application/report"
)

func TestJSONExporter_WritesReportFile(t *testing.T) {
	dir := t.TempDir()
	exporter := NewJSONExporter(dir, nil)

	r := &report.PortfolioReport{
		PeriodLabel: "weekly",
		PeriodStart: time.Date(2025, time.August, 11, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, time.August, 18, 0, 0, 0, 0, time.UTC),
		Deltas:      report.PeriodDeltas{NewEnrollments: 3},
	}

	require.NoError(t, exporter.Export(context.Background(), r))

	path := filepath.Join(dir, "portfolio_report_weekly_2025-08-11.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded report.PortfolioReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "weekly", decoded.PeriodLabel)
	assert.Equal(t, 3, decoded.Deltas.NewEnrollments)
}

func TestJSONExporter_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	exporter := NewJSONExporter(dir, nil)

	r := &report.PortfolioReport{
		PeriodLabel: "monthly",
		PeriodStart: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, exporter.Export(context.Background(), r))
	assert.FileExists(t, filepath.Join(dir, "portfolio_report_monthly_2025-07-01.json"))
}

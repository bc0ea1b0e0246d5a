package report

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"solarsmart/internal/model"
)

var leadHeader = []string{
	"id",
	"created_at",
	"updated_at",
	"status",
	"full_name",
	"phone",
	"email",
	"city",
	"district",
	"bill_amount",
	"roof_area_m2",
	"orientation",
	"system_size_kw",
	"panel_count",
	"estimated_cost_usd",
	"estimated_cost_local",
	"roi_years",
}

// WriteLeadsCSV writes one row per lead with a header row.
func WriteLeadsCSV(out io.Writer, leads []model.Lead) error {
	w := csv.NewWriter(out)
	if err := w.Write(leadHeader); err != nil {
		return err
	}
	for _, l := range leads {
		row := []string{
			l.ID,
			fmtTime(l.CreatedAt),
			fmtTime(l.UpdatedAt),
			string(l.Status),
			l.FullName,
			l.Phone,
			l.Email,
			l.City,
			l.District,
			fmtFloat(l.BillAmount, 2),
			fmtFloat(l.RoofArea, 2),
			l.Orientation.String(),
			fmtFloat(l.SystemSizeKW, 2),
			strconv.Itoa(l.PanelCount),
			fmtFloat(l.EstimatedCostUSD, 0),
			fmtFloat(l.EstimatedCostLocal, 0),
			fmtFloat(l.ROIYears, 1),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteLeadsCSVFile writes the export to path, creating parent directories.
func WriteLeadsCSVFile(path string, leads []model.Lead) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteLeadsCSV(f, leads)
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func fmtFloat(x float64, places int) string {
	return strconv.FormatFloat(x, 'f', places, 64)
}

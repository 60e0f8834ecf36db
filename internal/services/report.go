package services

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kubev2v/installer-driver/internal/models"
	"github.com/kubev2v/installer-driver/internal/util"
)

const runsSheet = "Runs"

var reportHeader = []string{
	"ID",
	"Operation",
	"Host",
	"Username",
	"Trust fingerprint",
	"Force",
	"Expect failure",
	"Outcome",
	"Passed",
	"Exit code",
	"Started at",
	"Duration (s)",
	"Log",
	"Error",
}

// ExportRuns writes runs to a single-sheet xlsx workbook at path.
func ExportRuns(runs []models.Run, path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", runsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	for col, title := range reportHeader {
		if err := setCell(f, col, 1, title); err != nil {
			return err
		}
	}

	for i, r := range runs {
		row := i + 2
		values := []any{
			r.ID.String(),
			string(r.Operation),
			r.Host,
			r.Username,
			r.Trust,
			r.Force,
			r.ExpectFailure,
			string(r.Outcome),
			r.Passed(),
			r.ExitCode,
			r.StartedAt.UTC().Format(time.RFC3339),
			util.Round(r.Duration().Seconds()),
			r.LogPath,
			r.Error,
		}
		for col, v := range values {
			if err := setCell(f, col, row, v); err != nil {
				return err
			}
		}
	}

	if err := f.SetPanes(runsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report %s: %w", path, err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(runsSheet, cell, value)
}

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/2beens/getfitpro/internal/workoutlog"

	"github.com/xuri/excelize/v2"
)

const logSheet = "Workout Log"

var logHeader = []any{"Completed At", "Plan ID", "Name", "Type", "Difficulty", "Duration", "Exercises", "Total Sets"}

// writeLogWorkbook stores the log entries, oldest first, as an xlsx file.
func writeLogWorkbook(entries []workoutlog.Entry, path string) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := f.SetSheetName("Sheet1", logSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(logSheet, "A1", &logHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, entry := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := logRow(entry)
		if err := f.SetSheetRow(logSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(logSheet, "A", "A", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(logSheet, "C", "C", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(logSheet, "G", "G", 60); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook [%s]: %w", path, err)
	}
	return nil
}

func logRow(entry workoutlog.Entry) []any {
	names := make([]string, 0, len(entry.Exercises))
	totalSets := 0
	for _, e := range entry.Exercises {
		names = append(names, e.Name)
		totalSets += e.Sets
	}
	return []any{
		entry.CompletedAt.UTC().Format(time.RFC3339),
		entry.ID,
		entry.Name,
		entry.Type,
		string(entry.Difficulty),
		entry.Duration,
		strings.Join(names, ", "),
		totalSets,
	}
}

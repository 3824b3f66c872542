// Package export reads and writes student rosters as Excel workbooks.
package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Belphemur/StudentService/internal/config"
	"github.com/Belphemur/StudentService/internal/models"
)

// SheetName is the sheet written by WriteStudents.
const SheetName = "Students"

var header = []any{"ID", "Name"}

// WriteStudents writes students to w as a workbook with a header row.
func WriteStudents(w io.Writer, students []models.Student) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger := config.GetLogger()
			logger.Warn().Err(err).Msg("Failed to close workbook")
		}
	}()

	// Rename the default sheet instead of adding a second one
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, st := range students {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{st.ID, st.Name}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ReadStudents reads students from the first sheet of the workbook in r.
// Column A holds the id and column B the name; the first row is a header.
// Rows without a name are skipped. A blank or non-numeric id reads as 0 so
// the server assigns one.
func ReadStudents(r io.Reader) ([]models.Student, error) {
	logger := config.GetLogger()

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close workbook")
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.New("excel file does not contain any sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)
	}

	students := make([]models.Student, 0, max(len(rows)-1, 0))
	for i, row := range rows {
		if i == 0 {
			continue
		}

		var rawID, name string
		if len(row) > 0 {
			rawID = strings.TrimSpace(row[0])
		}
		if len(row) > 1 {
			name = strings.TrimSpace(row[1])
		}
		if name == "" {
			logger.Debug().Int("row", i+1).Msg("Skipping row without a name")
			continue
		}

		id, err := strconv.Atoi(rawID)
		if err != nil {
			id = 0
		}
		students = append(students, models.Student{ID: id, Name: name})
	}

	return students, nil
}

package pets

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "pets"

var exportHeader = []string{"id", "name", "type", "birth_date", "user_id", "created_at", "expires_at", "images"}

// ExportXLSX escribe una planilla con una fila por registro (sin las imágenes, solo la cantidad).
func ExportXLSX(w io.Writer, records []PetRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, h := range exportHeader {
		if err := setCell(f, col+1, 1, h); err != nil {
			return err
		}
	}

	for i, r := range records {
		row := i + 2
		birth := ""
		if r.BirthDate != nil {
			birth = r.BirthDate.Format(birthDateLayout)
		}
		values := []any{
			r.ID,
			r.Name,
			r.Type,
			birth,
			r.UserID,
			r.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			r.ExpiresAt.UTC().Format("2006-01-02 15:04:05"),
			len(r.Images),
		}
		for col, v := range values {
			if err := setCell(f, col+1, row, v); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(exportSheet, cell, v)
}

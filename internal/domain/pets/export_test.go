package pets

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func TestExportXLSX(t *testing.T) {
	created := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	bd := time.Date(2019, 9, 9, 0, 0, 0, 0, time.UTC)
	records := []PetRecord{
		{ID: "a", Name: "Rex", Type: "Cachorro", BirthDate: &bd, UserID: "u1", Images: []string{"x", "y"}, CreatedAt: created, ExpiresAt: ExpiresAt(created)},
		{ID: "b", Name: "Mia", Type: "Gato", UserID: "u2", Images: []string{"z"}, CreatedAt: created, ExpiresAt: ExpiresAt(created)},
	}

	var buf bytes.Buffer
	if err := ExportXLSX(&buf, records); err != nil {
		t.Fatalf("ExportXLSX error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("pets")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "id" || rows[1][1] != "Rex" || rows[1][3] != "2019-09-09" || rows[1][7] != "2" {
		t.Fatalf("unexpected rows: %#v", rows)
	}
	if rows[2][3] != "" || rows[2][6] != "2026-04-01 08:00:00" {
		t.Fatalf("unexpected second row: %#v", rows[2])
	}
}

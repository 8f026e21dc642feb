package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExcelExportRoundTrip(t *testing.T) {
	wb := &Workbook{
		Title: "Availability",
		Style: DefaultStyle(),
		Sheets: []Sheet{
			{Name: "KPIs", Headers: []string{"Metric", "Value"}, Rows: [][]interface{}{{"skusTracked", 3}, {"coverage", 67}}},
			{Name: "Raw Data", Headers: []string{"Name", "City"}, Rows: [][]interface{}{{"Chips", "Mumbai"}}, ColumnWidths: map[int]float64{1: 30}},
		},
	}

	var buf bytes.Buffer
	exp := NewExcelExporter()
	if err := exp.Export(wb, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 2 || got[0] != "KPIs" || got[1] != "Raw Data" {
		t.Fatalf("sheets: got %v", got)
	}
	rows, err := f.GetRows("KPIs")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 || rows[0][0] != "Metric" || rows[2][0] != "coverage" || rows[2][1] != "67" {
		t.Errorf("KPIs rows: got %v", rows)
	}
}

func TestExcelExportRejectsEmptyWorkbook(t *testing.T) {
	var buf bytes.Buffer
	if err := NewExcelExporter().Export(&Workbook{}, &buf); err == nil {
		t.Error("expected error for a workbook without sheets")
	}
}

func TestSheetName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Brand Coverage", "Brand Coverage"},
		{"a/b:c", "a_b_c"},
		{"", "Sheet3"},
		{"abcdefghijklmnopqrstuvwxyz0123456789", "abcdefghijklmnopqrstuvwxyz01234"},
	}
	for _, tt := range tests {
		if got := sheetName(tt.in, 2); got != tt.want {
			t.Errorf("sheetName(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const maxSheetNameLen = 31

// ExcelExporter writes workbooks as .xlsx using excelize stream writers,
// so a large raw sheet is never held as a cell map
type ExcelExporter struct{}

// NewExcelExporter creates a new Excel exporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export writes every sheet of wb to w
func (e *ExcelExporter) Export(wb *Workbook, w io.Writer) error {
	if len(wb.Sheets) == 0 {
		return fmt.Errorf("workbook has no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	created := wb.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   wb.Title,
		Creator: wb.Author,
		Created: created.UTC().Format(time.RFC3339),
	}); err != nil {
		return fmt.Errorf("failed to set document properties: %w", err)
	}

	headerStyle, err := e.createHeaderStyle(f, wb.Style)
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sheet := range wb.Sheets {
		name := sheetName(sheet.Name, i)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("failed to rename first sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", name, err)
		}

		if err := e.writeSheet(f, name, sheet, wb.Style, headerStyle); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func (e *ExcelExporter) writeSheet(f *excelize.File, name string, sheet Sheet, style Style, headerStyle int) error {
	sw, err := f.NewStreamWriter(name)
	if err != nil {
		return fmt.Errorf("failed to open stream writer for %q: %w", name, err)
	}

	// Column widths and panes must be set before the first row
	for col, width := range sheet.ColumnWidths {
		if err := sw.SetColWidth(col, col, width); err != nil {
			return fmt.Errorf("failed to set column width on %q: %w", name, err)
		}
	}
	if style.FreezeHeader && len(sheet.Headers) > 0 {
		if err := sw.SetPanes(&excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("failed to freeze header on %q: %w", name, err)
		}
	}

	row := 1
	if len(sheet.Headers) > 0 {
		header := make([]interface{}, len(sheet.Headers))
		for i, h := range sheet.Headers {
			header[i] = h
		}
		if err := sw.SetRow("A1", header, excelize.RowOpts{StyleID: headerStyle}); err != nil {
			return fmt.Errorf("failed to write header on %q: %w", name, err)
		}
		row++
	}

	for _, values := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("failed to write row %d on %q: %w", row, name, err)
		}
		row++
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush %q: %w", name, err)
	}
	return nil
}

// ContentType returns the MIME type for Excel files
func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileExtension returns the file extension for Excel files
func (e *ExcelExporter) FileExtension() string {
	return ".xlsx"
}

// createHeaderStyle creates the header style
func (e *ExcelExporter) createHeaderStyle(f *excelize.File, style Style) (int, error) {
	headerStyle := &excelize.Style{
		Font: &excelize.Font{
			Bold:   style.HeaderBold,
			Size:   style.FontSize,
			Family: style.FontFamily,
			Color:  "FFFFFF",
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	}
	if style.HeaderBgColor != "" {
		headerStyle.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{strings.TrimPrefix(style.HeaderBgColor, "#")},
		}
	}

	return f.NewStyle(headerStyle)
}

// sheetName makes a name excelize accepts: no reserved characters, at most 31 runes
func sheetName(name string, index int) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		name = fmt.Sprintf("Sheet%d", index+1)
	}
	if runes := []rune(name); len(runes) > maxSheetNameLen {
		name = string(runes[:maxSheetNameLen])
	}
	return name
}

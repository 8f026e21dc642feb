package export

import (
	"io"
	"time"
)

// Exporter writes a workbook in one file format
type Exporter interface {
	Export(wb *Workbook, w io.Writer) error
	ContentType() string
	FileExtension() string
}

// Workbook is a set of named tables written as one document
type Workbook struct {
	Title     string
	Author    string
	CreatedAt time.Time
	Sheets    []Sheet
	Style     Style
}

// Sheet is one table of the workbook. Rows are written in order; nil cells stay empty.
type Sheet struct {
	Name         string
	Headers      []string
	Rows         [][]interface{}
	ColumnWidths map[int]float64 // 1-based column -> width
}

// Style defines the table styling shared by every sheet
type Style struct {
	HeaderBold    bool
	HeaderBgColor string // Hex color
	FontFamily    string
	FontSize      float64
	FreezeHeader  bool
}

// DefaultStyle returns default export styling
func DefaultStyle() Style {
	return Style{
		HeaderBold:    true,
		HeaderBgColor: "#4472C4",
		FontFamily:    "Arial",
		FontSize:      10,
		FreezeHeader:  true,
	}
}

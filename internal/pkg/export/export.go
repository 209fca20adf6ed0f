// Package export renders tabular reports as downloadable files.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// File is a rendered attachment ready to be written to a response.
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Table is a header row plus data rows. Cells are written as-is; nil becomes an empty cell.
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]any
}

func CSV(filename string, table Table) (File, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	if err := w.Write(table.Header); err != nil {
		return File{}, fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(table.Header))
	for _, row := range table.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) && row[i] != nil {
				record[i] = fmt.Sprint(row[i])
			}
		}
		if err := w.Write(record); err != nil {
			return File{}, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return File{}, fmt.Errorf("flush csv: %w", err)
	}

	return File{Filename: filename, ContentType: ContentTypeCSV, Content: buf.Bytes()}, nil
}

func XLSX(filename string, table Table) (File, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := table.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return File{}, fmt.Errorf("create sheet: %w", err)
		}
		f.SetActiveSheet(idx)
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return File{}, fmt.Errorf("delete default sheet: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#ADD8E6"}, Pattern: 1},
	})
	if err != nil {
		return File{}, fmt.Errorf("create header style: %w", err)
	}

	for i, title := range table.Header {
		col := colName(i)
		if err := f.SetCellValue(sheet, col+"1", title); err != nil {
			return File{}, err
		}
		if err := f.SetColWidth(sheet, col, col, colWidth(title)); err != nil {
			return File{}, err
		}
	}
	if len(table.Header) > 0 {
		last := colName(len(table.Header)-1) + "1"
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return File{}, err
		}
	}

	for r, row := range table.Rows {
		for c, value := range row {
			if value == nil {
				continue
			}
			cell := fmt.Sprintf("%s%d", colName(c), r+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return File{}, err
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return File{}, fmt.Errorf("write xlsx: %w", err)
	}

	return File{Filename: filename, ContentType: ContentTypeXLSX, Content: buf.Bytes()}, nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func colWidth(title string) float64 {
	if w := float64(len(title) + 6); w > 20 {
		return w
	}
	return 20
}

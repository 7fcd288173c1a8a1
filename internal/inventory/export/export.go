// Package export renders inventory rows as downloadable CSV or XLSX documents.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheetName  = "Inventory"
	dateLayout = "2006-01-02"
)

var Header = []string{
	"ID", "ItemSKU", "ProductName", "Category", "WarehouseLocation", "RackLocation",
	"QuantityInStock", "ReorderLevel", "UnitOfMeasure", "CostPerUnit", "TotalValue", "LastRestocked",
}

// FileName stamps the export with the given time, e.g. Inventory_Export_20240301_093000.csv.
func FileName(now time.Time, format string) string {
	return fmt.Sprintf("Inventory_Export_%s.%s", now.Format("20060102_150405"), format)
}

// WriteCSV writes the header and one line per item. Every field is quoted.
func WriteCSV(w io.Writer, items []model.Inventory) error {
	bw := bufio.NewWriter(w)
	writeLine(bw, Header)
	for i := range items {
		writeLine(bw, record(&items[i]))
	}
	return bw.Flush()
}

func writeLine(w *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(f, `"`, `""`))
		w.WriteByte('"')
	}
	w.WriteString("\r\n")
}

func record(item *model.Inventory) []string {
	return []string{
		strconv.FormatInt(item.ID, 10),
		item.ItemSKU,
		item.ProductName,
		item.Category,
		item.WarehouseLocation,
		item.RackLocation,
		strconv.Itoa(item.QuantityInStock),
		strconv.Itoa(item.ReorderLevel),
		item.UnitOfMeasure,
		item.CostPerUnit.StringFixed(2),
		item.TotalValue.StringFixed(2),
		item.LastRestocked.UTC().Format(dateLayout),
	}
}

// WriteXLSX writes a single-sheet workbook with the same columns as the CSV.
// Quantities and money are stored as numbers.
func WriteXLSX(w io.Writer, items []model.Inventory) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}

	for i := range items {
		item := &items[i]
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			item.ID,
			item.ItemSKU,
			item.ProductName,
			item.Category,
			item.WarehouseLocation,
			item.RackLocation,
			item.QuantityInStock,
			item.ReorderLevel,
			item.UnitOfMeasure,
			item.CostPerUnit.InexactFloat64(),
			item.TotalValue.InexactFloat64(),
			item.LastRestocked.UTC().Format(dateLayout),
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}

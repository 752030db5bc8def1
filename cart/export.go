package cart

import (
	"fmt"
	"io"
	"time"

	"storefront/formatter"
	"storefront/models"

	"github.com/360EntSecGroup-Skylar/excelize/v2"
)

const exportSheet = "Cart"

var (
	headerStyle = `
	{
		"border": [
			{"type": "left", "color": "#000000", "style": 1},
			{"type": "top", "color": "#000000", "style": 1},
			{"type": "right", "color": "#000000", "style": 1},
			{"type": "bottom", "color": "#000000", "style": 1}
		],
		"fill": {
			"type": "pattern",
			"pattern": 1,
			"color": ["#1976d2"]
		},
		"font": {
			"bold": true,
			"color": "#ffffff"
		},
		"alignment": {
			"shrink_to_fit": true,
			"horizontal": "center"
		}
	}
	`
	dataStyle = `
	{
		"border": [
			{"type": "left", "color": "#000000", "style": 1},
			{"type": "top", "color": "#000000", "style": 1},
			{"type": "right", "color": "#000000", "style": 1},
			{"type": "bottom", "color": "#000000", "style": 1}
		],
		"fill": {
			"type": "pattern",
			"pattern": 1
		},
		"alignment": {
			"shrink_to_fit": true
		}
	}
	`
)

// ExportFileName is the attachment name of a cart report generated at t.
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("cart_%s.xlsx", t.Format("20060102_150405"))
}

// Export writes items as a spreadsheet with a total row at the bottom.
func Export(w io.Writer, items []models.CartItem, currency string) error {
	f := excelize.NewFile()

	f.NewSheet(exportSheet)
	// delete default sheet
	f.DeleteSheet("Sheet1")

	if err := f.SetColWidth(exportSheet, "A", "E", 40); err != nil {
		return err
	}

	header, err := f.NewStyle(headerStyle)
	if err != nil {
		return err
	}

	data, err := f.NewStyle(dataStyle)
	if err != nil {
		return err
	}

	streamWriter, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		return err
	}

	if err = streamWriter.SetRow("A1", []interface{}{
		excelize.Cell{StyleID: header, Value: "Id"},
		excelize.Cell{StyleID: header, Value: "Name"},
		excelize.Cell{StyleID: header, Value: "Price"},
		excelize.Cell{StyleID: header, Value: "Image"},
		excelize.Cell{StyleID: header, Value: "Added At"}}); err != nil {
		return err
	}

	for n, item := range items {
		row := make([]interface{}, 5)
		row[0] = excelize.Cell{StyleID: data, Value: item.Id}
		row[1] = excelize.Cell{StyleID: data, Value: item.Name}
		row[2] = excelize.Cell{StyleID: data, Value: formatter.Currency(item.Price, currency)}
		row[3] = excelize.Cell{StyleID: data, Value: item.ImageUrl}
		row[4] = excelize.Cell{StyleID: data, Value: item.AddedAt.UTC().Format("2006-01-02 15:04:05")}

		cell, _ := excelize.CoordinatesToCellName(1, n+2)
		if err = streamWriter.SetRow(cell, row); err != nil {
			return err
		}
	}

	total, _ := Total(items).Float64()
	cell, _ := excelize.CoordinatesToCellName(2, len(items)+2)
	if err = streamWriter.SetRow(cell, []interface{}{
		excelize.Cell{StyleID: header, Value: "Total"},
		excelize.Cell{StyleID: header, Value: formatter.Currency(total, currency)}}); err != nil {
		return err
	}

	if err := streamWriter.Flush(); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}

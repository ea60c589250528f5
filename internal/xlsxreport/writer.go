// =============================================================================
// X3 Flat Bridge - XLSX Report Writer
// =============================================================================
//
// Renders decoded exports into XLSX workbooks for the people who actually
// read them: sales reps checking the catalog, back office reviewing open
// orders. Each report is a small fixed layout - a header row, one row per
// entity - rather than a configurable template.
//
// SHEET LAYOUT:
//   Materials workbook:
//     "Items"  - one row per material with its units, weight and status
//     "Stock"  - one row per party/stock entry, keyed by item code
//   Orders workbook:
//     "Documents" - one row per order document header
//     "Lines"     - one row per order line, keyed by document number
//
// =============================================================================

package xlsxreport

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/X3-flat-bridge/internal/types"
)

// column converts a 0-based column index and 1-based row to a cell name
// ("A1", "B3", ...).
func column(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}

// writeRow writes one row of values starting at column A.
func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, value := range values {
		if err := f.SetCellValue(sheet, column(col, row), value); err != nil {
			return fmt.Errorf("failed to write cell %s!%s: %w", sheet, column(col, row), err)
		}
	}
	return nil
}

// newWorkbook creates a workbook whose first sheet carries the given name
// instead of excelize's default "Sheet1".
func newWorkbook(firstSheet string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", firstSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet %q: %w", firstSheet, err)
	}
	return f, nil
}

// =============================================================================
// MATERIALS REPORT
// =============================================================================

// WriteMaterials writes the material catalog report to filePath.
func WriteMaterials(materials []types.Material, filePath string) error {
	f, err := newWorkbook("Items")
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.NewSheet("Stock"); err != nil {
		return fmt.Errorf("failed to add Stock sheet: %w", err)
	}

	itemHeader := []interface{}{
		"Item Code", "Description", "Family", "Category",
		"Base UoM", "Sales UoM", "Purchase UoM", "Weight",
		"Min Stock", "Sales Price", "Status",
	}
	if err := writeRow(f, "Items", 1, itemHeader); err != nil {
		return err
	}

	stockHeader := []interface{}{
		"Item Code", "Plant", "Location", "Stock Status", "On Hand", "UoM",
	}
	if err := writeRow(f, "Stock", 1, stockHeader); err != nil {
		return err
	}

	stockRow := 2
	for i, material := range materials {
		var price interface{}
		if material.SalesPrice != nil {
			price = *material.SalesPrice
		} else {
			price = ""
		}

		row := []interface{}{
			material.ItemCode, material.Description, material.Family, material.Category,
			material.BaseUoM, material.SalesUoM, material.PurchaseUoM, material.WeightPerUoM,
			material.MinStockLevel, price, material.Status,
		}
		if err := writeRow(f, "Items", i+2, row); err != nil {
			return err
		}

		for _, party := range material.Parties {
			entry := []interface{}{
				material.ItemCode, party.Plant, party.Location,
				party.StockStatus, party.OnHandQty, party.UoM,
			}
			if err := writeRow(f, "Stock", stockRow, entry); err != nil {
				return err
			}
			stockRow++
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save materials report: %w", err)
	}
	return nil
}

// =============================================================================
// ORDERS REPORT
// =============================================================================

// WriteOrders writes the order documents report to filePath.
func WriteOrders(documents []types.OrderDocument, filePath string) error {
	f, err := newWorkbook("Documents")
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.NewSheet("Lines"); err != nil {
		return fmt.Errorf("failed to add Lines sheet: %w", err)
	}

	documentHeader := []interface{}{
		"Number", "Site", "Type", "Customer", "Date", "Reference", "Currency", "Line Count",
	}
	if err := writeRow(f, "Documents", 1, documentHeader); err != nil {
		return err
	}

	lineHeader := []interface{}{
		"Document", "Item Code", "Description", "UoM", "Quantity", "Price",
	}
	if err := writeRow(f, "Lines", 1, lineHeader); err != nil {
		return err
	}

	lineRow := 2
	for i, doc := range documents {
		row := []interface{}{
			doc.Number, doc.Site, doc.Type, doc.Customer,
			doc.Date, doc.Reference, doc.Currency, len(doc.Lines),
		}
		if err := writeRow(f, "Documents", i+2, row); err != nil {
			return err
		}

		for _, line := range doc.Lines {
			entry := []interface{}{
				doc.Number, line.Code, line.Description,
				line.Unit, line.Quantity, line.Price,
			}
			if err := writeRow(f, "Lines", lineRow, entry); err != nil {
				return err
			}
			lineRow++
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save orders report: %w", err)
	}
	return nil
}

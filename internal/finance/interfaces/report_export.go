package interfaces

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	finance "freightops/internal/finance/domain"
	"freightops/internal/observability/metrics"
)

// BuildAgingXLSX renders an aging report as an XLSX workbook.
func BuildAgingXLSX(report finance.AgingReport) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "aging"
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetCellValue(sheet, "A1", "Receivables Aging Report")
	_ = f.SetCellValue(sheet, "A2", "As of")
	_ = f.SetCellValue(sheet, "B2", report.AsOf.Format("2006-01-02"))
	_ = f.SetCellValue(sheet, "A3", "Total")
	_ = f.SetCellValue(sheet, "B3", report.TotalAmount)
	_ = f.SetCellValue(sheet, "A4", "Overdue")
	_ = f.SetCellValue(sheet, "B4", report.OverdueAmount)

	_ = f.SetCellValue(sheet, "A6", "Bucket")
	_ = f.SetCellValue(sheet, "B6", "Amount")
	_ = f.SetCellValue(sheet, "C6", "Count")
	_ = f.SetCellValue(sheet, "D6", "Share (%)")
	for i, bucket := range report.Buckets {
		row := i + 7
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), bucket.Label)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), bucket.Amount)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), bucket.Count)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), bucket.Percentage)
	}

	var buf bytes.Buffer
	err := f.Write(&buf)
	metrics.IncReportExport("xlsx", err)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildAllocationXLSX renders an allocation run as an XLSX workbook.
func BuildAllocationXLSX(result finance.AllocationResult, runAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	itemsSheet := "allocations"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(itemsSheet)

	_ = f.SetCellValue(summarySheet, "A1", "Payment Allocation Statement")
	_ = f.SetCellValue(summarySheet, "A3", "Run at")
	_ = f.SetCellValue(summarySheet, "B3", runAt.Format(time.RFC3339))
	_ = f.SetCellValue(summarySheet, "A4", "Total allocated")
	_ = f.SetCellValue(summarySheet, "B4", result.TotalAllocated)
	_ = f.SetCellValue(summarySheet, "A5", "Remaining advance balance")
	_ = f.SetCellValue(summarySheet, "B5", result.RemainingAdvanceBalance)

	_ = f.SetCellValue(itemsSheet, "A1", "Invoice")
	_ = f.SetCellValue(itemsSheet, "B1", "Payment")
	_ = f.SetCellValue(itemsSheet, "C1", "Amount")
	_ = f.SetCellValue(itemsSheet, "D1", "Currency")
	_ = f.SetCellValue(itemsSheet, "E1", "Kind")
	for i, allocation := range result.Allocations {
		row := i + 2
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("A%d", row), allocation.InvoiceID)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("B%d", row), allocation.PaymentID)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("C%d", row), allocation.Amount)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("D%d", row), allocation.Currency)
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("E%d", row), string(allocation.Kind))
	}

	var buf bytes.Buffer
	err := f.Write(&buf)
	metrics.IncReportExport("xlsx", err)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

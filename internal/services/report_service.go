package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"roastery-backend/internal/models"
)

// ReportService renders the period sales report as PDF or CSV for
// download from the stats screen.
type ReportService struct {
	Stats        *StatsService
	Transactions *TransactionService
}

func NewReportService(stats *StatsService, transactions *TransactionService) *ReportService {
	return &ReportService{Stats: stats, Transactions: transactions}
}

func periodLabel(filter models.StatsFilter) string {
	format := func(t *time.Time) string {
		if t == nil {
			return "..."
		}
		return t.Format("02-Jan-2006")
	}
	return fmt.Sprintf("%s to %s", format(filter.From), format(filter.To))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// GeneratePeriodPDF renders the full stats report for the period.
func (s *ReportService) GeneratePeriodPDF(ctx context.Context, filter models.StatsFilter) ([]byte, error) {
	report, err := s.Stats.Report(ctx, filter)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Roastery - Sales Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Period: %s", periodLabel(filter)), "", 1, "C", false, 0, "")
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", time.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Revenue Summary Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Revenue", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(63, 8, fmt.Sprintf("Sales: %d", report.Revenue.Count), "1", 0, "C", false, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Gross: %s", report.Revenue.Gross.StringFixed(2)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Net: %s", report.Revenue.Net.StringFixed(2)), "1", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Payment Methods
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Payment Methods", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(40, 7, "Method", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Total", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Cash", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Card", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Count", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, p := range report.Payments {
		pdf.CellFormat(40, 6, strings.ToUpper(string(p.Method)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, p.Total.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, p.Cash.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, p.Card.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", p.Count), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	// Categories
	if len(report.Categories) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(190, 8, "Revenue by Category", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(100, 7, "Category", "1", 0, "C", true, 0, "")
		pdf.CellFormat(50, 7, "Revenue", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Qty", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, c := range report.Categories {
			pdf.CellFormat(100, 6, truncate(c.CategoryName, 45), "1", 0, "L", false, 0, "")
			pdf.CellFormat(50, 6, c.Revenue.StringFixed(2), "1", 0, "R", false, 0, "")
			pdf.CellFormat(40, 6, fmt.Sprintf("%d", c.Quantity), "1", 1, "C", false, 0, "")
		}
		pdf.Ln(5)
	}

	// Top Products
	if len(report.Products) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(190, 8, "Top Products", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(12, 7, "#", "1", 0, "C", true, 0, "")
		pdf.CellFormat(88, 7, "Product", "1", 0, "C", true, 0, "")
		pdf.CellFormat(50, 7, "Revenue", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Qty", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for i, p := range report.Products {
			// Alternate row colors
			if i%2 == 0 {
				pdf.SetFillColor(255, 255, 255)
			} else {
				pdf.SetFillColor(245, 245, 245)
			}
			pdf.CellFormat(12, 6, fmt.Sprintf("%d", i+1), "1", 0, "C", true, 0, "")
			pdf.CellFormat(88, 6, truncate(p.ProductName, 40), "1", 0, "L", true, 0, "")
			pdf.CellFormat(50, 6, p.Revenue.StringFixed(2), "1", 0, "R", true, 0, "")
			pdf.CellFormat(40, 6, fmt.Sprintf("%d", p.Quantity), "1", 1, "C", true, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GeneratePeriodCSV exports the same report as CSV.
func (s *ReportService) GeneratePeriodCSV(ctx context.Context, filter models.StatsFilter) ([]byte, error) {
	report, err := s.Stats.Report(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Sales Report", periodLabel(filter)})
	w.Write([]string{""})
	w.Write([]string{"Sales", fmt.Sprintf("%d", report.Revenue.Count)})
	w.Write([]string{"Gross Revenue", report.Revenue.Gross.StringFixed(2)})
	w.Write([]string{"Net Revenue", report.Revenue.Net.StringFixed(2)})
	w.Write([]string{""})

	w.Write([]string{"Method", "Total", "Cash", "Card", "Count"})
	for _, p := range report.Payments {
		w.Write([]string{
			string(p.Method),
			p.Total.StringFixed(2),
			p.Cash.StringFixed(2),
			p.Card.StringFixed(2),
			fmt.Sprintf("%d", p.Count),
		})
	}
	w.Write([]string{""})

	w.Write([]string{"Category", "Revenue", "Qty"})
	for _, c := range report.Categories {
		w.Write([]string{c.CategoryName, c.Revenue.StringFixed(2), fmt.Sprintf("%d", c.Quantity)})
	}
	w.Write([]string{""})

	w.Write([]string{"#", "Product", "Revenue", "Qty"})
	for i, p := range report.Products {
		w.Write([]string{
			fmt.Sprintf("%d", i+1),
			p.ProductName,
			p.Revenue.StringFixed(2),
			fmt.Sprintf("%d", p.Quantity),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateTransactionsCSV exports the raw transaction list for the
// period.
func (s *ReportService) GenerateTransactionsCSV(ctx context.Context, filter models.TransactionFilter) ([]byte, error) {
	txns, err := s.Transactions.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"ID", "Date", "Kind", "Customer", "Amount", "Discount %", "Final", "Payment", "Cash", "Card"})
	for _, t := range txns {
		customer := t.CustomerName
		if customer == "" {
			customer = "anonymous"
		}
		w.Write([]string{
			fmt.Sprintf("%d", t.ID),
			t.CreatedAt.Format("02-Jan-2006 15:04"),
			string(t.Kind),
			customer,
			t.Amount.StringFixed(2),
			fmt.Sprintf("%d", t.DiscountPercent),
			t.FinalAmount.StringFixed(2),
			string(t.PaymentMethod),
			t.CashAmount.StringFixed(2),
			t.CardAmount.StringFixed(2),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

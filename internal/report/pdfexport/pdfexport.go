// Package pdfexport renders a PerformanceReport as a one-page PDF summary,
// recovering the human-readable summary the original CLI tool printed to
// the terminal.
package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/fashionforward/latam-router/internal/domain"
)

// Render produces the PDF bytes for report.
func Render(report domain.PerformanceReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(16, 110, 190)
	pdf.CellFormat(190, 12, "Payment Routing Performance Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(190, 8, fmt.Sprintf("Strategy: %s", report.RoutingStrategy), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(190, 9, "Scenario Comparison", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(229, 231, 235)
	pdf.CellFormat(70, 7, "Metric", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 7, "No Retry", "1", 0, "R", true, 0, "")
	pdf.CellFormat(60, 7, "Smart Retry", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	writeMetricRow(pdf, "Authorization rate (%)", report.WithoutRetry.AuthorizationRate, report.WithRetry.AuthorizationRate)
	writeMetricRow(pdf, "Avg attempts", report.WithoutRetry.AvgAttempts, report.WithRetry.AvgAttempts)
	writeMetricRow(pdf, "Avg latency (ms)", report.WithoutRetry.AvgLatencyMs, report.WithRetry.AvgLatencyMs)

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(190, 9, "Improvement", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(190, 7, fmt.Sprintf("Rate lift: %.2f pp", report.Improvement.RateLiftPercentage), "", 1, "L", false, 0, "")
	pdf.CellFormat(190, 7, fmt.Sprintf("Additional approvals: %d", report.Improvement.AdditionalApprovals), "", 1, "L", false, 0, "")
	pdf.CellFormat(190, 7, fmt.Sprintf("Estimated revenue recovered: $%.2f", report.Improvement.EstimatedRevenueRecoveredUsd), "", 1, "L", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(190, 9, "By Country", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(229, 231, 235)
	pdf.CellFormat(70, 7, "Country", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 7, "No Retry %", "1", 0, "R", true, 0, "")
	pdf.CellFormat(60, 7, "Smart %", "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, cm := range report.ByCountry {
		pdf.CellFormat(70, 7, string(cm.Country), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, fmt.Sprintf("%.2f", cm.NoRetryApprovalRate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(60, 7, fmt.Sprintf("%.2f", cm.SmartApprovalRate), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(190, 9, "By PSP (smart retry)", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(229, 231, 235)
	pdf.CellFormat(70, 7, "PSP", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, "Attempts", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, "Approval %", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, "Avg Latency", "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, pm := range report.ByPsp {
		pdf.CellFormat(70, 7, pm.PspName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%d", pm.TotalAttempts), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", pm.ApprovalRate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.0fms", pm.AvgLatencyMs), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeMetricRow(pdf *gofpdf.Fpdf, label string, noRetry, smart float64) {
	pdf.CellFormat(70, 7, label, "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 7, fmt.Sprintf("%.2f", noRetry), "1", 0, "R", false, 0, "")
	pdf.CellFormat(60, 7, fmt.Sprintf("%.2f", smart), "1", 1, "R", false, 0, "")
}

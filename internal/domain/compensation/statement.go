package compensation

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

func (s *Service) StatementPDF(ctx context.Context, w io.Writer, tenantID, employeeID string, year int) (BonusResult, error) {
	result, err := s.EmployeeBonus(ctx, tenantID, employeeID, year)
	if err != nil {
		return BonusResult{}, err
	}
	if err := WriteStatementPDF(w, result); err != nil {
		return BonusResult{}, err
	}
	return result, nil
}

// WriteStatementPDF renders a one-page bonus statement.
func WriteStatementPDF(w io.Writer, result BonusResult) error {
	r := result.Rounded()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Bonus statement %d", r.Year))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	line := func(format string, args ...any) {
		pdf.Cell(0, 8, fmt.Sprintf(format, args...))
		pdf.Ln(7)
	}
	name := r.EmployeeName
	if name == "" {
		name = r.EmployeeID
	}
	line("Employee: %s", name)
	category := fmt.Sprintf("%d", r.Weights.Category)
	if r.Weights.Defaulted {
		category += " (default)"
	}
	line("Seniority category: %s", category)
	weights := r.Weights.Weights
	line("Weights: company %.0f%% (billing %.0f%%, NPS %.0f%%), personal %.0f%%", weights.Company, weights.Billing, weights.NPS, weights.Area)
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	line("Corporate objectives")
	pdf.SetFont("Helvetica", "", 12)
	billing := r.Corporate.Billing
	if billing.Status == ScoreStatusNotConfigured {
		line("Billing: not configured")
	} else {
		gate := "gate met"
		if !billing.GateMet {
			gate = "gate not met"
		}
		line("Billing: %.2f%% attained, %s (%.0f%%), completion %.2f%%", billing.RawCompletion, gate, billing.GatePercentage, billing.Completion)
	}
	if r.Corporate.NPS.Status == ScoreStatusNotConfigured {
		line("NPS: not configured")
	} else {
		line("NPS: average %.2f%% over %d quarter(s)", r.Corporate.NPS.AverageCompletion, r.Corporate.NPS.QuartersWithData)
	}
	line("Corporate total: %.2f%%", r.Corporate.TotalCompletion)
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	line("Personal objectives (%d/%d evaluated)", r.Personal.EvaluatedCount, r.Personal.TotalCount)
	pdf.SetFont("Helvetica", "", 12)
	for _, objective := range r.Personal.Objectives {
		line("- %s: %.0f%%", objective.Title, objective.Progress)
	}
	if r.Personal.Status == ScoreStatusOK {
		line("Average: %.2f%%", r.Personal.AverageCompletion)
	}
	pdf.Ln(3)

	if r.ProRata.Applies {
		line("Pro-rata: %d month(s), %.2f%%", r.ProRata.Months, r.ProRata.Percentage)
	}
	pdf.SetFont("Helvetica", "B", 14)
	if r.Payable() {
		line("Bonus payable: %.2f%%", *r.Final)
	} else {
		line("Bonus: %s", statusLabel(r.Status))
	}

	return pdf.Output(w)
}

func statusLabel(status BonusStatus) string {
	switch status {
	case BonusStatusPendingEvaluation:
		return "pending personal evaluation"
	case BonusStatusNoObjectives:
		return "no personal objectives"
	case BonusStatusNotEmployed:
		return "not employed in this year"
	}
	return strings.ReplaceAll(string(status), "_", " ")
}

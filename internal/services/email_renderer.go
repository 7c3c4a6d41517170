package services

import (
	"fmt"
	"html"
	"strings"

	"github.com/rocjay1/card-advisor/internal/models"
)

// RenderErrorSection renders the skipped-rows warning. It is empty when there are no errors.
func RenderErrorSection(errors []string) string {
	if len(errors) == 0 {
		return ""
	}

	var items strings.Builder
	for _, e := range errors {
		fmt.Fprintf(&items, "<li>%s</li>", html.EscapeString(e))
	}

	return fmt.Sprintf(`
		<div style="background-color: #fff4f4; border-left: 5px solid #d13438; padding: 15px; margin-bottom: 20px;">
			<h3 style="color: #d13438; margin-top: 0; font-size: 18px;">Some rows were skipped</h3>
			<ul style="margin-bottom: 0; padding-left: 20px;">%s</ul>
		</div>
	`, items.String())
}

// RenderReportRows renders one table row per client report.
func RenderReportRows(reports []models.Report) string {
	var rows strings.Builder
	for _, r := range reports {
		var recs []string
		for _, rec := range r.Recommendations {
			recs = append(recs, fmt.Sprintf("%s (priority %d)", html.EscapeString(rec.Service), rec.Priority))
		}
		if len(recs) == 0 {
			recs = append(recs, "No recommendations")
		}
		fmt.Fprintf(&rows, `<tr><td style="padding: 6px;">%s</td><td style="padding: 6px; text-align: right;">%d</td><td style="padding: 6px;">%s</td></tr>`,
			html.EscapeString(r.ClientID), r.TransactionCount, strings.Join(recs, "<br>"))
	}
	return rows.String()
}

// RenderSummaryBody renders the full HTML body for a batch summary email.
func RenderSummaryBody(summary models.BatchSummary) string {
	return fmt.Sprintf(`
		<html>
		<body style="font-family: 'Segoe UI', sans-serif; color: #333; line-height: 1.6; background-color: #f4f4f4; margin: 0; padding: 20px;">
			<div style="max-width: 700px; margin: 0 auto; background: white; border-radius: 8px; overflow: hidden;">
				<div style="background-color: #0078d4; padding: 20px; text-align: center; color: white;">
					<h2 style="margin: 0;">Batch Analysis Complete</h2>
				</div>
				<div style="padding: 20px;">
					<p>Batch <b>%s</b> produced recommendations for %d clients.</p>
					%s
					<table style="width: 100%%; border-collapse: collapse;">
						<tr><th style="text-align: left;">Client</th><th style="text-align: right;">Transactions</th><th style="text-align: left;">Recommendations</th></tr>
						%s
					</table>
				</div>
			</div>
		</body>
		</html>
	`, html.EscapeString(summary.BatchID), len(summary.Reports), RenderErrorSection(summary.Errors), RenderReportRows(summary.Reports))
}

// RenderErrorBody renders the full HTML body for a failed batch.
func RenderErrorBody(errors []string) string {
	return fmt.Sprintf(`
		<html>
		<body style="font-family: 'Segoe UI', sans-serif; color: #333; line-height: 1.6; background-color: #f4f4f4; margin: 0; padding: 20px;">
			<div style="max-width: 600px; margin: 0 auto; background: white; border-radius: 8px; overflow: hidden;">
				<div style="background-color: #d13438; padding: 20px; text-align: center; color: white;">
					<h2 style="margin: 0;">Batch Analysis Failed</h2>
				</div>
				<div style="padding: 20px;">
					<p>The uploaded CSV could not be analyzed due to the following errors:</p>
					%s
				</div>
			</div>
		</body>
		</html>
	`, RenderErrorSection(errors))
}

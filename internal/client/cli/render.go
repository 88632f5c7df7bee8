package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/prescreen/internal/client/checklist"
	"github.com/dmitrijs2005/prescreen/internal/client/models"
	"github.com/dmitrijs2005/prescreen/internal/client/present"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderApplications(w io.Writer, apps []models.Application) {
	if len(apps) == 0 {
		fmt.Fprintln(w, "No applications yet")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tAPPLICANT\tTYPE\tAMOUNT\tTURNOVER\tELIGIBILITY\tPRE-SCREEN\tCREATED")
	for _, app := range apps {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			app.ID,
			app.ApplicantName,
			present.Status(app.BusinessType),
			present.Amount(app.RequestedLoanAmount),
			app.TurnoverBand,
			present.Status(app.EligibilityStatus),
			present.Status(app.PreScreenResult),
			present.Ago(app.CreatedAt),
		)
	}
	tw.Flush()
}

func renderApplicationHeader(w io.Writer, app *models.Application) {
	if app == nil {
		return
	}
	fmt.Fprintf(w, "Application #%d: %s\n", app.ID, app.ApplicantName)
	fmt.Fprintf(w, "  %s, %s in business, %s turnover\n",
		present.Status(app.BusinessType), present.Years(app.YearsInBusiness), app.TurnoverBand)
	fmt.Fprintf(w, "  Requested: %s\n", present.Amount(app.RequestedLoanAmount))
	fmt.Fprintf(w, "  Eligibility: %s  Pre-screen: %s\n",
		present.Status(app.EligibilityStatus), present.Status(app.PreScreenResult))
	if app.LOSApplicationID != "" {
		fmt.Fprintf(w, "  LOS reference: %s\n", app.LOSApplicationID)
	}
}

func rowState(r checklist.Row) string {
	switch {
	case r.Uploaded:
		return string(r.Status)
	case r.CanUpload:
		return "upload"
	default:
		return "pending"
	}
}

func rowActions(r checklist.Row) string {
	var acts []string
	if r.CanPreview {
		acts = append(acts, fmt.Sprintf("preview %d", r.Document.ID))
	}
	if r.CanVerify {
		acts = append(acts, fmt.Sprintf("verify|reject %d", r.Document.ID))
	}
	if r.CanUpload {
		acts = append(acts, "upload "+string(r.Entry.Type))
	}
	return strings.Join(acts, ", ")
}

func renderChecklist(w io.Writer, sections []checklist.Section) {
	p := checklist.Summarize(sections)
	fmt.Fprintf(w, "Documents: %d of %d mandatory uploaded\n", p.MandatoryUploaded, p.MandatoryTotal)

	for _, s := range sections {
		fmt.Fprintf(w, "\n%s\n", s.Title)
		tw := newTable(w)
		for _, r := range s.Rows {
			mark := " "
			if r.Entry.Mandatory {
				mark = "*"
			}
			fmt.Fprintf(tw, "  %s %s\t%s\t%s\n", mark, r.Entry.Label, rowState(r), rowActions(r))
		}
		tw.Flush()
	}
}

// renderChat prints the thread oldest first; the backend sends newest first.
func renderChat(w io.Writer, comments []models.Comment, viewerIsStaff bool) {
	if len(comments) == 0 {
		fmt.Fprintln(w, "No messages yet")
		return
	}
	for i := len(comments) - 1; i >= 0; i-- {
		c := comments[i]
		who := c.AuthorName
		if c.IsMine(viewerIsStaff) {
			who = "You"
		}
		fmt.Fprintf(w, "[%s] %s (%s): %s\n", present.Ago(c.CreatedAt), who, present.RoleLabel(c.AuthorRole), c.Message)
	}
}

func renderPreScreen(w io.Writer, r *models.PreScreenReport) {
	fmt.Fprintf(w, "Pre-screen for application #%d\n", r.ApplicationID)
	fmt.Fprintf(w, "  Eligibility: %s\n", present.Status(r.EligibilityStatus))
	for _, reason := range r.EligibilityReasons {
		fmt.Fprintf(w, "    - %s\n", reason)
	}
	fmt.Fprintf(w, "  Result: %s\n", present.Status(r.PreScreenResult))
	fmt.Fprintf(w, "  Mandatory documents: %d of %d\n", r.UploadedMandatoryDocs, r.TotalRequiredDocs)
	for _, t := range r.MissingMandatoryDocs {
		fmt.Fprintf(w, "    missing: %s\n", t.Label())
	}
}

func yesNo(b bool) string {
	if b {
		return "complete"
	}
	return "incomplete"
}

func renderSummary(w io.Writer, s *models.DocSummary) {
	fmt.Fprintf(w, "KYC: %s  Income: %s  Business proof: %s\n",
		yesNo(s.KYCComplete), yesNo(s.IncomeComplete), yesNo(s.BusinessProofComplete))
	fmt.Fprintf(w, "Mandatory documents: %d of %d\n", s.UploadedMandatoryDocs, s.TotalRequiredDocs)
	for _, t := range s.MissingMandatoryDocs {
		fmt.Fprintf(w, "  missing: %s\n", t.Label())
	}
}

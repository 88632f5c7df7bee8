package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/prescreen/internal/client/dashboard"
	"github.com/dmitrijs2005/prescreen/internal/client/models"
	"github.com/dmitrijs2005/prescreen/internal/common"
	"github.com/shopspring/decimal"
)

type dashboardView struct {
	CanCreate    bool
	Applications []models.Application
}

type applicationFormView struct {
	ApplicantName   string
	BusinessType    string
	YearsInBusiness string
	TurnoverBand    string
	LoanAmount      string
	Errors          models.FieldErrors

	BusinessTypes []models.BusinessType
	TurnoverBands []models.TurnoverBand
	MinAmount     decimal.Decimal
}

func (p *Portal) board(r *http.Request) *dashboard.Dashboard {
	sc := scopeFrom(r.Context())
	return dashboard.New(p.apps, sc.store, sc.notifier, p.logger)
}

func (p *Portal) dashboard(w http.ResponseWriter, r *http.Request) {
	d := p.board(r)
	p.render(w, r, http.StatusOK, "dashboard", d.Title(), dashboardView{
		CanCreate:    d.CanCreate(),
		Applications: d.Applications(r.Context()),
	})
}

func emptyApplicationForm() applicationFormView {
	return applicationFormView{
		BusinessTypes: models.BusinessTypes,
		TurnoverBands: models.TurnoverBands,
		MinAmount:     models.MinLoanAmount,
	}
}

func (p *Portal) newApplicationForm(w http.ResponseWriter, r *http.Request) {
	if !p.board(r).CanCreate() {
		redirect(w, r, common.DashboardPath)
		return
	}
	p.render(w, r, http.StatusOK, "application_new", "New Application", emptyApplicationForm())
}

func (p *Portal) createApplication(w http.ResponseWriter, r *http.Request) {
	d := p.board(r)

	view := emptyApplicationForm()
	view.ApplicantName = strings.TrimSpace(r.PostFormValue("applicantName"))
	view.BusinessType = r.PostFormValue("businessType")
	view.YearsInBusiness = strings.TrimSpace(r.PostFormValue("yearsInBusiness"))
	view.TurnoverBand = r.PostFormValue("turnoverBand")
	view.LoanAmount = strings.TrimSpace(r.PostFormValue("requestedLoanAmount"))

	form, fe := parseApplicationForm(view)
	if len(fe) > 0 {
		view.Errors = fe
		p.render(w, r, http.StatusUnprocessableEntity, "application_new", "New Application", view)
		return
	}

	_, err := d.Create(r.Context(), form)
	switch {
	case errors.Is(err, common.ErrorStaffOnly):
		http.Error(w, "Only applicants can start an application", http.StatusForbidden)
	case errors.As(err, &fe):
		view.Errors = fe
		p.render(w, r, http.StatusUnprocessableEntity, "application_new", "New Application", view)
	case err != nil:
		p.render(w, r, http.StatusBadGateway, "application_new", "New Application", view)
	default:
		redirect(w, r, common.DashboardPath)
	}
}

// parseApplicationForm converts the text inputs. Numbers that do not
// parse are reported the same way as validation failures.
func parseApplicationForm(v applicationFormView) (models.NewApplication, models.FieldErrors) {
	form := models.NewApplication{
		ApplicantName: v.ApplicantName,
		BusinessType:  models.BusinessType(v.BusinessType),
		TurnoverBand:  models.TurnoverBand(v.TurnoverBand),
	}
	fe := models.FieldErrors{}

	years, err := strconv.Atoi(v.YearsInBusiness)
	if err != nil {
		fe["yearsInBusiness"] = "must be a whole number"
	}
	form.YearsInBusiness = years

	amount, err := decimal.NewFromString(strings.ReplaceAll(v.LoanAmount, ",", ""))
	if err != nil {
		fe["requestedLoanAmount"] = fmt.Sprintf("must be a number of at least %s", models.MinLoanAmount)
	}
	form.RequestedLoanAmount = amount

	return form, fe
}

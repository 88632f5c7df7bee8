package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/prescreen/internal/client/detail"
	"github.com/dmitrijs2005/prescreen/internal/client/models"
	"github.com/shopspring/decimal"
)

// List prints the dashboard: the viewer's applications, or the queue for staff.
func (a *App) List(ctx context.Context) error {
	fmt.Fprintln(a.out, a.dashboard.Title())
	renderApplications(a.out, a.dashboard.Applications(ctx))
	return nil
}

// New walks through the new-application form. Field errors are printed
// next to their field names and nothing is sent.
func (a *App) New(ctx context.Context) error {
	if !a.dashboard.CanCreate() {
		printlnFn("Only applicants can start an application")
		return nil
	}

	form := models.NewApplication{}
	var err error

	if form.ApplicantName, err = getSimpleText(a.reader, "Applicant / business name", a.out); err != nil {
		return err
	}

	bt, err := getSimpleText(a.reader, "Business type ("+joinChoices(models.BusinessTypes)+")", a.out)
	if err != nil {
		return err
	}
	form.BusinessType = models.BusinessType(strings.ToUpper(bt))

	years, err := getSimpleText(a.reader, "Years in business", a.out)
	if err != nil {
		return err
	}
	if form.YearsInBusiness, err = strconv.Atoi(years); err != nil {
		printlnFn("Years in business must be a whole number")
		return nil
	}

	band, err := getSimpleText(a.reader, "Annual turnover ("+joinChoices(models.TurnoverBands)+")", a.out)
	if err != nil {
		return err
	}
	form.TurnoverBand = models.TurnoverBand(band)

	amount, err := getSimpleText(a.reader, "Requested loan amount (min "+models.MinLoanAmount.String()+")", a.out)
	if err != nil {
		return err
	}
	if form.RequestedLoanAmount, err = decimal.NewFromString(strings.ReplaceAll(amount, ",", "")); err != nil {
		printlnFn("Loan amount must be a number")
		return nil
	}

	app, err := a.dashboard.Create(ctx, form)
	var fe models.FieldErrors
	switch {
	case errors.As(err, &fe):
		printFieldErrors(a.out, fe)
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintf(a.out, "Created application #%d\n", app.ID)
	return a.List(ctx)
}

func joinChoices[T ~string](choices []T) string {
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = string(c)
	}
	return strings.Join(out, ", ")
}

func printFieldErrors(w io.Writer, fe models.FieldErrors) {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s %s\n", k, fe[k])
	}
}

// Open loads one application and enters its detail screen.
func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: open <id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Application id must be a number")
		return nil
	}

	screen := &detailScreen{app: a}
	screen.ctl = detail.New(id, detail.Deps{
		Applications: a.apps,
		Documents:    a.docs,
		Messages:     a.msgs,
		Viewer:       a.store,
		Notifier:     a.notifier,
		Confirmer:    a,
		Navigator:    screen,
		Logger:       a.logger,
	})

	if err := screen.ctl.Load(ctx); err != nil {
		return err
	}

	screen.header()
	_ = screen.Docs(ctx)
	runDetailREPL(ctx, screen, a.reader)
	if screen.left {
		return a.List(ctx)
	}
	return nil
}

// Confirm makes App a detail.Confirmer.
func (a *App) Confirm(_ context.Context, prompt string) bool {
	return getConfirmation(a.reader, prompt, a.out)
}

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/prescreen/internal/client/models"
	"github.com/dmitrijs2005/prescreen/internal/common"
)

// Test seams for interactive input.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getMultiline    = GetMultiline
	getConfirmation = GetConfirmation
)

// Login asks for the user ID and password. On success the dashboard is
// listed right away.
func (a *App) Login(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter user ID (e.g. APPLICANT-1)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if !a.store.Login(ctx, id, string(password)) {
		return nil
	}
	return a.List(ctx)
}

// Register creates an account and prints the generated user ID.
func (a *App) Register(ctx context.Context) error {
	fullName, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	roleText, err := getSimpleText(a.reader, "I am a... (applicant/staff)", a.out)
	if err != nil {
		return err
	}
	role, ok := parseRole(roleText)
	if !ok {
		printlnFn("Role must be 'applicant' or 'staff'")
		return nil
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	userID, ok := a.store.Register(ctx, models.RegisterRequest{
		FullName: fullName,
		Email:    email,
		Password: string(password),
		Role:     role,
	})
	if !ok {
		return nil
	}

	fmt.Fprintf(a.out, "Your User ID: %s\nPlease save this ID. You will need it to login.\n", userID)
	return nil
}

func parseRole(s string) (models.Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "applicant", "a":
		return models.RoleApplicant, true
	case "staff", "s", "bank staff":
		return models.RoleStaff, true
	default:
		return "", false
	}
}

// ForgotID recovers the user ID registered for an email address.
func (a *App) ForgotID(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter your registered email", a.out)
	if err != nil {
		return err
	}

	resp, ok := a.store.RecoverID(ctx, email)
	if !ok {
		return nil
	}

	fmt.Fprintf(a.out, "Hello, %s\nYour User ID: %s\n", resp.FullName, resp.UserID)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.store.Logout(ctx)
	return nil
}

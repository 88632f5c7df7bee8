package web

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/prescreen/internal/client/models"
	"github.com/dmitrijs2005/prescreen/internal/common"
)

type loginView struct {
	ID string
}

type registerView struct {
	FullName string
	Email    string
	Role     models.Role
	Roles    []models.Role
	// UserID is set once the account exists.
	UserID string
}

type forgotIDView struct {
	Email  string
	Result *models.ForgotIDResponse
}

func (p *Portal) loginForm(w http.ResponseWriter, r *http.Request) {
	if currentSession(r).IsAuthenticated {
		redirect(w, r, common.DashboardPath)
		return
	}
	p.render(w, r, http.StatusOK, "login", "Sign in", loginView{})
}

func (p *Portal) login(w http.ResponseWriter, r *http.Request) {
	sc := scopeFrom(r.Context())
	id := strings.TrimSpace(r.PostFormValue("id"))

	if !sc.store.Login(r.Context(), id, r.PostFormValue("password")) {
		p.render(w, r, http.StatusUnauthorized, "login", "Sign in", loginView{ID: id})
		return
	}
	redirect(w, r, common.DashboardPath)
}

func (p *Portal) registerForm(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, "register", "Register", registerView{Role: models.RoleApplicant, Roles: roles})
}

func (p *Portal) register(w http.ResponseWriter, r *http.Request) {
	sc := scopeFrom(r.Context())
	req := models.RegisterRequest{
		FullName: strings.TrimSpace(r.PostFormValue("fullName")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
		Role:     models.Role(strings.ToUpper(r.PostFormValue("role"))),
	}
	view := registerView{FullName: req.FullName, Email: req.Email, Role: req.Role, Roles: roles}

	userID, ok := sc.store.Register(r.Context(), req)
	if !ok {
		p.render(w, r, http.StatusUnprocessableEntity, "register", "Register", view)
		return
	}
	view.UserID = userID
	p.render(w, r, http.StatusOK, "register", "Register", view)
}

func (p *Portal) forgotIDForm(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, "forgot_id", "Forgot ID", forgotIDView{})
}

func (p *Portal) forgotID(w http.ResponseWriter, r *http.Request) {
	sc := scopeFrom(r.Context())
	view := forgotIDView{Email: strings.TrimSpace(r.PostFormValue("email"))}

	resp, ok := sc.store.RecoverID(r.Context(), view.Email)
	if !ok {
		p.render(w, r, http.StatusNotFound, "forgot_id", "Forgot ID", view)
		return
	}
	view.Result = resp
	p.render(w, r, http.StatusOK, "forgot_id", "Forgot ID", view)
}

func (p *Portal) logout(w http.ResponseWriter, r *http.Request) {
	scopeFrom(r.Context()).store.Logout(r.Context())
	redirect(w, r, common.LoginPath)
}

var roles = []models.Role{models.RoleApplicant, models.RoleStaff}

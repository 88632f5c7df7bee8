package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/dmitrijs2005/prescreen/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

var (
	applicant = models.User{ID: 1, Username: "APPLICANT-1", FullName: "Asha Rao", Email: "asha@example.com", Role: models.RoleApplicant}
	staff     = models.User{ID: 2, Username: "STAFF-1", FullName: "Vikram Iyer", Email: "vikram@bank.example", Role: models.RoleStaff}
)

type upload struct {
	docType  string
	filename string
	content  string
}

// backend is an in-memory stand-in for the pre-screen REST API.
type backend struct {
	mu       sync.Mutex
	apps     []models.Application
	docs     []models.Document
	comments []models.Comment
	created  []models.NewApplication
	uploads  []upload
	statuses map[int64]models.DocumentStatus
	deleted  []int64
	posted   []string
	tokens   []string

	srv *httptest.Server
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{
		apps: []models.Application{{
			ID:                  1,
			ApplicantName:       "Rao Textiles",
			BusinessType:        models.BusinessPartnership,
			YearsInBusiness:     4,
			TurnoverBand:        models.Turnover50LTo1Cr,
			RequestedLoanAmount: decimal.NewFromInt(2500000),
			EligibilityStatus:   models.EligibilityPending,
			PreScreenResult:     models.PreScreenBlockedMissingDocs,
		}},
		docs: []models.Document{
			{ID: 11, DocType: models.DocBusinessPAN, Status: models.StatusUploaded},
		},
		comments: []models.Comment{
			{ID: 2, ApplicationID: 1, AuthorName: "Vikram Iyer", AuthorRole: models.RoleStaff, Message: "Please upload the ITR"},
			{ID: 1, ApplicationID: 1, AuthorName: "Asha Rao", AuthorRole: models.RoleApplicant, Message: "Submitted the PAN"},
		},
		statuses: map[int64]models.DocumentStatus{},
	}

	r := chi.NewRouter()
	r.Use(b.recordToken)
	r.Post("/api/auth/login", b.login)
	r.Post("/api/auth/register", b.register)
	r.Post("/api/auth/forgot-id", b.forgotID)
	r.Get("/api/applications", b.listApplications)
	r.Post("/api/applications", b.createApplication)
	r.Route("/api/applications/{id}", func(r chi.Router) {
		r.Use(b.knownApplication)
		r.Get("/", b.getApplication)
		r.Delete("/", b.deleteApplication)
		r.Get("/pre-screen", b.preScreen)
		r.Get("/documents", b.listDocuments)
		r.Post("/documents", b.uploadDocument)
		r.Get("/documents/summary", b.summary)
		r.Patch("/documents/{docID}/status", b.setStatus)
		r.Get("/documents/{docID}/preview", b.preview)
		r.Get("/comments", b.listComments)
		r.Post("/comments", b.postComment)
	})

	b.srv = httptest.NewServer(r)
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backend) URL() string { return b.srv.URL + "/api" }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *backend) recordToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.tokens = append(b.tokens, r.Header.Get("Authorization"))
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (b *backend) knownApplication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") != "1" {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Application not found"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *backend) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	switch {
	case req.ID == applicant.Username && req.Password == "secret":
		writeJSON(w, http.StatusOK, models.LoginResponse{Token: "tok-applicant", User: applicant})
	case req.ID == staff.Username && req.Password == "secret":
		writeJSON(w, http.StatusOK, models.LoginResponse{Token: "tok-staff", User: staff})
	default:
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
	}
}

func (b *backend) register(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.RegisterResponse{Message: "ok", UserID: "APPLICANT-7"})
}

func (b *backend) forgotID(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotIDRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Email != applicant.Email {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "no such user"})
		return
	}
	writeJSON(w, http.StatusOK, models.ForgotIDResponse{UserID: applicant.Username, FullName: applicant.FullName})
}

func (b *backend) listApplications(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.apps)
}

func (b *backend) createApplication(w http.ResponseWriter, r *http.Request) {
	var req models.NewApplication
	_ = json.NewDecoder(r.Body).Decode(&req)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.created = append(b.created, req)
	app := models.Application{
		ID:                  int64(len(b.apps) + 1),
		ApplicantName:       req.ApplicantName,
		BusinessType:        req.BusinessType,
		YearsInBusiness:     req.YearsInBusiness,
		TurnoverBand:        req.TurnoverBand,
		RequestedLoanAmount: req.RequestedLoanAmount,
		EligibilityStatus:   models.EligibilityPending,
	}
	b.apps = append(b.apps, app)
	writeJSON(w, http.StatusCreated, app)
}

func (b *backend) getApplication(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.apps[0])
}

func (b *backend) deleteApplication(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.deleted = append(b.deleted, 1)
	b.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (b *backend) preScreen(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.PreScreenReport{
		ApplicationID:         1,
		EligibilityStatus:     models.EligibilityEligible,
		PreScreenResult:       models.PreScreenBlockedMissingDocs,
		EligibilityReasons:    []string{"Vintage above 3 years"},
		TotalRequiredDocs:     9,
		UploadedMandatoryDocs: 1,
		MissingMandatoryDocs:  []models.DocumentType{models.DocITR3Y},
	})
}

func (b *backend) summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.DocSummary{KYCComplete: false, IncomeComplete: false, TotalRequiredDocs: 9, UploadedMandatoryDocs: 1})
}

func (b *backend) listDocuments(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.docs)
}

func (b *backend) uploadDocument(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "file missing"})
		return
	}
	defer file.Close()
	content, _ := io.ReadAll(file)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.uploads = append(b.uploads, upload{docType: r.FormValue("docType"), filename: header.Filename, content: string(content)})
	doc := models.Document{ID: int64(100 + len(b.uploads)), DocType: models.DocumentType(r.FormValue("docType")), Status: models.StatusUploaded}
	b.docs = append(b.docs, doc)
	writeJSON(w, http.StatusCreated, doc)
}

func (b *backend) setStatus(w http.ResponseWriter, r *http.Request) {
	docID, _ := strconv.ParseInt(chi.URLParam(r, "docID"), 10, 64)
	status := models.DocumentStatus(r.URL.Query().Get("status"))

	b.mu.Lock()
	defer b.mu.Unlock()
	b.statuses[docID] = status
	writeJSON(w, http.StatusOK, models.Document{ID: docID, Status: status})
}

// evilDocID previews as an HTML page the backend labels octet-stream.
const evilDocID = 12

func (b *backend) preview(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "docID") == strconv.Itoa(evilDocID) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", `attachment; filename="evil.html"`)
		_, _ = w.Write([]byte(`<html><body><script>fetch('/application/1/delete',{method:'POST',body:'confirm=yes'})</script></body></html>`))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="pan.pdf"`)
	_, _ = w.Write([]byte("%PDF-1.4 fake"))
}

func (b *backend) listComments(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.comments)
}

func (b *backend) postComment(w http.ResponseWriter, r *http.Request) {
	var req models.NewComment
	_ = json.NewDecoder(r.Body).Decode(&req)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.posted = append(b.posted, req.Message)
	writeJSON(w, http.StatusCreated, models.Comment{ID: 3, ApplicationID: 1, Message: req.Message})
}

func (b *backend) snapshot(f func(b *backend)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	f(b)
}

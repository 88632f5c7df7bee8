package models

import (
	"github.com/dmitrijs2005/prescreen/internal/timex"
	"github.com/shopspring/decimal"
)

type BusinessType string

const (
	BusinessProprietorship BusinessType = "PROPRIETORSHIP"
	BusinessPartnership    BusinessType = "PARTNERSHIP"
	BusinessPvtLtd         BusinessType = "PVT_LTD"
)

// BusinessTypes lists the form choices in display order.
var BusinessTypes = []BusinessType{BusinessProprietorship, BusinessPartnership, BusinessPvtLtd}

type TurnoverBand string

const (
	TurnoverUpTo50L  TurnoverBand = "0-50L"
	Turnover50LTo1Cr TurnoverBand = "50L-1Cr"
	Turnover1CrTo5Cr TurnoverBand = "1Cr-5Cr"
	TurnoverAbove5Cr TurnoverBand = "5Cr+"
)

var TurnoverBands = []TurnoverBand{TurnoverUpTo50L, Turnover50LTo1Cr, Turnover1CrTo5Cr, TurnoverAbove5Cr}

type EligibilityStatus string

const (
	EligibilityEligible   EligibilityStatus = "ELIGIBLE"
	EligibilityIneligible EligibilityStatus = "INELIGIBLE"
	EligibilityPending    EligibilityStatus = "PENDING"
)

type PreScreenResult string

const (
	PreScreenReady              PreScreenResult = "READY"
	PreScreenBlockedMissingDocs PreScreenResult = "BLOCKED_MISSING_DOCS"
	PreScreenBlockedIneligible  PreScreenResult = "BLOCKED_INELIGIBLE"
)

// MinLoanAmount is the smallest amount the new-application form accepts.
var MinLoanAmount = decimal.NewFromInt(10000)

// Application is a loan pre-screen case owned by one applicant.
type Application struct {
	ID                  int64             `json:"id"`
	ApplicantName       string            `json:"applicantName"`
	BusinessType        BusinessType      `json:"businessType"`
	YearsInBusiness     int               `json:"yearsInBusiness"`
	TurnoverBand        TurnoverBand      `json:"turnoverBand"`
	RequestedLoanAmount decimal.Decimal   `json:"requestedLoanAmount"`
	EligibilityStatus   EligibilityStatus `json:"eligibilityStatus"`
	PreScreenResult     PreScreenResult   `json:"preScreenResult"`
	LOSApplicationID    string            `json:"losApplicationId,omitempty"`
	CreatedAt           timex.Timestamp   `json:"createdAt"`
	UpdatedAt           timex.Timestamp   `json:"updatedAt"`
}

// NewApplication is the body of POST /applications.
type NewApplication struct {
	ApplicantName       string          `json:"applicantName" validate:"required,max=200"`
	BusinessType        BusinessType    `json:"businessType" validate:"required,oneof=PROPRIETORSHIP PARTNERSHIP PVT_LTD"`
	YearsInBusiness     int             `json:"yearsInBusiness" validate:"gte=0,lte=200"`
	TurnoverBand        TurnoverBand    `json:"turnoverBand" validate:"required,oneof=0-50L 50L-1Cr 1Cr-5Cr 5Cr+"`
	RequestedLoanAmount decimal.Decimal `json:"requestedLoanAmount" validate:"gte=10000"`
}

// PreScreenReport is the staff view of GET /applications/{id}/pre-screen.
type PreScreenReport struct {
	ApplicationID            int64             `json:"applicationId"`
	EligibilityStatus        EligibilityStatus `json:"eligibilityStatus"`
	PreScreenResult          PreScreenResult   `json:"preScreenResult"`
	EligibilityReasons       []string          `json:"eligibilityReasons"`
	TotalRequiredDocs        int               `json:"totalRequiredDocs"`
	UploadedMandatoryDocs    int               `json:"uploadedMandatoryDocs"`
	MissingMandatoryDocs     []DocumentType    `json:"missingMandatoryDocs"`
	AllMandatoryDocsUploaded bool              `json:"allMandatoryDocsUploaded"`
}

package models

import "github.com/dmitrijs2005/prescreen/internal/timex"

// DocumentType is the catalog tag of a supporting document.
type DocumentType string

const (
	DocBusinessPAN          DocumentType = "BUSINESS_PAN"
	DocOwnerPAN             DocumentType = "OWNER_PAN"
	DocOwnerAadhaar         DocumentType = "OWNER_AADHAAR"
	DocBusinessAddressProof DocumentType = "BUSINESS_ADDRESS_PROOF"
	DocPnL3Y                DocumentType = "PNL_3Y"
	DocBalanceSheet3Y       DocumentType = "BALANCE_SHEET_3Y"
	DocITR3Y                DocumentType = "ITR_3Y"
	DocBankStatement        DocumentType = "BANK_STATEMENT_6_12M"
	DocBusinessRegistration DocumentType = "BUSINESS_REGISTRATION"
	DocCIN                  DocumentType = "CIN"
	DocBoardOfDirectors     DocumentType = "BOARD_OF_DIRECTORS_LIST"
)

// DocumentStatus moves UPLOADED -> VERIFIED | REJECTED, by staff only.
type DocumentStatus string

const (
	StatusUploaded DocumentStatus = "UPLOADED"
	StatusVerified DocumentStatus = "VERIFIED"
	StatusRejected DocumentStatus = "REJECTED"
)

// IsReview reports whether s is a status staff may set.
func (s DocumentStatus) IsReview() bool {
	return s == StatusVerified || s == StatusRejected
}

// Document is an uploaded file attached to an application.
type Document struct {
	ID             int64           `json:"id"`
	DocType        DocumentType    `json:"docType"`
	DocDisplayName string          `json:"docDisplayName"`
	Status         DocumentStatus  `json:"status"`
	FilePath       string          `json:"filePath"`
	UploadedAt     timex.Timestamp `json:"uploadedAt"`
}

// DocSummary is the backend's completeness summary for one application.
type DocSummary struct {
	KYCComplete              bool           `json:"kycComplete"`
	IncomeComplete           bool           `json:"incomeComplete"`
	BusinessProofComplete    bool           `json:"businessProofComplete"`
	TotalRequiredDocs        int            `json:"totalRequiredDocs"`
	UploadedMandatoryDocs    int            `json:"uploadedMandatoryDocs"`
	MissingMandatoryDocs     []DocumentType `json:"missingMandatoryDocs"`
	AllMandatoryDocsUploaded bool           `json:"allMandatoryDocsUploaded"`
}

// Blob is a downloaded document preview. Extension is derived from the
// content (".pdf", ".png") and is used when the server sends no filename.
type Blob struct {
	Data        []byte
	ContentType string
	Filename    string
	Extension   string
}

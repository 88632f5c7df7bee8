package models

// Category groups catalog entries into checklist sections.
type Category string

const (
	CategoryKYC      Category = "KYC"
	CategoryIncome   Category = "INCOME"
	CategoryBusiness Category = "BUSINESS"
)

// Categories in display order.
var Categories = []Category{CategoryKYC, CategoryIncome, CategoryBusiness}

var categoryTitles = map[Category]string{
	CategoryKYC:      "KYC Documents",
	CategoryIncome:   "Income Proof",
	CategoryBusiness: "Business Proof",
}

// Title is the section heading shown above the category's rows.
func (c Category) Title() string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return string(c)
}

// CatalogEntry describes one required or optional document.
type CatalogEntry struct {
	Type      DocumentType
	Label     string
	Category  Category
	Mandatory bool
}

var catalog = []CatalogEntry{
	{Type: DocBusinessPAN, Label: "Business PAN Card", Category: CategoryKYC, Mandatory: true},
	{Type: DocOwnerPAN, Label: "Owner's PAN Card", Category: CategoryKYC, Mandatory: true},
	{Type: DocOwnerAadhaar, Label: "Owner's Aadhaar", Category: CategoryKYC, Mandatory: true},
	{Type: DocBusinessAddressProof, Label: "Office Address Proof", Category: CategoryKYC, Mandatory: true},

	{Type: DocPnL3Y, Label: "P&L Statement (3 Years)", Category: CategoryIncome, Mandatory: true},
	{Type: DocBalanceSheet3Y, Label: "Balance Sheet (3 Years)", Category: CategoryIncome, Mandatory: true},
	{Type: DocITR3Y, Label: "ITR Acknowledgement (3 Years)", Category: CategoryIncome, Mandatory: true},
	{Type: DocBankStatement, Label: "Bank Statement (6-12 Months)", Category: CategoryIncome, Mandatory: true},

	{Type: DocBusinessRegistration, Label: "Business Registration Cert", Category: CategoryBusiness, Mandatory: true},
	{Type: DocCIN, Label: "Corporate Identity Number (CIN)", Category: CategoryBusiness, Mandatory: false},
	{Type: DocBoardOfDirectors, Label: "List of Directors", Category: CategoryBusiness, Mandatory: false},
}

// Catalog returns a copy of the full catalog in display order.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

// CatalogFor returns the entries of one category, preserving catalog order.
func CatalogFor(c Category) []CatalogEntry {
	var out []CatalogEntry
	for _, e := range catalog {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}

// LookupDocumentType finds the catalog entry for t.
func LookupDocumentType(t DocumentType) (CatalogEntry, bool) {
	for _, e := range catalog {
		if e.Type == t {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// Label returns the human label of t, or the raw tag if it is not cataloged.
func (t DocumentType) Label() string {
	if e, ok := LookupDocumentType(t); ok {
		return e.Label
	}
	return string(t)
}

// Package checklist reconciles the document catalog with the documents
// uploaded for an application and derives what each row may offer.
//
// Everything here is a pure function of its inputs.
package checklist

import "github.com/dmitrijs2005/prescreen/internal/client/models"

// Row is one catalog entry as seen by a given viewer.
type Row struct {
	Entry    models.CatalogEntry
	Document *models.Document
	Uploaded bool
	Status   models.DocumentStatus

	CanPreview bool
	CanUpload  bool
	// CanVerify covers both verify and reject.
	CanVerify bool
}

// Section is a category heading with its rows.
type Section struct {
	Category models.Category
	Title    string
	Rows     []Row
}

// Build returns one row per catalog entry of category, in catalog order.
// When several documents share a type the first one in docs wins.
func Build(category models.Category, docs []models.Document, staff bool) []Row {
	entries := models.CatalogFor(category)
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, row(e, find(docs, e.Type), staff))
	}
	return rows
}

func find(docs []models.Document, t models.DocumentType) *models.Document {
	for i := range docs {
		if docs[i].DocType == t {
			d := docs[i]
			return &d
		}
	}
	return nil
}

func row(e models.CatalogEntry, doc *models.Document, staff bool) Row {
	r := Row{Entry: e, Document: doc, Uploaded: doc != nil}
	if doc != nil {
		r.Status = doc.Status
	}

	r.CanPreview = r.Uploaded
	r.CanUpload = !r.Uploaded && !staff
	r.CanVerify = r.Uploaded && staff && r.Status == models.StatusUploaded
	return r
}

// Sections builds every category in display order.
func Sections(docs []models.Document, staff bool) []Section {
	out := make([]Section, 0, len(models.Categories))
	for _, c := range models.Categories {
		out = append(out, Section{Category: c, Title: c.Title(), Rows: Build(c, docs, staff)})
	}
	return out
}

// Progress counts mandatory rows and how many of them have a document.
type Progress struct {
	MandatoryTotal    int
	MandatoryUploaded int
}

// Complete reports whether every mandatory document is uploaded.
func (p Progress) Complete() bool {
	return p.MandatoryUploaded == p.MandatoryTotal
}

// Summarize counts mandatory rows across sections.
func Summarize(sections []Section) Progress {
	var p Progress
	for _, s := range sections {
		for _, r := range s.Rows {
			if !r.Entry.Mandatory {
				continue
			}
			p.MandatoryTotal++
			if r.Uploaded {
				p.MandatoryUploaded++
			}
		}
	}
	return p
}

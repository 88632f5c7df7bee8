package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/prescreen/internal/client/client"
	"github.com/dmitrijs2005/prescreen/internal/client/models"
)

// DocumentService manages the documents attached to one application.
type DocumentService interface {
	List(ctx context.Context, appID int64) ([]models.Document, error)
	Upload(ctx context.Context, appID int64, docType models.DocumentType, filename string, content io.Reader) (*models.Document, error)
	SetStatus(ctx context.Context, appID, docID int64, status models.DocumentStatus) (*models.Document, error)
	Preview(ctx context.Context, appID, docID int64) (*models.Blob, error)
	Summary(ctx context.Context, appID int64) (*models.DocSummary, error)
}

type documentService struct {
	client client.Client
}

func NewDocumentService(c client.Client) DocumentService {
	return &documentService{client: c}
}

func documentsPath(appID int64) string {
	return fmt.Sprintf("/applications/%d/documents", appID)
}

func (s *documentService) List(ctx context.Context, appID int64) ([]models.Document, error) {
	var docs []models.Document
	if err := s.client.Do(ctx, client.Request{Method: http.MethodGet, Path: documentsPath(appID)}, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *documentService) Upload(ctx context.Context, appID int64, docType models.DocumentType, filename string, content io.Reader) (*models.Document, error) {
	var doc models.Document
	err := s.client.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   documentsPath(appID),
		File:   &client.FilePart{Field: "file", Filename: filename, Content: content},
		Fields: map[string]string{"docType": string(docType)},
	}, &doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *documentService) SetStatus(ctx context.Context, appID, docID int64, status models.DocumentStatus) (*models.Document, error) {
	var doc models.Document
	err := s.client.Do(ctx, client.Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("%s/%d/status", documentsPath(appID), docID),
		Query:  url.Values{"status": {string(status)}},
	}, &doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Preview downloads the stored file. When the server sends no filename
// one is made up from the document id and the detected extension.
func (s *documentService) Preview(ctx context.Context, appID, docID int64) (*models.Blob, error) {
	blob, err := s.client.Blob(ctx, fmt.Sprintf("%s/%d/preview", documentsPath(appID), docID))
	if err != nil {
		return nil, err
	}
	if blob.Filename == "" {
		blob.Filename = fmt.Sprintf("document-%d%s", docID, blob.Extension)
	}
	return blob, nil
}

func (s *documentService) Summary(ctx context.Context, appID int64) (*models.DocSummary, error) {
	var sum models.DocSummary
	if err := s.client.Do(ctx, client.Request{Method: http.MethodGet, Path: documentsPath(appID) + "/summary"}, &sum); err != nil {
		return nil, err
	}
	return &sum, nil
}

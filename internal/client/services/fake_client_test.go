package services

import (
	"context"
	"encoding/json"
	"io"

	"github.com/dmitrijs2005/prescreen/internal/client/client"
	"github.com/dmitrijs2005/prescreen/internal/client/models"
)

// fakeClient records every request and answers with a canned JSON body.
type fakeClient struct {
	requests []client.Request
	uploaded []byte

	response string
	err      error

	blob     *models.Blob
	blobPath string
}

func (f *fakeClient) Do(_ context.Context, req client.Request, out any) error {
	if req.File != nil {
		f.uploaded, _ = io.ReadAll(req.File.Content)
	}
	f.requests = append(f.requests, req)
	if f.err != nil {
		return f.err
	}
	if out == nil || f.response == "" {
		return nil
	}
	return json.Unmarshal([]byte(f.response), out)
}

func (f *fakeClient) Blob(_ context.Context, path string) (*models.Blob, error) {
	f.blobPath = path
	if f.err != nil {
		return nil, f.err
	}
	return f.blob, nil
}

func (f *fakeClient) last() client.Request {
	return f.requests[len(f.requests)-1]
}

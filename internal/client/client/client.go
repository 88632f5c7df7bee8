package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/prescreen/internal/client/models"
	"github.com/dmitrijs2005/prescreen/internal/common"
	"github.com/dmitrijs2005/prescreen/internal/logging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	maxResponseBytes = 8 << 20
	maxBlobBytes     = 64 << 20
)

// Client is the contract domain services depend on.
type Client interface {
	// Do sends req and decodes a JSON response into out (nil discards it).
	Do(ctx context.Context, req Request, out any) error
	// Blob fetches a binary resource.
	Blob(ctx context.Context, path string) (*models.Blob, error)
}

// TokenSource yields the bearer token for the request carried by ctx.
// An empty token sends the request anonymously.
type TokenSource interface {
	AccessToken(ctx context.Context) string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) string

func (f TokenFunc) AccessToken(ctx context.Context) string { return f(ctx) }

// Request describes one backend call. Body is JSON-encoded when set;
// File switches the call to multipart/form-data, with Fields as the
// accompanying form values.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	File   *FilePart
	Fields map[string]string
}

// FilePart is the file half of a multipart upload.
type FilePart struct {
	Field    string
	Filename string
	Content  io.Reader
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     logging.Logger
	newID      func() string
}

// NewHTTPClient builds a gateway for baseURL (e.g. http://localhost:8081/api).
// A zero timeout leaves the transport without a deadline.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, logger logging.Logger) *HTTPClient {
	if tokens == nil {
		tokens = TokenFunc(func(context.Context) string { return "" })
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		logger:     logger.With("module", "gateway"),
		newID:      uuid.NewString,
	}
}

func (c *HTTPClient) Do(ctx context.Context, req Request, out any) error {
	body, contentType, err := encodeBody(req)
	if err != nil {
		return err
	}

	resp, err := c.send(ctx, req.Method, req.Path, req.Query, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 300 {
		return mapError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.Path, err)
	}
	return nil
}

func (c *HTTPClient) Blob(ctx context.Context, path string) (*models.Blob, error) {
	resp, err := c.send(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBlobBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read blob: %v", ErrUnavailable, err)
	}
	if resp.StatusCode >= 300 {
		return nil, mapError(resp.StatusCode, data)
	}

	detected := mimetype.Detect(data)

	contentType := resp.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(contentType); err != nil || mt == "application/octet-stream" {
		contentType = detected.String()
	}

	blob := &models.Blob{
		Data:        data,
		ContentType: contentType,
		Extension:   detected.Extension(),
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		blob.Filename = params["filename"]
	}
	return blob, nil
}

func (c *HTTPClient) send(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json, */*")

	requestID := c.newID()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if token := c.tokens.AccessToken(ctx); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	gatewayDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	if err != nil {
		gatewayRequests.WithLabelValues(method, "error").Inc()
		c.logger.Warn(ctx, "backend unreachable", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	gatewayRequests.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode >= 500 {
		c.logger.Warn(ctx, "backend failure", "method", method, "path", path, "request_id", requestID, "status", resp.StatusCode)
	}
	return resp, nil
}

func encodeBody(req Request) (io.Reader, string, error) {
	if req.File != nil {
		return encodeMultipart(req.File, req.Fields)
	}
	if req.Body == nil {
		return nil, "", nil
	}
	b, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", fmt.Errorf("encode request body: %w", err)
	}
	return bytes.NewReader(b), "application/json", nil
}

func encodeMultipart(file *FilePart, fields map[string]string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("multipart field %s: %w", k, err)
		}
	}

	field := file.Field
	if field == "" {
		field = "file"
	}
	part, err := w.CreateFormFile(field, file.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("multipart file: %w", err)
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return nil, "", fmt.Errorf("multipart copy: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("multipart close: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

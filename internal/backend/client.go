package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sort"
	"strings"
	"time"
)

// Header names imposed by the backend.
const (
	headerRemoteUser = "remote_user"
	headerCSRFToken  = "X-CSRF-Token"
)

// Client is the REST surface the mediation needs from the backend. Every
// call is attributed to actingUser, which the backend uses as the caller
// identity.
type Client interface {
	Post(ctx context.Context, path string, body, out any, actingUser string) error
	Get(ctx context.Context, path string, out any, actingUser string) error
	Put(ctx context.Context, path string, body, out any, actingUser string) error
	HeadForToken(ctx context.Context, path, actingUser string) (string, error)
	PostDocument(ctx context.Context, path string, doc DocumentUpload, csrfToken, actingUser string) error
}

// CallError reports a transport or HTTP-level failure of a backend call.
type CallError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *CallError) Error() string {
	return fmt.Sprintf("backend call %s %s failed with status %d", e.Method, e.Path, e.StatusCode)
}

// HTTPClient talks to the backend over plain HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, log *slog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *HTTPClient) Post(ctx context.Context, path string, body, out any, actingUser string) error {
	return c.sendJSON(ctx, http.MethodPost, path, body, out, actingUser)
}

func (c *HTTPClient) Get(ctx context.Context, path string, out any, actingUser string) error {
	return c.sendJSON(ctx, http.MethodGet, path, nil, out, actingUser)
}

func (c *HTTPClient) Put(ctx context.Context, path string, body, out any, actingUser string) error {
	return c.sendJSON(ctx, http.MethodPut, path, body, out, actingUser)
}

// HeadForToken fetches a one-time anti-forgery token. The backend issues the
// token in the response header when the request announces the fetch intent;
// without this probe the subsequent upload is rejected with a 403.
func (c *HTTPClient) HeadForToken(ctx context.Context, path, actingUser string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/"+path, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set(headerRemoteUser, actingUser)
	req.Header.Set(headerCSRFToken, "fetch")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("backend call HEAD %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &CallError{Method: http.MethodHead, Path: path, StatusCode: resp.StatusCode}
	}
	token := resp.Header.Get(headerCSRFToken)
	if token == "" {
		return "", fmt.Errorf("backend call HEAD %s: no %s header in response", path, headerCSRFToken)
	}
	return token, nil
}

// PostDocument sends a document as a multipart form: the metadata fields
// first, then the binary part under the "files" name. csrfToken may be blank
// for endpoints that do not require the anti-forgery probe.
func (c *HTTPClient) PostDocument(ctx context.Context, path string, doc DocumentUpload, csrfToken, actingUser string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	names := make([]string, 0, len(doc.Fields))
	for name := range doc.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := w.WriteField(name, doc.Fields[name]); err != nil {
			return err
		}
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, doc.FileName))
	header.Set("Content-Type", doc.Mime)
	part, err := w.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := part.Write(doc.Content); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set(headerRemoteUser, actingUser)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if csrfToken != "" {
		req.Header.Set(headerCSRFToken, csrfToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend call POST %s: %w", path, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &CallError{Method: http.MethodPost, Path: path, StatusCode: resp.StatusCode}
	}
	c.log.Debug("document sent to backend", "path", path, "file", doc.FileName, "bytes", len(doc.Content))
	return nil
}

func (c *HTTPClient) sendJSON(ctx context.Context, method, path string, body, out any, actingUser string) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set(headerRemoteUser, actingUser)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return &CallError{Method: method, Path: path, StatusCode: resp.StatusCode}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("backend call %s %s: decoding response: %w", method, path, err)
		}
	}
	return nil
}

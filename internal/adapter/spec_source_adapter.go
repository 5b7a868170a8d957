package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	m "apicheck.dev/pkg/apicheck/internal/model"
)

// VersionPlaceholder is replaced by the requested version in a spec locator template.
const VersionPlaceholder = "{version}"

// DefaultSpecURLTemplate points at the swagger document of a Kubernetes release branch.
const DefaultSpecURLTemplate = "https://raw.githubusercontent.com/kubernetes/kubernetes/" +
	"release-" + VersionPlaceholder + "/api/openapi-spec/swagger.json"

// DefaultSpecTimeout bounds a single spec download.
const DefaultSpecTimeout = time.Minute

var (
	// ErrUnexpectedStatus is returned when the spec server answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected response status")
	// ErrInvalidSpec is returned when a spec body is not a JSON object.
	ErrInvalidSpec = errors.New("invalid api spec document")
)

// SpecSourceAdapter retrieves the OpenAPI specification of a Kubernetes version.
type SpecSourceAdapter interface {
	Fetch(ctx context.Context, version m.Version) (m.SpecDocument, error)
}

// NewSpecSourceAdapter returns an HTTP source for http(s) templates and a file
// source for anything else.
func NewSpecSourceAdapter(template string, timeout time.Duration) SpecSourceAdapter {
	if template == "" {
		template = DefaultSpecURLTemplate
	}

	if strings.HasPrefix(template, "http://") || strings.HasPrefix(template, "https://") {
		return NewHTTPSpecSourceAdapter(template, &http.Client{Timeout: timeout})
	}

	return NewFileSpecSourceAdapter(strings.TrimPrefix(template, "file://"))
}

// SpecLocator substitutes version into template.
func SpecLocator(template string, version m.Version) string {
	return strings.ReplaceAll(template, VersionPlaceholder, string(version))
}

// HTTPSpecSourceAdapter downloads specs over HTTP.
type HTTPSpecSourceAdapter struct {
	template string
	client   *http.Client
}

// NewHTTPSpecSourceAdapter creates an HTTPSpecSourceAdapter. A nil client falls
// back to a client with DefaultSpecTimeout.
func NewHTTPSpecSourceAdapter(template string, client *http.Client) *HTTPSpecSourceAdapter {
	if client == nil {
		client = &http.Client{Timeout: DefaultSpecTimeout}
	}

	return &HTTPSpecSourceAdapter{template: template, client: client}
}

// Fetch downloads and decodes the spec for version.
func (a *HTTPSpecSourceAdapter) Fetch(ctx context.Context, version m.Version) (m.SpecDocument, error) {
	url := SpecLocator(a.template, version)
	slog.Info("fetching api spec", "version", version, "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("get %s: %w: %s", url, ErrUnexpectedStatus, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}

	slog.Debug("fetched api spec", "version", version, "bytes", len(body))

	return decodeSpec(url, body)
}

// FileSpecSourceAdapter reads specs from the local filesystem.
type FileSpecSourceAdapter struct {
	template string
}

// NewFileSpecSourceAdapter creates a FileSpecSourceAdapter for a path template.
func NewFileSpecSourceAdapter(template string) *FileSpecSourceAdapter {
	return &FileSpecSourceAdapter{template: template}
}

// Fetch reads and decodes the spec file for version.
func (a *FileSpecSourceAdapter) Fetch(ctx context.Context, version m.Version) (m.SpecDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := SpecLocator(a.template, version)
	slog.Info("loading api spec", "version", version, "path", path)

	// #nosec G304 - path is built from the configured spec template
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return decodeSpec(path, body)
}

func decodeSpec(locator string, body []byte) (m.SpecDocument, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%s: %w: malformed json", locator, ErrInvalidSpec)
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, fmt.Errorf("%s: %w: top level is %s, not an object", locator, ErrInvalidSpec, root.Type)
	}

	doc, ok := root.Value().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: %w: unexpected document type %T", locator, ErrInvalidSpec, root.Value())
	}

	if info := root.Get("info.version"); info.Exists() {
		slog.Debug("decoded api spec", "locator", locator, "info.version", info.String())
	}

	return m.SpecDocument(doc), nil
}

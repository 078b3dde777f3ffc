// Package crm is the client for the external sales CRM REST API. The backend
// owns authentication, persistence and lead scoring; this package only moves
// typed records over HTTP and reports failures as values.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// ErrNoToken is returned before any network call when the caller has no
// stored credential. It is a local precondition failure, not an HTTP error.
var ErrNoToken = errors.New("no authentication token")

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Client talks to one CRM backend. Safe for concurrent use.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *logrus.Logger

	// rows serializes per-row mutations (rescore, assign): a second call on
	// the same row while one is in flight joins the first instead of racing.
	rows singleflight.Group
}

// New returns a client for the API at baseURL (including the /api prefix).
// A zero timeout disables the per-request deadline.
func New(baseURL string, timeout time.Duration, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

// do sends an authenticated request and decodes the response into out.
func (c *Client) do(ctx context.Context, token, method, path string, body, out any) error {
	if token == "" {
		return ErrNoToken
	}
	return c.send(ctx, token, method, path, body, out)
}

func (c *Client) send(ctx context.Context, token, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &APIError{Status: res.StatusCode, Message: errorMessage(data)}
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage pulls a human-readable message out of a backend error body.
func errorMessage(data []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return ""
	}
	switch {
	case envelope.Error != "":
		return envelope.Error
	case envelope.Message != "":
		return envelope.Message
	default:
		return envelope.Detail
	}
}

// list fetches a collection. A 2xx body that is not a JSON array decodes to
// an empty list with a warning instead of failing the page; the backend
// promised an array and did not deliver one.
func list[T any](ctx context.Context, c *Client, token, path string, resource string) ([]T, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	var raw json.RawMessage
	if err := c.send(ctx, token, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		c.log.WithField("resource", resource).Warn("list response was not an array; treating as empty")
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

package augur

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// request issues an API call and decodes the JSON response into out (when
// non-nil). path is either a path under the client's base URL or an absolute
// URL as handed back by the server (cancel and stream endpoints).
//
// Non-2xx responses produce an *APIError carrying the server's detail text
// verbatim. Rate-limited and server-errored requests are retried per the
// client's retry policy.
func (c *Client) request(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
	}

	return c.retry.Execute(ctx, func() error {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.resolveURL(path), reader)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		return c.do(req, out)
	})
}

// requestMultipart issues a multipart/form-data POST built by form. It is
// not retried: the form writer consumes its readers.
func (c *Client) requestMultipart(ctx context.Context, method, path string, form func(*multipart.Writer) error, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := form(w); err != nil {
		return fmt.Errorf("building form: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolveURL(path), &buf)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, out)
}

// do sends one prepared request, maps non-2xx responses to *APIError, and
// decodes the body into out.
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	c.log.WithField("method", req.Method).WithField("url", req.URL.String()).Debug("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(respBody),
			Body:       respBody,
		}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("parsing response: %w", err)
		}
	}
	return nil
}

// resolveURL joins a relative path onto the base URL; absolute URLs pass
// through unchanged.
func (c *Client) resolveURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + path
}

// errorDetail extracts the server's error message from a response body,
// preferring the conventional "detail" field and falling back to "error".
// The text is preserved verbatim for user visibility.
func errorDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return strings.TrimSpace(string(body))
	}
	if parsed.Detail != "" {
		return parsed.Detail
	}
	if parsed.Error != "" {
		return parsed.Error
	}
	return strings.TrimSpace(string(body))
}

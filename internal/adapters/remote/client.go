package remote

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"

	"coachdesk/internal/domain/row"
)

// Client talks to a hosted PostgREST-style row store.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// NewClient creates a client for the hosted store.
// PRE: baseURL is the project URL, apiKey is the service/anon key
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Select issues one ranged query. Failures reported by the store come back
// as a *QueryError with the store's own code/message/details preserved.
// No retries: callers own the fallback policy.
// PRE: q.Table is non-empty
// POST: Returns the decoded rows of one page, in server order
func (c *Client) Select(ctx context.Context, q Query) ([]row.Row, error) {
	u, err := url.Parse(c.BaseURL + "/rest/v1/" + url.PathEscape(q.Table))
	if err != nil {
		return nil, fmt.Errorf("remote: invalid table url: %w", err)
	}

	params := u.Query()
	sel := q.Select
	if sel == "" {
		sel = "*"
	}
	params.Set("select", sel)
	for _, col := range q.NotNull {
		params.Set(col, "not.is.null")
	}
	if q.OrderBy != "" {
		dir := "asc"
		if q.OrderDesc {
			dir = "desc"
		}
		params.Set("order", q.OrderBy+"."+dir)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, br")
	req.Header.Set("apikey", c.APIKey)
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	if q.Limit > 0 {
		req.Header.Set("Range-Unit", "items")
		req.Header.Set("Range", fmt.Sprintf("%d-%d", q.Offset, q.Offset+q.Limit-1))
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote: request failed: %w", err)
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("remote: read response: %w", err)
	}

	// 206 Partial Content is the normal reply to a ranged query.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return nil, queryErrorFromBody(resp.StatusCode, body)
	}

	var rows []row.Row
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("remote: json parse error: %w body=%s", err, snippet(body, 300))
	}
	return rows, nil
}

// readBody fully reads and closes the response body, transparently
// decompressing gzip and brotli encodings.
func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	var r io.Reader = resp.Body
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	case "br":
		r = brotli.NewReader(resp.Body)
	}
	return io.ReadAll(r)
}

// queryErrorFromBody maps the store's JSON error body to a *QueryError.
// Unparseable bodies still produce a QueryError carrying the raw snippet
// so nothing is lost.
func queryErrorFromBody(status int, body []byte) *QueryError {
	qe := &QueryError{HTTPStatus: status}
	var parsed struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
		Hint    string `json:"hint"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && (parsed.Message != "" || parsed.Code != "") {
		qe.Code = parsed.Code
		qe.Message = parsed.Message
		qe.Details = parsed.Details
		qe.Hint = parsed.Hint
		return qe
	}
	qe.Message = snippet(body, 300)
	return qe
}

func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
